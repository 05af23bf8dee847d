package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/pkg/scheduler"
)

// DefaultInboxInterval is the refresh cadence of the conversation list.
const DefaultInboxInterval = 5 * time.Second

// InboxBackend lists the viewer's conversations.
type InboxBackend interface {
	Conversations(ctx context.Context) ([]models.Conversation, error)
}

// InboxView renders the conversation list and the unread badge.
type InboxView interface {
	RenderInbox(conversations []models.Conversation, unread int)
}

// InboxConfig configures an InboxWatcher.
type InboxConfig struct {
	Interval time.Duration
	Logger   *zap.Logger
	Observer PollObserver
}

// InboxWatcher polls the conversation list.
type InboxWatcher struct {
	backend InboxBackend
	view    InboxView
	cfg     InboxConfig

	mu            sync.Mutex
	conversations []models.Conversation
	task          *scheduler.Task
	stopped       bool
}

// NewInboxWatcher builds a watcher; view may be nil when only the accessors are used.
func NewInboxWatcher(backend InboxBackend, view InboxView, cfg InboxConfig) *InboxWatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInboxInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &InboxWatcher{backend: backend, view: view, cfg: cfg}
}

// Poll refreshes the list once. On failure the previous list is kept.
func (w *InboxWatcher) Poll(ctx context.Context) error {
	list, err := w.backend.Conversations(ctx)
	if ctx.Err() != nil {
		w.observe("dropped")
		return ctx.Err()
	}
	if err != nil {
		w.cfg.Logger.Sugar().Warnw("inbox poll failed", "error", err)
		w.observe("error")
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		w.observe("dropped")
		return nil
	}
	w.conversations = list
	if w.view != nil {
		w.view.RenderInbox(append([]models.Conversation(nil), list...), UnreadTotal(list))
	}
	w.observe("ok")
	return nil
}

// Conversations returns the last fetched list.
func (w *InboxWatcher) Conversations() []models.Conversation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Conversation(nil), w.conversations...)
}

// Filter returns the conversations matching term.
func (w *InboxWatcher) Filter(term string) []models.Conversation {
	return FilterConversations(w.Conversations(), term)
}

// Unread is the badge total.
func (w *InboxWatcher) Unread() int {
	return UnreadTotal(w.Conversations())
}

// Start begins polling immediately and then on every interval.
func (w *InboxWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.stopped || w.task != nil {
		w.mu.Unlock()
		return
	}
	w.task = scheduler.NewTask("inbox-poll", func(ctx context.Context) {
		_ = w.Poll(ctx)
	}, scheduler.TaskConfig{Interval: w.cfg.Interval, Immediate: true, Logger: w.cfg.Logger})
	task := w.task
	w.mu.Unlock()
	task.Start(ctx)
}

// Stop ends polling.
func (w *InboxWatcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	task := w.task
	w.mu.Unlock()
	if task != nil {
		task.Stop()
	}
}

func (w *InboxWatcher) observe(outcome string) {
	if w.cfg.Observer != nil {
		w.cfg.Observer.ObserveChatPoll("inbox", outcome)
	}
}

// FilterConversations keeps conversations whose name or preview contains term,
// case-insensitively. A blank term keeps everything.
func FilterConversations(list []models.Conversation, term string) []models.Conversation {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}
	var out []models.Conversation
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Preview), term) {
			out = append(out, c)
		}
	}
	return out
}

// UnreadTotal sums unread message counts across conversations; the badge is
// hidden when it is zero.
func UnreadTotal(list []models.Conversation) int {
	total := 0
	for _, c := range list {
		if c.UnreadCount > 0 {
			total += c.UnreadCount
		}
	}
	return total
}
