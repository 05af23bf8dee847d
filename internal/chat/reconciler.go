package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/ui"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
	"github.com/noah-isme/planify-web/pkg/scheduler"
)

// DefaultPollInterval is the refresh cadence of an open conversation.
const DefaultPollInterval = 3 * time.Second

// ErrEmptyMessage is returned by Send for blank content; nothing is rendered or sent.
var ErrEmptyMessage = appErrors.Clone(appErrors.ErrValidation, "message content is required")

// errSendRejected is recorded when the backend answers success=false.
var errSendRejected = errors.New("backend rejected message")

// MessageBackend is the slice of the backend a conversation needs.
type MessageBackend interface {
	Messages(ctx context.Context, chatID int64) ([]models.ChatMessage, error)
	Send(ctx context.Context, chatID int64, content string) (*models.SendMessageResult, error)
}

// Notifier raises the generic error toast.
type Notifier interface {
	Error(key string) ui.Toast
}

// PollObserver is told the outcome of each poll.
type PollObserver interface {
	ObserveChatPoll(kind, outcome string)
}

// ReconcilerConfig configures a Reconciler.
type ReconcilerConfig struct {
	ChatID   int64
	Strategy Strategy
	Interval time.Duration
	Logger   *zap.Logger
	Notifier Notifier
	ToastKey string
	Observer PollObserver
}

// Reconciler owns the rendered message list of one conversation. Polls run on a
// scheduler task; Send may be called from any goroutine.
type Reconciler struct {
	cfg     ReconcilerConfig
	backend MessageBackend
	view    View
	logger  *zap.Logger

	mu      sync.Mutex
	entries []Entry
	maxID   int64
	known   map[int64]struct{}
	task    *scheduler.Task
	stopped bool
}

// NewReconciler builds a reconciler rendering into view.
func NewReconciler(backend MessageBackend, view View, cfg ReconcilerConfig) *Reconciler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyByID
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Reconciler{
		cfg:     cfg,
		backend: backend,
		view:    view,
		logger:  cfg.Logger,
		known:   make(map[int64]struct{}),
	}
}

// Seed renders the initial messages, replacing anything shown.
func (r *Reconciler) Seed(msgs []models.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = sentEntries(msgs)
	r.known = make(map[int64]struct{}, len(msgs))
	r.maxID = 0
	for _, m := range msgs {
		r.remember(m.ID)
		if m.ID > r.maxID {
			r.maxID = m.ID
		}
	}
	r.view.Replace(r.snapshot())
}

// Entries returns a copy of the rendered list.
func (r *Reconciler) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// LastID is the highest server message id seen.
func (r *Reconciler) LastID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxID
}

// Poll fetches the conversation once and folds the result into the view.
// A response arriving after Stop, or after ctx is cancelled, is dropped.
func (r *Reconciler) Poll(ctx context.Context) error {
	msgs, err := r.backend.Messages(ctx, r.cfg.ChatID)
	if ctx.Err() != nil {
		r.observe("dropped")
		return ctx.Err()
	}
	if err != nil {
		r.logger.Sugar().Warnw("chat poll failed", "chat_id", r.cfg.ChatID, "error", err)
		r.observe("error")
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		r.observe("dropped")
		return nil
	}
	if r.cfg.Strategy == StrategyByCount {
		r.reconcileByCount(msgs)
	} else {
		r.reconcileByID(msgs)
	}
	r.observe("ok")
	return nil
}

func (r *Reconciler) reconcileByCount(msgs []models.ChatMessage) {
	if len(msgs) <= len(r.entries) {
		return
	}
	r.entries = sentEntries(msgs)
	for _, m := range msgs {
		r.remember(m.ID)
		if m.ID > r.maxID {
			r.maxID = m.ID
		}
	}
	r.view.Replace(r.snapshot())
}

func (r *Reconciler) reconcileByID(msgs []models.ChatMessage) {
	var fresh []Entry
	for _, m := range msgs {
		if m.ID <= r.maxID {
			continue
		}
		if _, ok := r.known[m.ID]; ok {
			continue
		}
		if idx := r.pendingMatch(m); idx >= 0 {
			r.entries[idx].Message = m
			r.entries[idx].Status = StatusSent
			r.view.Update(r.entries[idx])
		} else {
			entry := Entry{Message: m, Status: StatusSent}
			r.entries = append(r.entries, entry)
			fresh = append(fresh, entry)
		}
		r.remember(m.ID)
	}
	for _, m := range msgs {
		if m.ID > r.maxID {
			r.maxID = m.ID
		}
	}
	if len(fresh) > 0 {
		r.view.Append(fresh)
	}
}

// pendingMatch finds an optimistic entry the server has echoed back before Send returned.
func (r *Reconciler) pendingMatch(m models.ChatMessage) int {
	if !m.IsMe {
		return -1
	}
	for i, e := range r.entries {
		if e.Status == StatusPending && e.Message.Content == m.Content {
			return i
		}
	}
	return -1
}

// Send renders content immediately as a pending entry, then posts it. On success the
// entry takes the server id; on failure it stays rendered, marked failed, and the
// generic error toast is raised.
func (r *Reconciler) Send(ctx context.Context, content string) (Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Entry{}, ErrEmptyMessage
	}

	entry := Entry{
		LocalID: uuid.NewString(),
		Status:  StatusPending,
		Message: models.ChatMessage{
			Content:   content,
			IsMe:      true,
			CreatedAt: time.Now().Format(time.RFC3339),
		},
	}
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.view.Append([]Entry{entry})
	r.mu.Unlock()

	result, err := r.backend.Send(ctx, r.cfg.ChatID, content)
	if err == nil && (result == nil || !result.Success) {
		err = errSendRejected
		if result != nil && result.Error != "" {
			err = errors.New(result.Error)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(entry.LocalID)
	if idx < 0 {
		return entry, err
	}
	if err != nil {
		r.entries[idx].Status = StatusFailed
		r.view.Update(r.entries[idx])
		r.logger.Sugar().Errorw("send message failed", "chat_id", r.cfg.ChatID, "error", err)
		if r.cfg.Notifier != nil {
			r.cfg.Notifier.Error(r.cfg.ToastKey)
		}
		return r.entries[idx], err
	}

	if r.entries[idx].Status == StatusPending {
		r.entries[idx].Status = StatusSent
		if result.Message != nil {
			r.entries[idx].Message = *result.Message
			r.entries[idx].Message.IsMe = true
		}
		r.view.Update(r.entries[idx])
	}
	if result.Message != nil {
		r.remember(result.Message.ID)
	}
	return r.entries[idx], nil
}

// Start begins polling. It is a no-op after Stop.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	if r.stopped || r.task != nil {
		r.mu.Unlock()
		return
	}
	r.task = scheduler.NewTask("chat-poll", func(ctx context.Context) {
		_ = r.Poll(ctx)
	}, scheduler.TaskConfig{Interval: r.cfg.Interval, Logger: r.logger})
	task := r.task
	r.mu.Unlock()
	task.Start(ctx)
}

// Stop ends polling and waits for an in-flight poll to finish. Later polls are dropped.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	r.stopped = true
	task := r.task
	r.mu.Unlock()
	if task != nil {
		task.Stop()
	}
}

// remember marks an id as rendered. It does not move maxID: an acknowledged send
// may overtake messages from others that no poll has returned yet.
func (r *Reconciler) remember(id int64) {
	if id != 0 {
		r.known[id] = struct{}{}
	}
}

func (r *Reconciler) indexOf(localID string) int {
	for i, e := range r.entries {
		if e.LocalID == localID {
			return i
		}
	}
	return -1
}

func (r *Reconciler) snapshot() []Entry {
	return append([]Entry(nil), r.entries...)
}

func (r *Reconciler) observe(outcome string) {
	if r.cfg.Observer != nil {
		r.cfg.Observer.ObserveChatPoll("conversation", outcome)
	}
}
