// Package ui holds the presentation state shared by the web pages and the terminal client:
// toasts, confirm dialogs, modals, tabs, theme and French date formatting.
package ui

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastType selects the toast styling.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 5 * time.Second

// GenericError is the message shown when a backend call fails.
const GenericError = "Une erreur est survenue"

// Toast is a timed notification.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      ToastType `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Notifier keeps a toast queue per key (a viewer, or the terminal session).
// Each toast is removed by its own timer once its TTL elapses.
type Notifier struct {
	mu     sync.Mutex
	ttl    time.Duration
	queues map[string][]Toast
	timers map[string]*time.Timer
	closed bool
	now    func() time.Time
}

// NewNotifier builds a notifier; a non-positive ttl uses DefaultToastTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Notifier{
		ttl:    ttl,
		queues: make(map[string][]Toast),
		timers: make(map[string]*time.Timer),
		now:    time.Now,
	}
}

// Show queues a toast for key. An empty type means success.
func (n *Notifier) Show(key, message string, kind ToastType) Toast {
	if kind == "" {
		kind = ToastSuccess
	}
	now := n.now()
	toast := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(n.ttl),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return toast
	}
	n.queues[key] = append(n.queues[key], toast)
	n.timers[toast.ID] = time.AfterFunc(n.ttl, func() {
		n.Dismiss(key, toast.ID)
	})
	return toast
}

// Error queues the generic error toast.
func (n *Notifier) Error(key string) Toast {
	return n.Show(key, GenericError, ToastError)
}

// Active returns the visible toasts for key without consuming them.
func (n *Notifier) Active(key string) []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Toast(nil), n.queues[key]...)
}

// Drain returns the visible toasts for key, oldest first, and clears the queue.
// Used when a page render displays them.
func (n *Notifier) Drain(key string) []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	toasts := n.queues[key]
	delete(n.queues, key)
	for _, t := range toasts {
		if timer, ok := n.timers[t.ID]; ok {
			timer.Stop()
			delete(n.timers, t.ID)
		}
	}
	sort.SliceStable(toasts, func(i, j int) bool { return toasts[i].CreatedAt.Before(toasts[j].CreatedAt) })
	return toasts
}

// Dismiss removes one toast. It reports whether the toast was still queued.
func (n *Notifier) Dismiss(key, id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if timer, ok := n.timers[id]; ok {
		timer.Stop()
		delete(n.timers, id)
	}
	queue := n.queues[key]
	for i, t := range queue {
		if t.ID == id {
			queue = append(queue[:i], queue[i+1:]...)
			if len(queue) == 0 {
				delete(n.queues, key)
			} else {
				n.queues[key] = queue
			}
			return true
		}
	}
	return false
}

// Close stops every pending timer and drops queued toasts. Later Show calls are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
	n.queues = make(map[string][]Toast)
	n.closed = true
}
