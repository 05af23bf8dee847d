package ui

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultConfirmMessage is shown when a confirm dialog is opened without a message.
const DefaultConfirmMessage = "Êtes-vous sûr de vouloir supprimer cet élément ?"

// Dialog is a pending confirmation.
type Dialog struct {
	ID        string
	Message   string
	Owner     string
	Action    string
	CreatedAt time.Time
}

// DialogOption customises an opened dialog.
type DialogOption func(*Dialog)

// WithOwner restricts who may resolve the dialog.
func WithOwner(owner string) DialogOption {
	return func(d *Dialog) { d.Owner = owner }
}

// WithAction records the page shown once the dialog resolves.
func WithAction(action string) DialogOption {
	return func(d *Dialog) { d.Action = action }
}

type pendingDialog struct {
	dialog   Dialog
	onResult func(bool)
	timer    *time.Timer
}

// DialogRegistry tracks open confirm dialogs. Every dialog resolves exactly once:
// through Resolve, through Cancel, or with false when it expires.
type DialogRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[string]*pendingDialog
}

// NewDialogRegistry builds a registry; dialogs left open longer than ttl resolve false.
// A non-positive ttl disables expiry.
func NewDialogRegistry(ttl time.Duration) *DialogRegistry {
	return &DialogRegistry{ttl: ttl, pending: make(map[string]*pendingDialog)}
}

// Open registers a dialog and returns it. onResult may be nil.
func (r *DialogRegistry) Open(message string, onResult func(bool), opts ...DialogOption) Dialog {
	if message == "" {
		message = DefaultConfirmMessage
	}
	d := Dialog{ID: uuid.NewString(), Message: message, CreatedAt: time.Now()}
	for _, opt := range opts {
		opt(&d)
	}

	p := &pendingDialog{dialog: d, onResult: onResult}
	r.mu.Lock()
	r.pending[d.ID] = p
	if r.ttl > 0 {
		id := d.ID
		p.timer = time.AfterFunc(r.ttl, func() { r.Resolve(id, false) })
	}
	r.mu.Unlock()
	return d
}

// Get returns an open dialog.
func (r *DialogRegistry) Get(id string) (Dialog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[id]
	if !ok {
		return Dialog{}, false
	}
	return p.dialog, true
}

// Resolve closes the dialog and runs its callback with confirmed. It reports false
// when the dialog is unknown or already resolved, in which case nothing runs.
func (r *DialogRegistry) Resolve(id string, confirmed bool) bool {
	r.mu.Lock()
	p, ok := r.pending[id]
	if ok {
		delete(r.pending, id)
		if p.timer != nil {
			p.timer.Stop()
		}
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	if p.onResult != nil {
		p.onResult(confirmed)
	}
	return true
}

// Cancel resolves the dialog with false.
func (r *DialogRegistry) Cancel(id string) bool {
	return r.Resolve(id, false)
}

// Len is the number of open dialogs.
func (r *DialogRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Close cancels every open dialog.
func (r *DialogRegistry) Close() {
	r.mu.Lock()
	ids := make([]string, 0, len(r.pending))
	for id := range r.pending {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	for _, id := range ids {
		r.Cancel(id)
	}
}
