package ui

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// LoadingLabel replaces the submit label while a form is in flight.
const LoadingLabel = "Chargement..."

// SubmitButton is the state of a form's submit button.
type SubmitButton struct {
	mu       sync.Mutex
	label    string
	idle     string
	disabled bool
}

// NewSubmitButton builds an enabled button.
func NewSubmitButton(label string) *SubmitButton {
	return &SubmitButton{label: label, idle: label}
}

// Label is the current label.
func (b *SubmitButton) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// Disabled reports whether the button is disabled.
func (b *SubmitButton) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

func (b *SubmitButton) setLoading(loading bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = loading
	if loading {
		b.label = LoadingLabel
	} else {
		b.label = b.idle
	}
}

// Submitter runs form callbacks with the loading state and error toast.
type Submitter struct {
	notifier *Notifier
	logger   *zap.Logger
}

// NewSubmitter builds a submitter. A nil logger discards logs.
func NewSubmitter(notifier *Notifier, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{notifier: notifier, logger: logger}
}

// Submit disables btn and shows the loading label for the duration of fn, then
// restores it. A failure is logged and the generic error toast is queued for key.
func (s *Submitter) Submit(ctx context.Context, key string, btn *SubmitButton, fn func(context.Context) error) error {
	if btn != nil {
		btn.setLoading(true)
		defer btn.setLoading(false)
	}
	if err := fn(ctx); err != nil {
		s.logger.Sugar().Warnw("form submission failed", "key", key, "error", err)
		if s.notifier != nil {
			s.notifier.Error(key)
		}
		return err
	}
	return nil
}
