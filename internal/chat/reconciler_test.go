package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/ui"
)

type backendStub struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	fetchErr error
	sendErr  error
	result   *models.SendMessageResult
	polls    int
	sent     []string
	onSend   func()
}

func (s *backendStub) Messages(ctx context.Context, chatID int64) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return append([]models.ChatMessage(nil), s.messages...), nil
}

func (s *backendStub) Send(ctx context.Context, chatID int64, content string) (*models.SendMessageResult, error) {
	s.mu.Lock()
	s.sent = append(s.sent, content)
	hook := s.onSend
	result, err := s.result, s.sendErr
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return result, err
}

func (s *backendStub) set(msgs ...models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = msgs
}

func (s *backendStub) pollCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

type viewRecorder struct {
	replaces int
	appends  [][]Entry
	updates  []Entry
	rendered []Entry
}

func (v *viewRecorder) Replace(entries []Entry) {
	v.replaces++
	v.rendered = append([]Entry(nil), entries...)
}

func (v *viewRecorder) Append(entries []Entry) {
	v.appends = append(v.appends, entries)
	v.rendered = append(v.rendered, entries...)
}

func (v *viewRecorder) Update(entry Entry) {
	v.updates = append(v.updates, entry)
	for i := range v.rendered {
		if v.rendered[i].Key() == entry.Key() {
			v.rendered[i] = entry
		}
	}
}

func (v *viewRecorder) mutations() int {
	return v.replaces + len(v.appends) + len(v.updates)
}

type notifierStub struct {
	mu   sync.Mutex
	keys []string
}

func (n *notifierStub) Error(key string) ui.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.keys = append(n.keys, key)
	return ui.Toast{Message: ui.GenericError, Type: ui.ToastError}
}

func msg(id int64, content string, mine bool) models.ChatMessage {
	return models.ChatMessage{ID: id, Content: content, IsMe: mine}
}

func TestPollByIDNothingNewDoesNotMutate(t *testing.T) {
	backend := &backendStub{}
	view := &viewRecorder{}
	r := NewReconciler(backend, view, ReconcilerConfig{ChatID: 1})
	r.Seed([]models.ChatMessage{msg(1, "a", false), msg(2, "b", true)})
	before := view.mutations()

	backend.set(msg(1, "a", false), msg(2, "b", true))
	require.NoError(t, r.Poll(context.Background()))
	assert.Equal(t, before, view.mutations())
}

func TestPollByIDAppendsNewMessagesOnce(t *testing.T) {
	backend := &backendStub{}
	view := &viewRecorder{}
	r := NewReconciler(backend, view, ReconcilerConfig{ChatID: 1, Strategy: StrategyByID})
	r.Seed([]models.ChatMessage{msg(1, "a", false)})

	backend.set(msg(1, "a", false), msg(2, "b", false), msg(3, "c", false))
	require.NoError(t, r.Poll(context.Background()))
	require.NoError(t, r.Poll(context.Background()))

	require.Len(t, view.appends, 1)
	require.Len(t, view.appends[0], 2)
	assert.Equal(t, int64(2), view.appends[0][0].Message.ID)
	assert.Equal(t, int64(3), r.LastID())
	assert.Len(t, r.Entries(), 3)
	assert.Equal(t, 1, view.replaces)
}

func TestPollByCountReplacesOnlyWhenGreater(t *testing.T) {
	backend := &backendStub{}
	view := &viewRecorder{}
	r := NewReconciler(backend, view, ReconcilerConfig{ChatID: 1, Strategy: StrategyByCount})
	r.Seed([]models.ChatMessage{msg(1, "a", false), msg(2, "b", false)})
	require.Equal(t, 1, view.replaces)

	backend.set(msg(1, "a", false), msg(2, "edited", false))
	require.NoError(t, r.Poll(context.Background()))
	assert.Equal(t, 1, view.replaces)
	assert.Equal(t, "b", r.Entries()[1].Message.Content)

	backend.set(msg(1, "a", false), msg(2, "edited", false), msg(3, "c", false))
	require.NoError(t, r.Poll(context.Background()))
	assert.Equal(t, 2, view.replaces)
	require.Len(t, view.rendered, 3)
	assert.Equal(t, "edited", view.rendered[1].Message.Content)
	assert.Empty(t, view.appends)
}

func TestSendAppendsOptimisticEntryAndConfirms(t *testing.T) {
	backend := &backendStub{result: &models.SendMessageResult{Success: true, Message: &models.ChatMessage{ID: 7, Content: "salut"}}}
	view := &viewRecorder{}
	r := NewReconciler(backend, view, ReconcilerConfig{ChatID: 1})
	r.Seed(nil)

	backend.onSend = func() {
		require.Len(t, view.appends, 1)
		assert.Equal(t, StatusPending, view.appends[0][0].Status)
	}
	entry, err := r.Send(context.Background(), "  salut  ")
	require.NoError(t, err)
	assert.Equal(t, StatusSent, entry.Status)
	assert.Equal(t, int64(7), entry.Message.ID)
	assert.True(t, entry.Message.IsMe)
	assert.Equal(t, []string{"salut"}, backend.sent)

	backend.set(msg(7, "salut", true))
	require.NoError(t, r.Poll(context.Background()))
	assert.Len(t, r.Entries(), 1)
	assert.Len(t, view.appends, 1)
}

func TestSendFailureKeepsEntryAndRaisesToast(t *testing.T) {
	cases := map[string]*backendStub{
		"transport error": {sendErr: errors.New("connection refused")},
		"rejected":        {result: &models.SendMessageResult{Success: false, Error: "chat closed"}},
	}
	for name, backend := range cases {
		t.Run(name, func(t *testing.T) {
			view := &viewRecorder{}
			notifier := &notifierStub{}
			r := NewReconciler(backend, view, ReconcilerConfig{ChatID: 1, Notifier: notifier, ToastKey: "u1"})

			entry, err := r.Send(context.Background(), "hello")
			require.Error(t, err)
			assert.Equal(t, StatusFailed, entry.Status)
			require.Len(t, view.appends, 1)
			require.Len(t, r.Entries(), 1)
			assert.Equal(t, StatusFailed, r.Entries()[0].Status)
			assert.Equal(t, []string{"u1"}, notifier.keys)
		})
	}
}

func TestSendIgnoresBlankContent(t *testing.T) {
	backend := &backendStub{}
	view := &viewRecorder{}
	r := NewReconciler(backend, view, ReconcilerConfig{ChatID: 1})

	_, err := r.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, backend.sent)
	assert.Zero(t, view.mutations())
}

func TestPollConfirmsPendingEchoInsteadOfDuplicating(t *testing.T) {
	backend := &backendStub{}
	view := &viewRecorder{}
	r := NewReconciler(backend, view, ReconcilerConfig{ChatID: 1})
	r.Seed(nil)

	backend.result = &models.SendMessageResult{Success: true, Message: &models.ChatMessage{ID: 4, Content: "ok"}}
	backend.onSend = func() {
		backend.set(msg(4, "ok", true))
		require.NoError(t, r.Poll(context.Background()))
	}
	_, err := r.Send(context.Background(), "ok")
	require.NoError(t, err)

	entries := r.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(4), entries[0].Message.ID)
	assert.Equal(t, StatusSent, entries[0].Status)
}

func TestPollErrorLeavesStateAsIs(t *testing.T) {
	backend := &backendStub{fetchErr: errors.New("timeout")}
	view := &viewRecorder{}
	r := NewReconciler(backend, view, ReconcilerConfig{ChatID: 1})
	r.Seed([]models.ChatMessage{msg(1, "a", false)})

	require.Error(t, r.Poll(context.Background()))
	assert.Len(t, r.Entries(), 1)
	assert.Equal(t, 1, view.mutations())
}

func TestStoppedReconcilerNeverPollsAgain(t *testing.T) {
	backend := &backendStub{}
	r := NewReconciler(backend, &viewRecorder{}, ReconcilerConfig{ChatID: 1, Interval: 5 * time.Millisecond})

	r.Start(context.Background())
	require.Eventually(t, func() bool { return backend.pollCount() >= 2 }, time.Second, time.Millisecond)
	r.Stop()

	after := backend.pollCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, backend.pollCount())

	r.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, backend.pollCount())
}

func TestAfterFiltersByID(t *testing.T) {
	fresh, last := After([]models.ChatMessage{msg(3, "", false), msg(5, "", false), msg(4, "", false)}, 3)
	require.Len(t, fresh, 2)
	assert.Equal(t, int64(5), last)

	fresh, last = After(nil, 9)
	assert.Empty(t, fresh)
	assert.Equal(t, int64(9), last)
}

func TestParseStrategy(t *testing.T) {
	assert.Equal(t, StrategyByID, ParseStrategy(""))
	assert.Equal(t, StrategyByCount, ParseStrategy("COUNT"))
	assert.Equal(t, StrategyByID, ParseStrategy("other"))
}
