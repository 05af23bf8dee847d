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
)

type inboxStub struct {
	mu    sync.Mutex
	list  []models.Conversation
	err   error
	polls int
}

func (s *inboxStub) Conversations(ctx context.Context) ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls++
	return s.list, s.err
}

type inboxViewStub struct {
	mu     sync.Mutex
	unread []int
}

func (v *inboxViewStub) RenderInbox(list []models.Conversation, unread int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.unread = append(v.unread, unread)
}

func sampleInbox() []models.Conversation {
	return []models.Conversation{
		{ChatID: 1, Name: "Marie Curie", Preview: "Le TP est reporté", UnreadCount: 2},
		{ChatID: 2, Name: "Louis Pasteur", Preview: "Merci !", UnreadCount: 0},
		{ChatID: 3, Name: "Vie scolaire", Preview: "Réunion parents", UnreadCount: 1},
	}
}

func TestInboxWatcherPollRendersBadge(t *testing.T) {
	backend := &inboxStub{list: sampleInbox()}
	view := &inboxViewStub{}
	w := NewInboxWatcher(backend, view, InboxConfig{})

	require.NoError(t, w.Poll(context.Background()))
	assert.Equal(t, []int{3}, view.unread)
	assert.Equal(t, 3, w.Unread())
	assert.Len(t, w.Conversations(), 3)
}

func TestInboxWatcherKeepsListOnError(t *testing.T) {
	backend := &inboxStub{list: sampleInbox()}
	w := NewInboxWatcher(backend, nil, InboxConfig{})
	require.NoError(t, w.Poll(context.Background()))

	backend.err = errors.New("down")
	require.Error(t, w.Poll(context.Background()))
	assert.Len(t, w.Conversations(), 3)
}

func TestFilterConversations(t *testing.T) {
	list := sampleInbox()
	assert.Len(t, FilterConversations(list, ""), 3)

	byName := FilterConversations(list, "curie")
	require.Len(t, byName, 1)
	assert.Equal(t, int64(1), byName[0].ChatID)

	byPreview := FilterConversations(list, "RÉUNION")
	require.Len(t, byPreview, 1)
	assert.Equal(t, int64(3), byPreview[0].ChatID)

	assert.Empty(t, FilterConversations(list, "zzz"))
}

func TestUnreadTotalHiddenWhenZero(t *testing.T) {
	assert.Zero(t, UnreadTotal([]models.Conversation{{UnreadCount: 0}}))
	assert.Equal(t, 5, UnreadTotal([]models.Conversation{{UnreadCount: 2}, {UnreadCount: 3}, {UnreadCount: -1}}))
}

func TestInboxWatcherStartStop(t *testing.T) {
	backend := &inboxStub{list: sampleInbox()}
	w := NewInboxWatcher(backend, nil, InboxConfig{Interval: 5 * time.Millisecond})
	w.Start(context.Background())

	require.Eventually(t, func() bool { return w.Unread() == 3 }, time.Second, time.Millisecond)
	w.Stop()

	backend.mu.Lock()
	after := backend.polls
	backend.mu.Unlock()
	time.Sleep(25 * time.Millisecond)
	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Equal(t, after, backend.polls)
}
