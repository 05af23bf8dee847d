package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/noah-isme/planify-web/internal/chat"
	"github.com/noah-isme/planify-web/internal/models"
)

type entriesOp int

const (
	opReplace entriesOp = iota
	opAppend
	opUpdate
)

// entriesMsg carries a reconciler rendering call for one conversation.
type entriesMsg struct {
	chatID  int64
	op      entriesOp
	entries []chat.Entry
}

// inboxMsg carries a fresh conversation list.
type inboxMsg struct {
	conversations []models.Conversation
	unread        int
}

// bridge moves rendering calls made on poll goroutines onto the program loop.
// Pushes block until the model reads them or the bridge is closed.
type bridge struct {
	events chan tea.Msg
	done   chan struct{}
	once   sync.Once
}

func newBridge(buffer int) *bridge {
	return &bridge{events: make(chan tea.Msg, buffer), done: make(chan struct{})}
}

func (b *bridge) push(msg tea.Msg) {
	select {
	case b.events <- msg:
	case <-b.done:
	}
}

// wait returns a command delivering the next bridged message.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return msg
		case <-b.done:
			return nil
		}
	}
}

func (b *bridge) close() {
	b.once.Do(func() { close(b.done) })
}

// RenderInbox implements chat.InboxView.
func (b *bridge) RenderInbox(conversations []models.Conversation, unread int) {
	b.push(inboxMsg{conversations: conversations, unread: unread})
}

// roomView implements chat.View for one conversation.
type roomView struct {
	bridge *bridge
	chatID int64
}

func (v roomView) Replace(entries []chat.Entry) {
	v.bridge.push(entriesMsg{chatID: v.chatID, op: opReplace, entries: entries})
}

func (v roomView) Append(entries []chat.Entry) {
	v.bridge.push(entriesMsg{chatID: v.chatID, op: opAppend, entries: entries})
}

func (v roomView) Update(entry chat.Entry) {
	v.bridge.push(entriesMsg{chatID: v.chatID, op: opUpdate, entries: []chat.Entry{entry}})
}
