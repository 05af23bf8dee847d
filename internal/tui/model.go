// Package tui is the terminal chat client: an inbox list and a conversation view
// kept current by the chat pollers.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/chat"
	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/ui"
)

// ToastKey is the notifier queue of the terminal session.
const ToastKey = "tui"

const (
	sendLabel      = "Envoyer"
	bridgeBuffer   = 64
	toastRefresh   = time.Second
	emptyInboxText = "Aucune conversation"
)

// Backend is the slice of the chat backend the client drives.
type Backend interface {
	chat.MessageBackend
	chat.InboxBackend
	MarkRead(ctx context.Context, chatID int64) error
}

// Config tunes the pollers.
type Config struct {
	Strategy      chat.Strategy
	ChatInterval  time.Duration
	InboxInterval time.Duration
	Logger        *zap.Logger
	Observer      chat.PollObserver
}

type screen int

const (
	screenInbox screen = iota
	screenConversation
)

type toastTickMsg struct{}

type sentMsg struct {
	chatID int64
	err    error
}

type openedMsg struct {
	chatID int64
	err    error
}

// Model is the Bubble Tea model of the client.
type Model struct {
	ctx      context.Context
	backend  Backend
	notifier *ui.Notifier
	cfg      Config
	logger   *zap.Logger

	bridge    *bridge
	inbox     *chat.InboxWatcher
	submitter *ui.Submitter
	button    *ui.SubmitButton

	screen        screen
	conversations []models.Conversation
	unread        int
	filter        string
	filtering     bool
	cursor        int

	room     *chat.Reconciler
	roomID   int64
	roomName string
	entries  []chat.Entry
	input    string

	width  int
	height int
}

// New builds the model. Polling starts with Init; Close stops it.
func New(ctx context.Context, backend Backend, notifier *ui.Notifier, cfg Config) *Model {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = ui.NewNotifier(ui.DefaultToastTTL)
	}
	b := newBridge(bridgeBuffer)
	return &Model{
		ctx:       ctx,
		backend:   backend,
		notifier:  notifier,
		cfg:       cfg,
		logger:    cfg.Logger,
		bridge:    b,
		inbox:     chat.NewInboxWatcher(backend, b, chat.InboxConfig{Interval: cfg.InboxInterval, Logger: cfg.Logger, Observer: cfg.Observer}),
		submitter: ui.NewSubmitter(nil, cfg.Logger),
		button:    ui.NewSubmitButton(sendLabel),
	}
}

// Init starts the inbox poller and the bridge reader.
func (m *Model) Init() tea.Cmd {
	inbox := m.inbox
	ctx := m.ctx
	return tea.Batch(
		func() tea.Msg {
			inbox.Start(ctx)
			return nil
		},
		m.bridge.wait(),
		toastTick(),
	)
}

// Close stops every poller and releases blocked senders.
func (m *Model) Close() {
	m.bridge.close()
	m.inbox.Stop()
	if m.room != nil {
		m.room.Stop()
	}
}

func toastTick() tea.Cmd {
	return tea.Tick(toastRefresh, func(time.Time) tea.Msg { return toastTickMsg{} })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case toastTickMsg:
		return m, toastTick()
	case inboxMsg:
		m.conversations = msg.conversations
		m.unread = msg.unread
		m.clampCursor()
		return m, m.bridge.wait()
	case entriesMsg:
		m.applyEntries(msg)
		return m, m.bridge.wait()
	case openedMsg:
		if msg.err != nil && msg.chatID == m.roomID {
			m.logger.Sugar().Warnw("open conversation failed", "chat_id", msg.chatID, "error", msg.err)
			m.notifier.Error(ToastKey)
		}
		return m, nil
	case sentMsg:
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.screen == screenConversation {
		return m.handleConversationKey(msg)
	}
	return m.handleInboxKey(msg)
}

func (m *Model) handleInboxKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if m.filtering {
		switch key {
		case "esc":
			m.filtering = false
			m.filter = ""
		case "enter":
			m.filtering = false
		case "backspace":
			m.filter = dropLastRune(m.filter)
		default:
			m.filter += msg.Text
		}
		m.clampCursor()
		return nil
	}

	switch key {
	case "q":
		return tea.Quit
	case "/":
		m.filtering = true
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visibleConversations())-1 {
			m.cursor++
		}
	case "enter":
		list := m.visibleConversations()
		if m.cursor < len(list) {
			return m.open(list[m.cursor])
		}
	}
	return nil
}

func (m *Model) handleConversationKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return m.leave()
	case "enter":
		return m.send()
	case "backspace":
		m.input = dropLastRune(m.input)
	default:
		m.input += msg.Text
	}
	return nil
}

// open switches to a conversation, seeds it and starts its poller.
func (m *Model) open(conv models.Conversation) tea.Cmd {
	stop := m.stopRoom()
	room := chat.NewReconciler(m.backend, roomView{bridge: m.bridge, chatID: conv.ChatID}, chat.ReconcilerConfig{
		ChatID:   conv.ChatID,
		Strategy: m.cfg.Strategy,
		Interval: m.cfg.ChatInterval,
		Logger:   m.logger,
		Notifier: m.notifier,
		ToastKey: ToastKey,
		Observer: m.cfg.Observer,
	})
	m.room = room
	m.roomID = conv.ChatID
	m.roomName = conv.Name
	m.entries = nil
	m.input = ""
	m.screen = screenConversation

	ctx, backend, chatID := m.ctx, m.backend, conv.ChatID
	load := func() tea.Msg {
		msgs, err := backend.Messages(ctx, chatID)
		if err != nil {
			return openedMsg{chatID: chatID, err: err}
		}
		room.Seed(msgs)
		room.Start(ctx)
		if err := backend.MarkRead(ctx, chatID); err != nil {
			return openedMsg{chatID: chatID, err: err}
		}
		return openedMsg{chatID: chatID}
	}
	if stop == nil {
		return load
	}
	return tea.Batch(stop, load)
}

// leave returns to the inbox.
func (m *Model) leave() tea.Cmd {
	stop := m.stopRoom()
	m.room = nil
	m.roomID = 0
	m.roomName = ""
	m.entries = nil
	m.input = ""
	m.screen = screenInbox
	return stop
}

// stopRoom stops the current poller off the update loop: Stop waits for an
// in-flight poll, which may itself be waiting on the bridge.
func (m *Model) stopRoom() tea.Cmd {
	room := m.room
	if room == nil {
		return nil
	}
	return func() tea.Msg {
		room.Stop()
		return nil
	}
}

// send posts the input. Blank input sends and renders nothing.
func (m *Model) send() tea.Cmd {
	content := strings.TrimSpace(m.input)
	if content == "" || m.room == nil || m.button.Disabled() {
		return nil
	}
	m.input = ""
	room, ctx, chatID := m.room, m.ctx, m.roomID
	submitter, button := m.submitter, m.button
	return func() tea.Msg {
		err := submitter.Submit(ctx, ToastKey, button, func(ctx context.Context) error {
			_, err := room.Send(ctx, content)
			return err
		})
		return sentMsg{chatID: chatID, err: err}
	}
}

func (m *Model) applyEntries(msg entriesMsg) {
	if msg.chatID != m.roomID || m.screen != screenConversation {
		return
	}
	switch msg.op {
	case opReplace:
		m.entries = append([]chat.Entry(nil), msg.entries...)
	case opAppend:
		m.entries = append(m.entries, msg.entries...)
	case opUpdate:
		for _, updated := range msg.entries {
			for i := range m.entries {
				if m.entries[i].Key() == updated.Key() {
					m.entries[i] = updated
				}
			}
		}
	}
}

func (m *Model) visibleConversations() []models.Conversation {
	return chat.FilterConversations(m.conversations, m.filter)
}

func (m *Model) clampCursor() {
	n := len(m.visibleConversations())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	if m.screen == screenConversation {
		m.viewConversation(&b)
	} else {
		m.viewInbox(&b)
	}
	for _, t := range m.notifier.Active(ToastKey) {
		style, ok := toastStyles[string(t.Type)]
		if !ok {
			style = mutedStyle
		}
		b.WriteString("\n" + style.Render(t.Message))
	}
	return b.String()
}

func (m *Model) viewInbox(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Messages"))
	if m.unread > 0 {
		b.WriteString(" " + badgeStyle.Render(fmt.Sprint(m.unread)))
	}
	b.WriteString("\n")
	if m.filtering || m.filter != "" {
		b.WriteString(mutedStyle.Render("Rechercher: ") + m.filter + "\n")
	}
	b.WriteString("\n")

	list := m.visibleConversations()
	if len(list) == 0 {
		b.WriteString(mutedStyle.Render(emptyInboxText) + "\n")
	}
	for i, c := range list {
		line := c.Name
		if c.UnreadCount > 0 {
			line += fmt.Sprintf(" (%d)", c.UnreadCount)
		}
		if c.Preview != "" {
			line += "  " + mutedStyle.Render(c.Preview)
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("↑/↓ naviguer • entrée ouvrir • / rechercher • q quitter"))
}

func (m *Model) viewConversation(b *strings.Builder) {
	b.WriteString(titleStyle.Render(m.roomName) + "\n\n")
	for _, e := range m.entries {
		b.WriteString(renderEntry(e) + "\n")
	}
	label := m.button.Label()
	b.WriteString("\n" + inputStyle.Render(m.input+"█") + " " + mutedStyle.Render("["+label+"]"))
	b.WriteString("\n" + mutedStyle.Render("entrée envoyer • échap retour"))
}

func renderEntry(e chat.Entry) string {
	stamp := e.Message.CreatedAt
	if t, err := time.Parse(time.RFC3339, stamp); err == nil {
		stamp = ui.FormatTime(t.Local())
	}
	line := e.Message.Content
	if stamp != "" {
		line = mutedStyle.Render(stamp) + " " + line
	}
	switch e.Status {
	case chat.StatusPending:
		line += mutedStyle.Render(" …")
	case chat.StatusFailed:
		line += failedStyle.Render(" ✗ non envoyé")
	}
	if e.Message.IsMe {
		return mineStyle.Render("moi ") + line
	}
	return line
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
