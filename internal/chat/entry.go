package chat

import (
	"strconv"

	"github.com/noah-isme/planify-web/internal/models"
)

// Status is the delivery state of a rendered message.
type Status string

const (
	StatusSent    Status = "sent"
	StatusPending Status = "pending"
	StatusFailed  Status = "failed"
)

// Entry is one rendered message. LocalID is set for messages sent from this client
// and stays stable when the server id arrives.
type Entry struct {
	LocalID string
	Message models.ChatMessage
	Status  Status
}

// Key identifies the entry in a view.
func (e Entry) Key() string {
	if e.LocalID != "" {
		return e.LocalID
	}
	return "m" + strconv.FormatInt(e.Message.ID, 10)
}

// View receives rendering instructions.
type View interface {
	// Replace discards everything and renders entries.
	Replace(entries []Entry)
	// Append renders entries after the existing ones.
	Append(entries []Entry)
	// Update re-renders an entry already shown, matched by Key.
	Update(entry Entry)
}

// After returns the messages with an id greater than after, plus the highest id in
// msgs (or after when msgs is empty).
func After(msgs []models.ChatMessage, after int64) ([]models.ChatMessage, int64) {
	last := after
	var fresh []models.ChatMessage
	for _, m := range msgs {
		if m.ID > after {
			fresh = append(fresh, m)
		}
		if m.ID > last {
			last = m.ID
		}
	}
	return fresh, last
}

func sentEntries(msgs []models.ChatMessage) []Entry {
	entries := make([]Entry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, Entry{Message: m, Status: StatusSent})
	}
	return entries
}
