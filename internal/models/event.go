package models

import (
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// Event is a calendar entry owned by the backend. Start and End are kept as the
// ISO 8601 strings the backend sends; grouping by day compares their date prefix.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	Color       string `json:"color,omitempty"`
	Location    string `json:"location,omitempty"`
	Type        string `json:"type,omitempty"`
}

// OnDate reports whether the event starts on the given calendar date.
func (e Event) OnDate(day time.Time) bool {
	return strings.HasPrefix(e.Start, day.Format(isoDateLayout))
}

// StartTime parses Start, accepting RFC 3339 and the naive "YYYY-MM-DDTHH:MM:SS" form.
func (e Event) StartTime(loc *time.Location) (time.Time, bool) {
	return parseISO(e.Start, loc)
}

// EndTime parses End the same way as StartTime.
func (e Event) EndTime(loc *time.Location) (time.Time, bool) {
	return parseISO(e.End, loc)
}

func parseISO(raw string, loc *time.Location) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), true
	}
	for _, layout := range []string{"2006-01-02T15:04:05.999999", "2006-01-02T15:04:05", "2006-01-02T15:04", isoDateLayout} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EventRange bounds an events query.
type EventRange struct {
	Start time.Time
	End   time.Time
}

// CreateEventRequest is the form posted to create an event, forwarded to the backend as JSON.
type CreateEventRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description"`
	StartDate   string `json:"start_date" form:"start_date" validate:"required"`
	EndDate     string `json:"end_date,omitempty" form:"end_date"`
	Color       string `json:"color,omitempty" form:"color"`
	Location    string `json:"location,omitempty" form:"location"`
	EventType   string `json:"event_type,omitempty" form:"event_type"`
}
