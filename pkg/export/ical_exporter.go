package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

// CalendarEntry is one VEVENT.
type CalendarEntry struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// ICalExporter renders entries as an RFC 5545 calendar.
type ICalExporter struct {
	productID string
}

// NewICalExporter builds an exporter stamping productID on the calendar.
func NewICalExporter(productID string) *ICalExporter {
	if productID == "" {
		productID = "-//Planify//Emploi du temps//FR"
	}
	return &ICalExporter{productID: productID}
}

// Render serialises the entries. stamp is written as DTSTAMP on every event.
func (e *ICalExporter) Render(name string, entries []CalendarEntry, stamp time.Time) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(e.productID)
	if name != "" {
		cal.SetName(name)
	}
	for _, entry := range entries {
		if entry.UID == "" {
			return nil, fmt.Errorf("ical entry %q has no uid", entry.Summary)
		}
		if !entry.End.After(entry.Start) {
			return nil, fmt.Errorf("ical entry %q ends before it starts", entry.UID)
		}
		event := cal.AddEvent(entry.UID)
		event.SetDtStampTime(stamp)
		event.SetStartAt(entry.Start)
		event.SetEndAt(entry.End)
		event.SetSummary(entry.Summary)
		if entry.Location != "" {
			event.SetLocation(entry.Location)
		}
		if entry.Description != "" {
			event.SetDescription(entry.Description)
		}
	}
	return []byte(cal.Serialize()), nil
}
