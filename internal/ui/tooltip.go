package ui

import (
	"strings"
	"time"

	"github.com/noah-isme/planify-web/internal/models"
)

const tooltipSeparator = " • "

// Tooltip joins the non-empty parts into data-tooltip text.
func Tooltip(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, tooltipSeparator)
}

// EventTooltip describes an event chip.
func EventTooltip(ev models.Event, loc *time.Location) string {
	var when string
	if start, ok := ev.StartTime(loc); ok {
		when = FormatTime(start)
		if end, ok := ev.EndTime(loc); ok {
			when += " - " + FormatTime(end)
		}
	}
	return Tooltip(ev.Title, when, ev.Location)
}

// CourseTooltip describes a timetable course.
func CourseTooltip(c models.Course) string {
	return Tooltip(c.Name, c.Teacher, c.Classroom)
}
