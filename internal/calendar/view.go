package calendar

import "strings"

// View is the calendar display mode carried in the "view" query parameter.
type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewDay   View = "day"
)

// Views lists the modes in toolbar order.
var Views = []View{ViewDay, ViewWeek, ViewMonth}

// ParseView maps a query value to a view, defaulting to the month view.
func ParseView(raw string) View {
	switch View(strings.ToLower(strings.TrimSpace(raw))) {
	case ViewWeek:
		return ViewWeek
	case ViewDay:
		return ViewDay
	default:
		return ViewMonth
	}
}

// Label is the French toolbar label.
func (v View) Label() string {
	switch v {
	case ViewWeek:
		return "Semaine"
	case ViewDay:
		return "Jour"
	default:
		return "Mois"
	}
}

// Implemented reports whether the view renders a grid; week and day views are placeholders.
func (v View) Implemented() bool {
	return v == ViewMonth
}
