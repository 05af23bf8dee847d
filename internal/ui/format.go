package ui

import (
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/goodsign/monday"
)

const locale = monday.LocaleFrFR

// FormatDate renders dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatTime renders HH:MM.
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatDateTime renders dd/mm/yyyy HH:MM.
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// LongDate renders e.g. "Lundi 4 mars 2024".
func LongDate(t time.Time) string {
	return capitalize(monday.Format(t, "Monday 2 January 2006", locale))
}

// MonthTitle renders e.g. "Mars 2024".
func MonthTitle(t time.Time) string {
	return capitalize(monday.Format(t, "January 2006", locale))
}

// WeekLabel renders the timetable week header for the Monday-Sunday week starting at start.
func WeekLabel(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	return "Semaine du " + FormatDate(start) + " au " + FormatDate(end)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
