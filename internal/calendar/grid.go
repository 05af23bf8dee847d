// Package calendar builds the month grid shown on the calendar page.
package calendar

import (
	"fmt"
	"time"

	"github.com/noah-isme/planify-web/internal/models"
)

// DefaultMaxEvents is how many event chips a day cell shows before collapsing the rest.
const DefaultMaxEvents = 3

// WeekdayLabels are the column headers, Monday first.
var WeekdayLabels = []string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

// Day is one cell of the month grid.
type Day struct {
	Date     time.Time
	InMonth  bool
	IsToday  bool
	Events   []models.Event
	Overflow int
}

// ISODate is the YYYY-MM-DD form used to match event start prefixes.
func (d Day) ISODate() string {
	return d.Date.Format("2006-01-02")
}

// OverflowLabel renders the hidden event count, empty when nothing is hidden.
func (d Day) OverflowLabel() string {
	if d.Overflow <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d plus", d.Overflow)
}

// Month is a grid of complete Monday-Sunday weeks covering one month.
type Month struct {
	Reference time.Time
	Start     time.Time
	End       time.Time
	Weeks     [][]Day
}

// Days returns the cells in order.
func (m Month) Days() []Day {
	days := make([]Day, 0, len(m.Weeks)*7)
	for _, week := range m.Weeks {
		days = append(days, week...)
	}
	return days
}

// MonthRange returns the first and last day of ref's month at midnight.
func MonthRange(ref time.Time) (time.Time, time.Time) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// GridRange extends the month to the Monday on or before its first day and the
// Sunday on or after its last day. Both bounds are inclusive.
func GridRange(ref time.Time) (time.Time, time.Time) {
	first, last := MonthRange(ref)
	back := (int(first.Weekday()) + 6) % 7
	forward := (7 - int(last.Weekday())) % 7
	return first.AddDate(0, 0, -back), last.AddDate(0, 0, forward)
}

// BuildMonth lays out ref's month, marks spillover days and today, and buckets
// events by the date prefix of their start. At most maxPerDay events are kept per
// cell; the remainder is counted in Overflow.
func BuildMonth(ref, today time.Time, events []models.Event, maxPerDay int) Month {
	if maxPerDay <= 0 {
		maxPerDay = DefaultMaxEvents
	}
	first, _ := MonthRange(ref)
	start, end := GridRange(ref)
	todayKey := today.In(ref.Location()).Format("2006-01-02")

	month := Month{Reference: first, Start: start, End: end}
	var week []Day
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		day := Day{
			Date:    cur,
			InMonth: cur.Month() == first.Month() && cur.Year() == first.Year(),
		}
		day.IsToday = day.ISODate() == todayKey
		for _, ev := range events {
			if !ev.OnDate(cur) {
				continue
			}
			if len(day.Events) < maxPerDay {
				day.Events = append(day.Events, ev)
			} else {
				day.Overflow++
			}
		}
		week = append(week, day)
		if len(week) == 7 {
			month.Weeks = append(month.Weeks, week)
			week = nil
		}
	}
	return month
}

// Shift moves the reference by whole months. The result is always the first of
// the target month so that e.g. 31 January + 1 lands in February.
func Shift(ref time.Time, months int) time.Time {
	first, _ := MonthRange(ref)
	return first.AddDate(0, months, 0)
}
