package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/planify-web/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGridRangeMarch2024(t *testing.T) {
	start, end := GridRange(date(2024, time.March, 1))
	assert.Equal(t, date(2024, time.February, 26), start)
	assert.Equal(t, date(2024, time.March, 31), end)
}

func TestGridRangeAlwaysMondayToSunday(t *testing.T) {
	for y := 2023; y <= 2026; y++ {
		for m := time.January; m <= time.December; m++ {
			ref := date(y, m, 15)
			start, end := GridRange(ref)
			first, last := MonthRange(ref)
			name := fmt.Sprintf("%d-%02d", y, m)
			assert.Equal(t, time.Monday, start.Weekday(), name)
			assert.Equal(t, time.Sunday, end.Weekday(), name)
			assert.False(t, start.After(first), name)
			assert.False(t, end.Before(last), name)
			assert.Less(t, first.Sub(start), 7*24*time.Hour, name)
			assert.Less(t, end.Sub(last), 7*24*time.Hour, name)
		}
	}
}

func TestGridRangeMonthStartingOnSunday(t *testing.T) {
	// September 2024 starts on a Sunday; the grid must still include the 1st.
	start, end := GridRange(date(2024, time.September, 10))
	assert.Equal(t, date(2024, time.August, 26), start)
	assert.Equal(t, date(2024, time.October, 6), end)
}

func TestBuildMonthMarksSpilloverAndToday(t *testing.T) {
	month := BuildMonth(date(2024, time.March, 1), date(2024, time.March, 12), nil, 0)

	days := month.Days()
	require.Len(t, days, 35)
	require.Len(t, month.Weeks, 5)
	assert.False(t, days[0].InMonth)
	assert.Equal(t, "2024-02-26", days[0].ISODate())
	assert.True(t, days[4].InMonth)
	assert.Equal(t, 1, days[4].Date.Day())

	var today []string
	for _, d := range days {
		if d.IsToday {
			today = append(today, d.ISODate())
		}
	}
	assert.Equal(t, []string{"2024-03-12"}, today)
}

func TestBuildMonthRowCount(t *testing.T) {
	cases := []struct {
		name  string
		ref   time.Time
		weeks int
		first string
		last  string
	}{
		{"starts on sunday", date(2024, time.September, 1), 6, "2024-08-26", "2024-10-06"},
		{"starts on saturday", date(2024, time.June, 1), 5, "2024-05-27", "2024-06-30"},
		{"exact four weeks", date(2021, time.February, 1), 4, "2021-02-01", "2021-02-28"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			month := BuildMonth(tc.ref, tc.ref, nil, 0)
			require.Len(t, month.Weeks, tc.weeks)
			days := month.Days()
			assert.Equal(t, tc.first, days[0].ISODate())
			assert.Equal(t, tc.last, days[len(days)-1].ISODate())
		})
	}
}

func TestBuildMonthCapsEventsPerDay(t *testing.T) {
	var events []models.Event
	for i := 0; i < 5; i++ {
		events = append(events, models.Event{ID: int64(i + 1), Title: fmt.Sprintf("E%d", i+1), Start: fmt.Sprintf("2024-03-05T%02d:00:00", 8+i)})
	}
	events = append(events, models.Event{ID: 9, Title: "Other", Start: "2024-03-06T10:00:00"})

	month := BuildMonth(date(2024, time.March, 1), date(2024, time.March, 1), events, DefaultMaxEvents)

	var fifth, sixth Day
	for _, d := range month.Days() {
		switch d.ISODate() {
		case "2024-03-05":
			fifth = d
		case "2024-03-06":
			sixth = d
		}
	}
	require.Len(t, fifth.Events, 3)
	assert.Equal(t, int64(1), fifth.Events[0].ID)
	assert.Equal(t, 2, fifth.Overflow)
	assert.Equal(t, "+2 plus", fifth.OverflowLabel())
	assert.Len(t, sixth.Events, 1)
	assert.Empty(t, sixth.OverflowLabel())
}

func TestBuildMonthSpilloverDaysReceiveEvents(t *testing.T) {
	events := []models.Event{{ID: 1, Title: "Rentrée", Start: "2024-02-27T09:00:00"}}
	month := BuildMonth(date(2024, time.March, 1), date(2024, time.March, 1), events, 3)
	assert.Len(t, month.Days()[1].Events, 1)
}

func TestShiftNormalisesToFirstOfMonth(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 1), Shift(date(2024, time.January, 31), 1))
	assert.Equal(t, date(2023, time.December, 1), Shift(date(2024, time.January, 15), -1))
	assert.Equal(t, date(2025, time.January, 1), Shift(date(2024, time.December, 31), 1))
}

func TestParseView(t *testing.T) {
	assert.Equal(t, ViewMonth, ParseView(""))
	assert.Equal(t, ViewWeek, ParseView("week"))
	assert.Equal(t, ViewDay, ParseView(" DAY "))
	assert.Equal(t, ViewMonth, ParseView("year"))
	assert.True(t, ViewMonth.Implemented())
	assert.False(t, ViewWeek.Implemented())
	assert.Equal(t, "Semaine", ViewWeek.Label())
}
