package render

import (
	"html"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/planify-web/internal/calendar"
	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/service"
	"github.com/noah-isme/planify-web/internal/ui"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(time.UTC)
	require.NoError(t, err)
	return r
}

var hrefPattern = regexp.MustCompile(`href="([^"]*)"`)

// links returns the decoded query of every rendered href whose path is path.
func links(t *testing.T, body, path string) []url.Values {
	t.Helper()
	var out []url.Values
	for _, m := range hrefPattern.FindAllStringSubmatch(body, -1) {
		u, err := url.Parse(html.UnescapeString(m[1]))
		require.NoError(t, err)
		if u.Path == path {
			out = append(out, u.Query())
		}
	}
	return out
}

func monthPage(view calendar.View, events []models.Event) service.MonthPage {
	ref := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	return service.MonthPage{
		View:  view,
		Month: calendar.BuildMonth(ref, today, events, calendar.DefaultMaxEvents),
		Date:  ref,
		Prev:  calendar.Shift(ref, -1),
		Next:  calendar.Shift(ref, 1),
		Today: today,
	}
}

func TestCalendarPageRendersGridAndOverflow(t *testing.T) {
	r := newRenderer(t)
	var events []models.Event
	for i := 1; i <= 5; i++ {
		events = append(events, models.Event{ID: int64(i), Title: "Conseil", Start: "2024-03-05T08:00:00"})
	}

	body, err := r.Page(PageCalendar, Layout{
		Title: "Calendrier",
		Nav:   "calendar",
		Theme: ui.ThemeDark,
		Page: CalendarPage{
			MonthPage: monthPage(calendar.ViewMonth, events),
			Modals:    ui.NewModalSet(),
			Submit:    ui.NewSubmitButton("Créer"),
			CanManage: true,
		},
	})
	require.NoError(t, err)
	page := string(body)

	assert.Contains(t, page, `class="dark-mode"`)
	assert.Contains(t, page, "Mars 2024")
	assert.Equal(t, 35, strings.Count(page, `class="day-number"`))
	assert.Equal(t, 3, strings.Count(page, `class="event-item"`))
	assert.Contains(t, html.UnescapeString(page), "+2 plus")
	assert.Contains(t, page, `data-date="2024-02-26"`)
	assert.Contains(t, page, "/calendar?date=2024-02-01&amp;view=month")
	assert.Contains(t, page, `id="event-modal" style="display: none"`)

	var createLink url.Values
	for _, q := range links(t, page, "/calendar") {
		if q.Get("modal") != "" {
			createLink = q
		}
	}
	require.NotNil(t, createLink)
	assert.Equal(t, "event-modal", createLink.Get("modal"))
	assert.Equal(t, "2024-03-01", createLink.Get("date"))
	assert.Equal(t, "month", createLink.Get("view"))
}

func TestCalendarPlaceholderViews(t *testing.T) {
	r := newRenderer(t)
	body, err := r.Page(PageCalendar, Layout{Page: CalendarPage{
		MonthPage: monthPage(calendar.ViewWeek, nil),
		Modals:    ui.NewModalSet(),
		Submit:    ui.NewSubmitButton("Créer"),
	}})
	require.NoError(t, err)
	assert.Contains(t, string(body), "En développement")
	assert.NotContains(t, string(body), `id="calendar-grid"`)
}

func TestGridFragment(t *testing.T) {
	r := newRenderer(t)
	body, err := r.Fragment(FragmentGrid, monthPage(calendar.ViewMonth, []models.Event{
		{ID: 7, Title: "Sortie", Start: "2024-03-20T09:00:00", End: "2024-03-20T11:30:00", Location: "Musée"},
	}))
	require.NoError(t, err)
	assert.Contains(t, string(body), `data-tooltip="Sortie • 09:00 - 11:30 • Musée"`)
	assert.NotContains(t, string(body), "<html")
}

func TestEventPageEscapesRawHTMLInMarkdown(t *testing.T) {
	r := newRenderer(t)
	body, err := r.Page(PageEvent, Layout{Page: EventPage{Event: models.Event{
		ID:          4,
		Title:       "Réunion",
		Start:       "2024-03-05T08:00:00",
		Description: "**Ordre du jour**\n<script>alert(1)</script>",
	}}})
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "<strong>Ordre du jour</strong>")
	assert.NotContains(t, page, "<script>alert(1)</script>")
	assert.Contains(t, page, "05/03/2024 08:00")
	assert.NotContains(t, page, "/events/4/delete")
}

func TestTimetablePage(t *testing.T) {
	r := newRenderer(t)
	monday := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	timetable := &service.TimetablePage{
		Days:      []string{"Lundi", "Mardi"},
		WeekStart: monday,
		WeekLabel: ui.WeekLabel(monday),
		Rows: []service.TimetableRow{{TimeSlot: "08:00-09:30", Cells: []service.TimetableCell{
			{Day: "Lundi", Courses: []models.Course{{Name: "Maths", Teacher: "M. Durand", Classroom: "B12"}}},
			{Day: "Mardi"},
		}}},
		Professors: []string{"M. Durand"},
		Query:      service.TimetableQuery{Professor: "M. Durand"},
	}
	tabs := NewTimetableTabs("liste")
	body, err := r.Page(PageTimetable, Layout{Page: TimetablePage{TimetablePage: timetable, Tabs: tabs, Formats: []string{"pdf", "csv", "ical"}}})
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "Semaine du 04/03/2024 au 10/03/2024")
	assert.Contains(t, page, `<option value="M. Durand" selected>`)
	assert.Contains(t, page, `data-tooltip="Maths • M. Durand • B12"`)
	assert.Contains(t, page, `class="tab-content active" id="liste"`)

	exports := links(t, page, "/edt/export")
	require.Len(t, exports, 3)
	for i, format := range []string{"pdf", "csv", "ical"} {
		assert.Equal(t, format, exports[i].Get("format"))
		assert.Equal(t, "2024-03-04", exports[i].Get("week"))
		assert.Equal(t, "M. Durand", exports[i].Get("professor"))
	}

	var navs, tabIDs []string
	for _, q := range links(t, page, "/edt") {
		if q.Get("nav") == "" && q.Get("tab") == "" {
			continue
		}
		if q.Get("nav") != "" {
			navs = append(navs, q.Get("nav"))
		}
		if q.Get("tab") != "" {
			tabIDs = append(tabIDs, q.Get("tab"))
			assert.Equal(t, "2024-03-04", q.Get("week"))
		}
		assert.Equal(t, "M. Durand", q.Get("professor"))
	}
	assert.Equal(t, []string{"prev", "next", "today"}, navs)
	assert.Equal(t, []string{"grille", "liste"}, tabIDs)
}

func TestLinkSkipsEmptyValues(t *testing.T) {
	assert.Equal(t, "/edt", Link("/edt", "professor", ""))
	assert.Equal(t, "/edt?nav=today&subject=Maths", Link("/edt", "subject", "Maths", "professor", "", "nav", "today"))
}

func TestClassroomsPageAdminActions(t *testing.T) {
	r := newRenderer(t)
	rooms := []models.Classroom{{ID: 2, Name: "B12", Capacity: 30, IsActive: true}}

	render := func(admin bool) string {
		body, err := r.Page(PageClassrooms, Layout{Page: ClassroomsPage{
			Classrooms: rooms,
			Modals:     ui.NewModalSet(),
			Submit:     ui.NewSubmitButton("Enregistrer"),
			CanCreate:  true,
			IsAdmin:    admin,
		}})
		require.NoError(t, err)
		return string(body)
	}

	page := render(false)
	assert.Contains(t, page, "30 places")
	assert.Contains(t, page, "Non spécifiée")
	assert.Contains(t, page, "Aucun équipement spécifique")
	assert.NotContains(t, page, "/classrooms/2/delete")
	assert.Contains(t, render(true), "/classrooms/2/delete")
}

func TestLayoutToastsDialogAndBadge(t *testing.T) {
	r := newRenderer(t)
	body, err := r.Page(PageInbox, Layout{
		Toasts: []ui.Toast{{ID: "t1", Message: ui.GenericError, Type: ui.ToastError}},
		Dialog: &ui.Dialog{ID: "d1", Message: ui.DefaultConfirmMessage},
		Page:   InboxPage{Inbox: &service.Inbox{}, PollMillis: 5000},
	})
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, `class="toast toast-error"`)
	assert.Contains(t, page, "Une erreur est survenue")
	assert.Contains(t, page, `action="/dialogs/d1"`)
	assert.Contains(t, page, `id="unread-badge" class="badge" style="display: none"`)
	assert.Contains(t, page, "Aucune conversation")
}

func TestMessagesFragment(t *testing.T) {
	r := newRenderer(t)
	body, err := r.Fragment(FragmentMessages, MessagesFragment{Messages: []models.ChatMessage{
		{ID: 1, Content: "<b>salut</b>", IsMe: true, CreatedAt: "2024-03-05T10:15:00Z"},
		{ID: 2, Content: "bonjour"},
	}})
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, `class="message sent" data-id="1"`)
	assert.Contains(t, page, `class="message received" data-id="2"`)
	assert.Contains(t, page, "&lt;b&gt;salut&lt;/b&gt;")
	assert.Contains(t, page, "10:15")
}

func TestUnknownPage(t *testing.T) {
	_, err := newRenderer(t).Page("missing.html", Layout{})
	assert.Error(t, err)
}
