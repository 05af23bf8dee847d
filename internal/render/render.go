// Package render turns page models into HTML with embedded html/template files.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/noah-isme/planify-web/internal/calendar"
	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	PageCalendar   = "calendar.html"
	PageEvent      = "event.html"
	PageTimetable  = "edt.html"
	PageClassrooms = "classrooms.html"
	PageInbox      = "inbox.html"
	PageChatRoom   = "chat_room.html"
)

// Fragment template names, defined in partials.html.
const (
	FragmentGrid     = "grid"
	FragmentMessages = "messages"
	FragmentInbox    = "inbox_list"
	FragmentToasts   = "toasts"
	FragmentDialog   = "dialog"
)

var pages = []string{PageCalendar, PageEvent, PageTimetable, PageClassrooms, PageInbox, PageChatRoom}

// Raw HTML in markdown input is omitted since WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Renderer holds one template set per page plus the shared fragments.
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
	location  *time.Location
}

// New parses the embedded templates. loc is used to display event times.
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.Local
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(pages)), location: loc}
	funcs := r.funcs()

	fragments, err := template.New("partials.html").Funcs(funcs).ParseFS(templateFS, "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	r.fragments = fragments

	for _, name := range pages {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

// Page renders a full page inside the layout.
func (r *Renderer) Page(name string, data Layout) ([]byte, error) {
	tpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Fragment renders one partial, used for polling responses.
func (r *Renderer) Fragment(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render fragment %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Markdown converts an event description to HTML.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"markdown":       Markdown,
		"formatDate":     ui.FormatDate,
		"formatTime":     ui.FormatTime,
		"formatDateTime": ui.FormatDateTime,
		"longDate":       ui.LongDate,
		"monthTitle":     ui.MonthTitle,
		"iso":            func(t time.Time) string { return t.Format("2006-01-02") },
		"weekdays":       func() []string { return calendar.WeekdayLabels },
		"views":          func() []calendar.View { return calendar.Views },
		"courseTooltip":  ui.CourseTooltip,
		"eventTooltip": func(ev models.Event) string {
			return ui.EventTooltip(ev, r.location)
		},
		"eventStart": func(ev models.Event) string {
			if t, ok := ev.StartTime(r.location); ok {
				return ui.FormatDateTime(t)
			}
			return ev.Start
		},
		"eventEnd": func(ev models.Event) string {
			if t, ok := ev.EndTime(r.location); ok {
				return ui.FormatDateTime(t)
			}
			return ev.End
		},
		"messageTime": func(m models.ChatMessage) string {
			if t, err := time.Parse(time.RFC3339, m.CreatedAt); err == nil {
				return ui.FormatTime(t.In(r.location))
			}
			return m.CreatedAt
		},
		"calendarURL": CalendarURL,
		"link":        Link,
	}
}

// CalendarURL links to the calendar at date in view.
func CalendarURL(view calendar.View, date time.Time) string {
	return Link("/calendar", "view", string(view), "date", date.Format("2006-01-02"))
}

// Link builds path with the encoded pairs as its query string. Templates must
// emit it as the whole attribute value so the query is not escaped twice.
func Link(path string, pairs ...string) string {
	q := Query(pairs...)
	if q == "" {
		return path
	}
	return path + "?" + q
}

// Query encodes key/value pairs, skipping empty values.
func Query(pairs ...string) string {
	values := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			values.Set(pairs[i], pairs[i+1])
		}
	}
	return values.Encode()
}
