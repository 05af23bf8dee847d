package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/ui"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
	"github.com/noah-isme/planify-web/pkg/export"
)

// FilterAll disables a timetable filter.
const FilterAll = "all"

// Export formats.
const (
	FormatPDF   = "pdf"
	FormatCSV   = "csv"
	FormatICal  = "ical"
	FormatImage = "image"
)

var defaultDays = []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}

var defaultTimeSlots = []string{"08:00-09:30", "09:45-11:15", "11:30-13:00", "14:00-15:30", "15:45-17:15", "17:30-19:00"}

var weekdayIndex = map[string]int{
	"Lundi": 0, "Mardi": 1, "Mercredi": 2, "Jeudi": 3, "Vendredi": 4, "Samedi": 5, "Dimanche": 6,
}

type scheduleRepository interface {
	Get(ctx context.Context) (models.Schedule, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type icalRenderer interface {
	Render(name string, entries []export.CalendarEntry, stamp time.Time) ([]byte, error)
}

// TimetableConfig lists the grid axes.
type TimetableConfig struct {
	Days      []string
	TimeSlots []string
	Location  *time.Location
}

// TimetableQuery selects the week and filters.
type TimetableQuery struct {
	Week      time.Time
	Nav       string
	Professor string
	Classroom string
	Subject   string
}

// TimetableCell is one day/slot intersection.
type TimetableCell struct {
	Day     string
	Date    time.Time
	Courses []models.Course
}

// TimetableRow is one time slot across the week.
type TimetableRow struct {
	TimeSlot string
	Cells    []TimetableCell
}

// TimetablePage is everything the timetable page renders.
type TimetablePage struct {
	Days       []string
	Rows       []TimetableRow
	WeekStart  time.Time
	WeekLabel  string
	Prev       time.Time
	Next       time.Time
	Query      TimetableQuery
	Professors []string
	Classrooms []string
	Subjects   []string
}

// ExportFile is a rendered download.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

// TimetableService renders the weekly schedule and its exports.
type TimetableService struct {
	repo   scheduleRepository
	pdf    pdfRenderer
	csv    csvRenderer
	ical   icalRenderer
	logger *zap.Logger
	cfg    TimetableConfig
	now    func() time.Time
}

// NewTimetableService constructs the service.
func NewTimetableService(repo scheduleRepository, pdf pdfRenderer, csv csvRenderer, ical icalRenderer, logger *zap.Logger, cfg TimetableConfig) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.Days) == 0 {
		cfg.Days = defaultDays
	}
	if len(cfg.TimeSlots) == 0 {
		cfg.TimeSlots = defaultTimeSlots
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &TimetableService{repo: repo, pdf: pdf, csv: csv, ical: ical, logger: logger, cfg: cfg, now: time.Now}
}

// Week builds the filtered grid for the requested week.
func (s *TimetableService) Week(ctx context.Context, q TimetableQuery) (*TimetablePage, error) {
	schedule, err := s.repo.Get(ctx)
	if err != nil {
		return nil, upstreamError(err, "failed to load timetable")
	}

	monday := s.resolveWeek(q.Week, q.Nav)
	q.Week = monday
	q.Nav = ""
	page := &TimetablePage{
		Days:      s.cfg.Days,
		WeekStart: monday,
		WeekLabel: ui.WeekLabel(monday),
		Prev:      monday.AddDate(0, 0, -7),
		Next:      monday.AddDate(0, 0, 7),
		Query:     q,
	}
	page.Professors, page.Classrooms, page.Subjects = options(schedule)

	for _, slot := range s.cfg.TimeSlots {
		row := TimetableRow{TimeSlot: slot}
		for _, day := range s.cfg.Days {
			cell := TimetableCell{Day: day, Date: dayDate(monday, day)}
			for _, course := range schedule[day][slot] {
				if q.matches(course) {
					cell.Courses = append(cell.Courses, course)
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		page.Rows = append(page.Rows, row)
	}
	return page, nil
}

// Export renders the filtered week in format.
func (s *TimetableService) Export(ctx context.Context, q TimetableQuery, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatPDF, FormatCSV, FormatICal:
	case FormatImage:
		return nil, appErrors.Clone(appErrors.ErrValidation, "image export is not supported")
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export format %q", format))
	}

	page, err := s.Week(ctx, q)
	if err != nil {
		return nil, err
	}
	base := "emploi-du-temps-" + page.WeekStart.Format("2006-01-02")

	var file ExportFile
	switch format {
	case FormatPDF:
		body, err := s.pdf.Render(page.dataset(), "Emploi du temps - "+page.WeekLabel)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		file = ExportFile{Name: base + ".pdf", ContentType: "application/pdf", Body: body}
	case FormatCSV:
		body, err := s.csv.Render(page.dataset())
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		file = ExportFile{Name: base + ".csv", ContentType: "text/csv; charset=utf-8", Body: body}
	case FormatICal:
		entries, err := page.calendarEntries(s.cfg.Location)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "invalid time slot")
		}
		body, err := s.ical.Render("Emploi du temps", entries, s.now())
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar")
		}
		file = ExportFile{Name: base + ".ics", ContentType: "text/calendar; charset=utf-8", Body: body}
	}
	s.logger.Info("timetable exported", zap.String("format", format), zap.String("week", base))
	return &file, nil
}

// resolveWeek returns the Monday of the requested week after applying prev/next/today.
func (s *TimetableService) resolveWeek(ref time.Time, nav string) time.Time {
	if ref.IsZero() || nav == "today" {
		ref = s.now()
	}
	ref = ref.In(s.cfg.Location)
	monday := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, s.cfg.Location)
	monday = monday.AddDate(0, 0, -((int(monday.Weekday()) + 6) % 7))
	switch nav {
	case "prev":
		monday = monday.AddDate(0, 0, -7)
	case "next":
		monday = monday.AddDate(0, 0, 7)
	}
	return monday
}

func (q TimetableQuery) matches(c models.Course) bool {
	if active(q.Professor) && c.Teacher != q.Professor {
		return false
	}
	if active(q.Classroom) && c.Classroom != q.Classroom {
		return false
	}
	if active(q.Subject) && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(strings.TrimSpace(q.Subject))) {
		return false
	}
	return true
}

func active(filter string) bool {
	filter = strings.TrimSpace(filter)
	return filter != "" && filter != FilterAll
}

func dayDate(monday time.Time, day string) time.Time {
	idx, ok := weekdayIndex[day]
	if !ok {
		return time.Time{}
	}
	return monday.AddDate(0, 0, idx)
}

func options(schedule models.Schedule) (professors, classrooms, subjects []string) {
	seen := map[string]map[string]bool{"p": {}, "c": {}, "s": {}}
	for _, slots := range schedule {
		for _, courses := range slots {
			for _, c := range courses {
				seen["p"][c.Teacher] = true
				seen["c"][c.Classroom] = true
				seen["s"][c.Name] = true
			}
		}
	}
	return sortedKeys(seen["p"]), sortedKeys(seen["c"]), sortedKeys(seen["s"])
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func (p *TimetablePage) dataset() export.Dataset {
	headers := append([]string{"Créneau"}, p.Days...)
	data := export.Dataset{Headers: headers}
	for _, row := range p.Rows {
		record := map[string]string{"Créneau": row.TimeSlot}
		for _, cell := range row.Cells {
			lines := make([]string, 0, len(cell.Courses))
			for _, c := range cell.Courses {
				lines = append(lines, ui.Tooltip(c.Name, c.Teacher, c.Classroom))
			}
			record[cell.Day] = strings.Join(lines, "\n")
		}
		data.Rows = append(data.Rows, record)
	}
	return data
}

func (p *TimetablePage) calendarEntries(loc *time.Location) ([]export.CalendarEntry, error) {
	var entries []export.CalendarEntry
	for _, row := range p.Rows {
		from, to, err := parseSlot(row.TimeSlot)
		if err != nil {
			return nil, err
		}
		for _, cell := range row.Cells {
			if cell.Date.IsZero() {
				continue
			}
			day := time.Date(cell.Date.Year(), cell.Date.Month(), cell.Date.Day(), 0, 0, 0, 0, loc)
			for _, c := range cell.Courses {
				entries = append(entries, export.CalendarEntry{
					UID:         fmt.Sprintf("course-%d-%s@planify", c.ID, day.Add(from).Format("20060102T1504")),
					Summary:     c.Name,
					Description: c.Teacher,
					Location:    c.Classroom,
					Start:       day.Add(from),
					End:         day.Add(to),
				})
			}
		}
	}
	return entries, nil
}

// parseSlot reads "HH:MM-HH:MM" into offsets from midnight.
func parseSlot(slot string) (time.Duration, time.Duration, error) {
	parts := strings.SplitN(slot, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("time slot %q is not HH:MM-HH:MM", slot)
	}
	from, err := clock(parts[0])
	if err != nil {
		return 0, 0, err
	}
	to, err := clock(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func clock(raw string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", raw, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
