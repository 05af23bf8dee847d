package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/calendar"
	"github.com/noah-isme/planify-web/internal/models"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

const eventCachePattern = "events:*"

type eventRepository interface {
	List(ctx context.Context, rng models.EventRange) ([]models.Event, error)
	FindByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, req models.CreateEventRequest) (models.Ack, error)
	Delete(ctx context.Context, id int64) error
}

// CalendarConfig tunes the month grid.
type CalendarConfig struct {
	Location  *time.Location
	MaxEvents int
}

// MonthPage is everything the calendar page renders.
type MonthPage struct {
	View     calendar.View
	Month    calendar.Month
	Date     time.Time
	Prev     time.Time
	Next     time.Time
	Today    time.Time
	Degraded bool
	Stale    bool
}

// CalendarService builds month grids from backend events and proxies event writes.
type CalendarService struct {
	repo      eventRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       CalendarConfig
	now       func() time.Time
}

// NewCalendarService constructs the service.
func NewCalendarService(repo eventRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg CalendarConfig) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = calendar.DefaultMaxEvents
	}
	return &CalendarService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, cfg: cfg, now: time.Now}
}

// Location is the zone grids are computed in.
func (s *CalendarService) Location() *time.Location {
	return s.cfg.Location
}

// ParseDate reads a YYYY-MM-DD reference date, falling back to today.
func (s *CalendarService) ParseDate(raw string) time.Time {
	if raw != "" {
		if t, err := time.ParseInLocation("2006-01-02", raw, s.cfg.Location); err == nil {
			return t
		}
	}
	return s.today()
}

// Month builds the page for ref's month. A backend failure does not fail the page:
// the stale copy is shown if one exists, an empty grid otherwise, and Degraded is set
// so the caller can raise an error toast. Failed fetches are not retried.
func (s *CalendarService) Month(ctx context.Context, ref time.Time, view calendar.View) MonthPage {
	ref = ref.In(s.cfg.Location)
	today := s.today()
	page := MonthPage{
		View:  view,
		Date:  ref,
		Prev:  calendar.Shift(ref, -1),
		Next:  calendar.Shift(ref, 1),
		Today: today,
	}

	// Spillover days show their own events, so the whole grid is fetched.
	start, end := calendar.GridRange(ref)
	key := fmt.Sprintf("events:%s_%s", start.Format("2006-01-02"), end.Format("2006-01-02"))

	var events []models.Event
	if !s.cache.Get(ctx, key, &events) {
		fetched, err := s.repo.List(ctx, models.EventRange{Start: start, End: end.AddDate(0, 0, 1).Add(-time.Second)})
		if err != nil {
			s.logger.Error("fetch events failed", zap.String("range", key), zap.Error(err))
			page.Degraded = true
			events = nil
			if s.cache.GetStale(ctx, key, &events) {
				page.Stale = true
				s.metrics.RecordStaleFallback()
			}
		} else {
			events = fetched
			s.cache.Set(ctx, key, events)
		}
	}

	page.Month = calendar.BuildMonth(ref, today, events, s.cfg.MaxEvents)
	return page
}

// Get returns one event.
func (s *CalendarService) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, upstreamError(err, "event not found")
	}
	return event, nil
}

// Create validates and forwards a new event, then drops cached months.
func (s *CalendarService) Create(ctx context.Context, viewer *models.Viewer, req models.CreateEventRequest) (models.Ack, error) {
	if !viewer.CanManageEvents() {
		return models.Ack{}, appErrors.Clone(appErrors.ErrForbidden, "only administrators and teachers can create events")
	}
	if err := validate(s.validator, req, "title and start date are required"); err != nil {
		return models.Ack{}, err
	}
	ack, err := s.repo.Create(ctx, req)
	if err != nil {
		return models.Ack{}, upstreamError(err, "failed to create event")
	}
	s.cache.Invalidate(ctx, eventCachePattern)
	s.logger.Info("event created", zap.Int64("event_id", ack.EventID), zap.Int64("user_id", viewer.UserID))
	return ack, nil
}

// Delete removes an event, then drops cached months.
func (s *CalendarService) Delete(ctx context.Context, viewer *models.Viewer, id int64) error {
	if !viewer.CanManageEvents() {
		return appErrors.Clone(appErrors.ErrForbidden, "only administrators and teachers can delete events")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return upstreamError(err, "failed to delete event")
	}
	s.cache.Invalidate(ctx, eventCachePattern)
	s.logger.Info("event deleted", zap.Int64("event_id", id), zap.Int64("user_id", viewer.UserID))
	return nil
}

func (s *CalendarService) today() time.Time {
	now := s.now().In(s.cfg.Location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.cfg.Location)
}
