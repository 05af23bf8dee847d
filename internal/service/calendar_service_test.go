package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/planify-web/internal/calendar"
	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/repository"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

type eventRepoStub struct {
	events    []models.Event
	listErr   error
	lists     int
	lastRange models.EventRange
	created   []models.CreateEventRequest
	createErr error
	deleted   []int64
}

func (s *eventRepoStub) List(ctx context.Context, rng models.EventRange) ([]models.Event, error) {
	s.lists++
	s.lastRange = rng
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.events, nil
}

func (s *eventRepoStub) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	for _, e := range s.events {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, errors.New("get event: GET /api/events/1: backend returned 404 Not Found")
}

func (s *eventRepoStub) Create(ctx context.Context, req models.CreateEventRequest) (models.Ack, error) {
	if s.createErr != nil {
		return models.Ack{}, s.createErr
	}
	s.created = append(s.created, req)
	return models.Ack{Success: true, EventID: 10}, nil
}

func (s *eventRepoStub) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newCalendarServiceForTest(repo *eventRepoStub, cache *memoryCache) *CalendarService {
	cacheSvc := NewCacheService(cache, nil, CacheConfig{TTL: time.Minute, StaleTTL: time.Hour}, nil)
	svc := NewCalendarService(repo, cacheSvc, nil, nil, nil, CalendarConfig{Location: time.UTC})
	svc.now = func() time.Time { return time.Date(2024, time.March, 12, 15, 0, 0, 0, time.UTC) }
	return svc
}

var (
	admin   = &models.Viewer{UserID: 1, Role: models.RoleAdmin, Token: "t"}
	teacher = &models.Viewer{UserID: 2, Role: models.RoleTeacher, Token: "t"}
	student = &models.Viewer{UserID: 3, Role: models.RoleStudent, Token: "t"}
)

func TestCalendarMonthFetchesGridRangeAndCaches(t *testing.T) {
	repo := &eventRepoStub{events: []models.Event{{ID: 1, Title: "Conseil", Start: "2024-03-05T09:00:00"}}}
	cache := newMemoryCache()
	svc := newCalendarServiceForTest(repo, cache)

	page := svc.Month(context.Background(), svc.ParseDate("2024-03-01"), calendar.ViewMonth)
	assert.False(t, page.Degraded)
	assert.Equal(t, time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC), repo.lastRange.Start)
	assert.Equal(t, time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC), repo.lastRange.End)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), page.Prev)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), page.Next)

	var found bool
	for _, d := range page.Month.Days() {
		if d.ISODate() == "2024-03-05" {
			found = len(d.Events) == 1
		}
		if d.IsToday {
			assert.Equal(t, "2024-03-12", d.ISODate())
		}
	}
	assert.True(t, found)

	svc.Month(context.Background(), svc.ParseDate("2024-03-20"), calendar.ViewMonth)
	assert.Equal(t, 1, repo.lists)
	assert.Contains(t, cache.values, "events:2024-02-26_2024-03-31")
	assert.Equal(t, time.Hour, cache.ttls["events:2024-02-26_2024-03-31:stale"])
}

func TestCalendarMonthFallsBackToStaleCopy(t *testing.T) {
	repo := &eventRepoStub{events: []models.Event{{ID: 1, Title: "Conseil", Start: "2024-03-05T09:00:00"}}}
	cache := newMemoryCache()
	svc := newCalendarServiceForTest(repo, cache)
	ctx := context.Background()

	svc.Month(ctx, svc.ParseDate("2024-03-01"), calendar.ViewMonth)
	cache.expireFresh()
	repo.listErr = errors.New("connection refused")

	page := svc.Month(ctx, svc.ParseDate("2024-03-01"), calendar.ViewMonth)
	assert.True(t, page.Degraded)
	assert.True(t, page.Stale)
	total := 0
	for _, d := range page.Month.Days() {
		total += len(d.Events)
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, 2, repo.lists)
}

func TestCalendarMonthEmptyGridWhenNothingCached(t *testing.T) {
	repo := &eventRepoStub{listErr: errors.New("timeout")}
	svc := newCalendarServiceForTest(repo, newMemoryCache())

	page := svc.Month(context.Background(), svc.ParseDate("bogus"), calendar.ViewMonth)
	assert.True(t, page.Degraded)
	assert.False(t, page.Stale)
	assert.Equal(t, time.March, page.Date.Month())
	assert.Len(t, page.Month.Weeks, 5)
	assert.Equal(t, 1, repo.lists)
}

func TestCalendarMonthWithoutCache(t *testing.T) {
	repo := &eventRepoStub{}
	svc := NewCalendarService(repo, nil, nil, nil, nil, CalendarConfig{Location: time.UTC})
	svc.Month(context.Background(), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), calendar.ViewMonth)
	svc.Month(context.Background(), time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), calendar.ViewMonth)
	assert.Equal(t, 2, repo.lists)
}

func TestCalendarCreateValidatesAndInvalidates(t *testing.T) {
	repo := &eventRepoStub{}
	cache := newMemoryCache()
	svc := newCalendarServiceForTest(repo, cache)
	ctx := context.Background()
	svc.Month(ctx, svc.ParseDate("2024-03-01"), calendar.ViewMonth)

	_, err := svc.Create(ctx, teacher, models.CreateEventRequest{Title: "Sortie"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	_, err = svc.Create(ctx, student, models.CreateEventRequest{Title: "Sortie", StartDate: "2024-03-05T09:00"})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	ack, err := svc.Create(ctx, teacher, models.CreateEventRequest{Title: "Sortie", StartDate: "2024-03-05T09:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), ack.EventID)
	assert.Len(t, repo.created, 1)
	assert.Empty(t, cache.values)
}

func TestCalendarCreateRejectedByBackend(t *testing.T) {
	repo := &eventRepoStub{createErr: &repository.RejectedError{Reason: "L'heure de fin doit être postérieure à l'heure de début"}}
	svc := newCalendarServiceForTest(repo, newMemoryCache())

	_, err := svc.Create(context.Background(), admin, models.CreateEventRequest{Title: "x", StartDate: "2024-03-05T09:00"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "heure de fin")
}

func TestCalendarDeleteRequiresManager(t *testing.T) {
	repo := &eventRepoStub{}
	svc := newCalendarServiceForTest(repo, newMemoryCache())

	assert.True(t, errors.Is(svc.Delete(context.Background(), student, 4), appErrors.ErrForbidden))
	require.NoError(t, svc.Delete(context.Background(), admin, 4))
	assert.Equal(t, []int64{4}, repo.deleted)
}

func TestCalendarGet(t *testing.T) {
	repo := &eventRepoStub{events: []models.Event{{ID: 3, Title: "Brevet blanc"}}}
	svc := newCalendarServiceForTest(repo, nil)

	ev, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Brevet blanc", ev.Title)

	_, err = svc.Get(context.Background(), 99)
	assert.Error(t, err)
}
