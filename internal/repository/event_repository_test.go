package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/pkg/backend"
)

func TestEventRepositoryListSendsISORange(t *testing.T) {
	client, got := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Event{{ID: 1, Title: "Conseil", Start: "2024-03-05T09:00:00"}})
	})
	repo := NewEventRepository(client)

	rng := models.EventRange{
		Start: time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC),
	}
	events, err := repo.List(context.Background(), rng)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Conseil", events[0].Title)

	require.Len(t, *got, 1)
	assert.Equal(t, "/api/events", (*got)[0].Path)
	assert.Equal(t, "end=2024-03-31T23%3A59%3A59.000Z&start=2024-02-26T00%3A00%3A00.000Z", (*got)[0].Query)
}

func TestEventRepositoryCreateRejected(t *testing.T) {
	client, got := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": "date invalide"})
	})
	repo := NewEventRepository(client)

	_, err := repo.Create(context.Background(), models.CreateEventRequest{Title: "Sortie", StartDate: "2024-03-05T09:00"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Contains(t, err.Error(), "date invalide")
	assert.Equal(t, "Sortie", (*got)[0].Body["title"])
	assert.Equal(t, "2024-03-05T09:00", (*got)[0].Body["start_date"])
}

func TestEventRepositoryCreateReturnsID(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "event_id": 12})
	})
	ack, err := NewEventRepository(client).Create(context.Background(), models.CreateEventRequest{Title: "x", StartDate: "2024-03-05"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), ack.EventID)
}

func TestEventRepositoryDeleteAndNotFound(t *testing.T) {
	client, got := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})
	repo := NewEventRepository(client)

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.Equal(t, "/api/events/4/delete", (*got)[0].Path)

	_, err := repo.FindByID(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, backend.StatusOf(err))
}
