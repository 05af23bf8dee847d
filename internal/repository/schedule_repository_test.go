package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/pkg/backend"
)

func TestScheduleRepositoryGet(t *testing.T) {
	client, got := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Schedule{
			"Lundi": {"08:00-09:30": {{ID: 1, Name: "Maths", Teacher: "M. Durand", Classroom: "B12"}}},
		})
	})

	schedule, err := NewScheduleRepository(client).Get(context.Background())
	require.NoError(t, err)
	require.Len(t, schedule["Lundi"]["08:00-09:30"], 1)
	assert.Equal(t, "Maths", schedule["Lundi"]["08:00-09:30"][0].Name)
	assert.Equal(t, "GET /api/edt", (*got)[0].Method+" "+(*got)[0].Path)
}

func TestScheduleRepositoryBackendFailure(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})

	_, err := NewScheduleRepository(client).Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, backend.StatusOf(err))
}
