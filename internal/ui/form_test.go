package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/planify-web/internal/models"
)

func TestSubmitShowsSpinnerAndRestores(t *testing.T) {
	n := NewNotifier(time.Minute)
	defer n.Close()
	s := NewSubmitter(n, nil)
	btn := NewSubmitButton("Créer")

	err := s.Submit(context.Background(), "u1", btn, func(context.Context) error {
		assert.Equal(t, LoadingLabel, btn.Label())
		assert.True(t, btn.Disabled())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Créer", btn.Label())
	assert.False(t, btn.Disabled())
	assert.Empty(t, n.Active("u1"))
}

func TestSubmitFailureRaisesGenericToast(t *testing.T) {
	n := NewNotifier(time.Minute)
	defer n.Close()
	s := NewSubmitter(n, nil)
	btn := NewSubmitButton("Envoyer")

	err := s.Submit(context.Background(), "u1", btn, func(context.Context) error {
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, "Envoyer", btn.Label())
	assert.False(t, btn.Disabled())

	active := n.Active("u1")
	require.Len(t, active, 1)
	assert.Equal(t, GenericError, active[0].Message)
	assert.Equal(t, ToastError, active[0].Type)
}

func TestFrenchFormatting(t *testing.T) {
	ts := time.Date(2024, time.March, 4, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "04/03/2024", FormatDate(ts))
	assert.Equal(t, "09:05", FormatTime(ts))
	assert.Equal(t, "04/03/2024 09:05", FormatDateTime(ts))
	assert.Equal(t, "Mars 2024", MonthTitle(ts))
	assert.Equal(t, "Lundi 4 mars 2024", LongDate(ts))
	assert.Equal(t, "Semaine du 04/03/2024 au 10/03/2024", WeekLabel(ts))
}

func TestTooltips(t *testing.T) {
	ev := models.Event{Title: "Conseil", Start: "2024-03-04T09:00:00", End: "2024-03-04T10:30:00", Location: "Salle B"}
	assert.Equal(t, "Conseil • 09:00 - 10:30 • Salle B", EventTooltip(ev, time.UTC))
	assert.Equal(t, "Maths • M. Durand", CourseTooltip(models.Course{Name: "Maths", Teacher: "M. Durand"}))
	assert.Equal(t, "", Tooltip(" ", ""))
}
