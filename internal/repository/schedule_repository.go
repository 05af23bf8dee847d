package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/planify-web/internal/models"
)

// ScheduleRepository reads the weekly timetable.
type ScheduleRepository struct {
	client backendClient
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(client backendClient) *ScheduleRepository {
	return &ScheduleRepository{client: client}
}

// Get returns the full timetable keyed by day and time slot.
func (r *ScheduleRepository) Get(ctx context.Context) (models.Schedule, error) {
	schedule := models.Schedule{}
	if err := r.client.Get(ctx, "/api/edt", nil, &schedule); err != nil {
		return nil, fmt.Errorf("get timetable: %w", err)
	}
	return schedule, nil
}
