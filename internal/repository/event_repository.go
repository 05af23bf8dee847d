package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/noah-isme/planify-web/internal/models"
)

// isoLayout matches what browsers send from Date.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

// EventRepository reads and writes calendar events on the backend.
type EventRepository struct {
	client backendClient
}

// NewEventRepository constructs the repository.
func NewEventRepository(client backendClient) *EventRepository {
	return &EventRepository{client: client}
}

// List returns the events between rng.Start and rng.End.
func (r *EventRepository) List(ctx context.Context, rng models.EventRange) ([]models.Event, error) {
	query := url.Values{}
	query.Set("start", rng.Start.UTC().Format(isoLayout))
	query.Set("end", rng.End.UTC().Format(isoLayout))

	var events []models.Event
	if err := r.client.Get(ctx, "/api/events", query, &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// FindByID fetches a single event.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	if err := r.client.Get(ctx, fmt.Sprintf("/api/events/%d", id), nil, &event); err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return &event, nil
}

// Create posts a new event.
func (r *EventRepository) Create(ctx context.Context, req models.CreateEventRequest) (models.Ack, error) {
	var resp ackResponse
	if err := r.client.Post(ctx, "/api/events", req, &resp); err != nil {
		return models.Ack{}, fmt.Errorf("create event: %w", err)
	}
	return resp.result()
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	var resp ackResponse
	if err := r.client.Delete(ctx, fmt.Sprintf("/api/events/%d/delete", id), &resp); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	_, err := resp.result()
	return err
}
