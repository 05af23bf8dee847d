package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/planify-web/internal/models"
)

// ClassroomRepository manages rooms on the backend.
type ClassroomRepository struct {
	client backendClient
}

// NewClassroomRepository constructs the repository.
func NewClassroomRepository(client backendClient) *ClassroomRepository {
	return &ClassroomRepository{client: client}
}

// List returns every classroom.
func (r *ClassroomRepository) List(ctx context.Context) ([]models.Classroom, error) {
	var rooms []models.Classroom
	if err := r.client.Get(ctx, "/api/classrooms", nil, &rooms); err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return rooms, nil
}

// Create adds a classroom.
func (r *ClassroomRepository) Create(ctx context.Context, req models.ClassroomRequest) (models.Ack, error) {
	var resp ackResponse
	if err := r.client.Post(ctx, "/api/classrooms", req, &resp); err != nil {
		return models.Ack{}, fmt.Errorf("create classroom: %w", err)
	}
	return resp.result()
}

// Update replaces a classroom's fields.
func (r *ClassroomRepository) Update(ctx context.Context, id int64, req models.ClassroomRequest) (models.Ack, error) {
	var resp ackResponse
	if err := r.client.Put(ctx, fmt.Sprintf("/api/classrooms/%d", id), req, &resp); err != nil {
		return models.Ack{}, fmt.Errorf("update classroom %d: %w", id, err)
	}
	return resp.result()
}

// Delete removes a classroom.
func (r *ClassroomRepository) Delete(ctx context.Context, id int64) (models.Ack, error) {
	var resp ackResponse
	if err := r.client.Delete(ctx, fmt.Sprintf("/api/classrooms/%d", id), &resp); err != nil {
		return models.Ack{}, fmt.Errorf("delete classroom %d: %w", id, err)
	}
	return resp.result()
}
