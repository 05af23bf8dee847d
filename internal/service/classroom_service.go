package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/models"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

type classroomRepository interface {
	List(ctx context.Context) ([]models.Classroom, error)
	Create(ctx context.Context, req models.ClassroomRequest) (models.Ack, error)
	Update(ctx context.Context, id int64, req models.ClassroomRequest) (models.Ack, error)
	Delete(ctx context.Context, id int64) (models.Ack, error)
}

// ClassroomService manages rooms.
type ClassroomService struct {
	repo      classroomRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService constructs the service.
func NewClassroomService(repo classroomRepository, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{repo: repo, validator: validate, logger: logger}
}

// List returns every classroom.
func (s *ClassroomService) List(ctx context.Context) ([]models.Classroom, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, upstreamError(err, "failed to list classrooms")
	}
	return rooms, nil
}

// Create adds a classroom. Name and capacity are required.
func (s *ClassroomService) Create(ctx context.Context, viewer *models.Viewer, req models.ClassroomRequest) (models.Ack, error) {
	if !viewer.CanManageEvents() {
		return models.Ack{}, appErrors.Clone(appErrors.ErrForbidden, "access denied")
	}
	if err := validate(s.validator, req, "name and capacity are required"); err != nil {
		return models.Ack{}, err
	}
	ack, err := s.repo.Create(ctx, req)
	if err != nil {
		return models.Ack{}, upstreamError(err, "failed to create classroom")
	}
	s.logger.Sugar().Infow("classroom created", "name", req.Name, "user_id", viewer.UserID)
	return ack, nil
}

// Update edits a classroom; only administrators see the edit action.
func (s *ClassroomService) Update(ctx context.Context, viewer *models.Viewer, id int64, req models.ClassroomRequest) (models.Ack, error) {
	if !viewer.IsAdmin() {
		return models.Ack{}, appErrors.Clone(appErrors.ErrForbidden, "only administrators can edit classrooms")
	}
	if err := validate(s.validator, req, "name and capacity are required"); err != nil {
		return models.Ack{}, err
	}
	ack, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return models.Ack{}, upstreamError(err, "failed to update classroom")
	}
	s.logger.Sugar().Infow("classroom updated", "classroom_id", id, "user_id", viewer.UserID)
	return ack, nil
}

// Delete removes a classroom. Administrators only.
func (s *ClassroomService) Delete(ctx context.Context, viewer *models.Viewer, id int64) (models.Ack, error) {
	if !viewer.IsAdmin() {
		return models.Ack{}, appErrors.Clone(appErrors.ErrForbidden, "only administrators can delete classrooms")
	}
	ack, err := s.repo.Delete(ctx, id)
	if err != nil {
		return models.Ack{}, upstreamError(err, "failed to delete classroom")
	}
	s.logger.Sugar().Infow("classroom deleted", "classroom_id", id, "user_id", viewer.UserID)
	return ack, nil
}
