package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/repository"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

type classroomRepoStub struct {
	rooms     []models.Classroom
	created   []models.ClassroomRequest
	updated   map[int64]models.ClassroomRequest
	deleted   []int64
	deleteErr error
}

func (s *classroomRepoStub) List(ctx context.Context) ([]models.Classroom, error) {
	return s.rooms, nil
}

func (s *classroomRepoStub) Create(ctx context.Context, req models.ClassroomRequest) (models.Ack, error) {
	s.created = append(s.created, req)
	return models.Ack{Success: true}, nil
}

func (s *classroomRepoStub) Update(ctx context.Context, id int64, req models.ClassroomRequest) (models.Ack, error) {
	if s.updated == nil {
		s.updated = map[int64]models.ClassroomRequest{}
	}
	s.updated[id] = req
	return models.Ack{Success: true}, nil
}

func (s *classroomRepoStub) Delete(ctx context.Context, id int64) (models.Ack, error) {
	if s.deleteErr != nil {
		return models.Ack{}, s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return models.Ack{Success: true}, nil
}

func TestClassroomCreateRequiresNameAndCapacity(t *testing.T) {
	repo := &classroomRepoStub{}
	svc := NewClassroomService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, teacher, models.ClassroomRequest{Name: "B12"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = svc.Create(ctx, teacher, models.ClassroomRequest{Capacity: 20})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = svc.Create(ctx, student, models.ClassroomRequest{Name: "B12", Capacity: 20})
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = svc.Create(ctx, teacher, models.ClassroomRequest{Name: "B12", Capacity: 20})
	require.NoError(t, err)
	assert.Len(t, repo.created, 1)
}

func TestClassroomUpdateAndDeleteAreAdminOnly(t *testing.T) {
	repo := &classroomRepoStub{}
	svc := NewClassroomService(repo, nil, nil)
	ctx := context.Background()
	req := models.ClassroomRequest{Name: "B12", Capacity: 25}

	_, err := svc.Update(ctx, teacher, 3, req)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
	_, err = svc.Delete(ctx, teacher, 3)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	_, err = svc.Update(ctx, admin, 3, req)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.updated[3].Capacity)
	_, err = svc.Delete(ctx, admin, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, repo.deleted)
}

func TestClassroomDeleteRejectedSurfacesReason(t *testing.T) {
	repo := &classroomRepoStub{deleteErr: &repository.RejectedError{Reason: "Impossible de supprimer la salle. Elle est utilisée par 2 cours."}}
	svc := NewClassroomService(repo, nil, nil)

	_, err := svc.Delete(context.Background(), admin, 3)
	appErr := appErrors.FromError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, appErrors.ErrValidation.Status, appErr.Status)
	assert.Contains(t, appErr.Message, "utilisée par 2 cours")
}

func TestClassroomDisplayDefaults(t *testing.T) {
	room := models.Classroom{Name: "B12", Capacity: 30}
	assert.Equal(t, "Non spécifiée", room.DisplayLocation())
	assert.Equal(t, "Aucun équipement spécifique", room.DisplayEquipment())
	assert.Equal(t, "Inactive", room.StatusLabel())
}
