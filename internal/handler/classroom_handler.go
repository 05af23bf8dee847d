package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/render"
	"github.com/noah-isme/planify-web/internal/ui"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
	"github.com/noah-isme/planify-web/pkg/response"
)

const classroomModal = "classroom-modal"

type classroomService interface {
	List(ctx context.Context) ([]models.Classroom, error)
	Create(ctx context.Context, viewer *models.Viewer, req models.ClassroomRequest) (models.Ack, error)
	Update(ctx context.Context, viewer *models.Viewer, id int64, req models.ClassroomRequest) (models.Ack, error)
	Delete(ctx context.Context, viewer *models.Viewer, id int64) (models.Ack, error)
}

// ClassroomHandler serves the classroom cards and their forms.
type ClassroomHandler struct {
	service classroomService
	pages   *Pages
}

// NewClassroomHandler constructs the handler.
func NewClassroomHandler(svc classroomService, pages *Pages) *ClassroomHandler {
	return &ClassroomHandler{service: svc, pages: pages}
}

// List godoc
// @Summary Classrooms page
// @Tags Classrooms
// @Produce html,json
// @Param edit query int false "Classroom to edit (admins)"
// @Success 200 {string} string "HTML page"
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		if wantsJSON(c) {
			response.Error(c, err)
			return
		}
		h.pages.fail(c, "list classrooms failed", err)
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, rooms)
		return
	}

	viewer := viewerFromContext(c)
	page := render.ClassroomsPage{
		Classrooms: rooms,
		Modals:     ui.NewModalSet(c.Query("modal")),
		Submit:     ui.NewSubmitButton("Enregistrer"),
		CanCreate:  viewer.CanManageEvents(),
		IsAdmin:    viewer.IsAdmin(),
		Form:       models.ClassroomRequest{IsActive: true},
	}
	if edit, err := strconv.ParseInt(c.Query("edit"), 10, 64); err == nil && viewer.IsAdmin() {
		for i := range rooms {
			if rooms[i].ID == edit {
				room := rooms[i]
				page.Editing = &room
				page.Form = models.ClassroomRequest{
					Name:      room.Name,
					Capacity:  room.Capacity,
					Location:  room.Location,
					Equipment: room.Equipment,
					IsActive:  room.IsActive,
				}
				page.Modals.Open(classroomModal)
				break
			}
		}
	}
	h.pages.render(c, http.StatusOK, render.PageClassrooms, "Salles", "classrooms", page)
}

// Create godoc
// @Summary Create a classroom
// @Tags Classrooms
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body models.ClassroomRequest true "Classroom"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classrooms [post]
func (h *ClassroomHandler) Create(c *gin.Context) {
	h.save(c, "Salle créée avec succès", func(ctx context.Context, viewer *models.Viewer, req models.ClassroomRequest) (models.Ack, error) {
		return h.service.Create(ctx, viewer, req)
	})
}

// Update godoc
// @Summary Update a classroom
// @Tags Classrooms
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Classroom ID"
// @Param payload body models.ClassroomRequest true "Classroom"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{id} [post]
func (h *ClassroomHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.pages.failOrRedirect(c, "invalid classroom id", appErrors.Clone(appErrors.ErrValidation, "invalid classroom id"), "/classrooms")
		return
	}
	h.save(c, "Salle mise à jour", func(ctx context.Context, viewer *models.Viewer, req models.ClassroomRequest) (models.Ack, error) {
		return h.service.Update(ctx, viewer, id, req)
	})
}

func (h *ClassroomHandler) save(c *gin.Context, done string, fn func(context.Context, *models.Viewer, models.ClassroomRequest) (models.Ack, error)) {
	var req models.ClassroomRequest
	if err := c.ShouldBind(&req); err != nil {
		h.pages.failOrRedirect(c, "invalid classroom form", appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid classroom payload"), "/classrooms")
		return
	}
	viewer := viewerFromContext(c)

	var ack models.Ack
	err := h.pages.submit(c, "Enregistrer", func(ctx context.Context) error {
		var err error
		ack, err = fn(ctx, viewer, req)
		return err
	})
	if wantsJSON(c) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, ack)
		return
	}
	if err == nil {
		h.pages.toast(c, done, ui.ToastSuccess)
	}
	c.Redirect(http.StatusSeeOther, "/classrooms")
}

// Delete godoc
// @Summary Delete a classroom
// @Description Administrators only. Browsers get a confirm dialog; JSON clients delete directly.
// @Tags Classrooms
// @Produce json
// @Param id path int true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /classrooms/{id}/delete [post]
func (h *ClassroomHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.pages.failOrRedirect(c, "invalid classroom id", appErrors.Clone(appErrors.ErrValidation, "invalid classroom id"), "/classrooms")
		return
	}
	viewer := viewerFromContext(c)
	if !viewer.IsAdmin() {
		h.pages.failOrRedirect(c, "classroom delete denied", appErrors.Clone(appErrors.ErrForbidden, "only administrators can delete classrooms"), "/classrooms")
		return
	}

	if wantsJSON(c) {
		ack, err := h.service.Delete(c.Request.Context(), viewer, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, ack)
		return
	}

	h.pages.confirm(c, "/classrooms", "/classrooms", "Salle supprimée", func(ctx context.Context) error {
		_, err := h.service.Delete(ctx, viewer, id)
		return err
	})
}
