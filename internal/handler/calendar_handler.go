package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/planify-web/internal/calendar"
	"github.com/noah-isme/planify-web/internal/middleware"
	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/render"
	"github.com/noah-isme/planify-web/internal/service"
	"github.com/noah-isme/planify-web/internal/ui"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
	"github.com/noah-isme/planify-web/pkg/response"
)

const eventModal = "event-modal"

type calendarService interface {
	ParseDate(raw string) time.Time
	Month(ctx context.Context, ref time.Time, view calendar.View) service.MonthPage
	Get(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, viewer *models.Viewer, req models.CreateEventRequest) (models.Ack, error)
	Delete(ctx context.Context, viewer *models.Viewer, id int64) error
}

// CalendarHandler serves the month grid and event pages.
type CalendarHandler struct {
	service calendarService
	pages   *Pages
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(svc calendarService, pages *Pages) *CalendarHandler {
	return &CalendarHandler{service: svc, pages: pages}
}

func (h *CalendarHandler) month(c *gin.Context) service.MonthPage {
	ref := h.service.ParseDate(c.Query("date"))
	page := h.service.Month(c.Request.Context(), ref, calendar.ParseView(c.Query("view")))
	if page.Degraded {
		h.pages.toast(c, ui.GenericError, ui.ToastError)
	}
	if page.Stale {
		middleware.MarkStale(c)
	}
	return page
}

// Month godoc
// @Summary Calendar page
// @Tags Calendar
// @Produce html
// @Param view query string false "month, week or day"
// @Param date query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {string} string "HTML page"
// @Router /calendar [get]
func (h *CalendarHandler) Month(c *gin.Context) {
	page := h.month(c)
	viewer := viewerFromContext(c)
	h.pages.render(c, http.StatusOK, render.PageCalendar, ui.MonthTitle(page.Date), "calendar", render.CalendarPage{
		MonthPage: page,
		Modals:    ui.NewModalSet(c.Query("modal")),
		Submit:    ui.NewSubmitButton("Créer"),
		CanManage: viewer.CanManageEvents(),
	})
}

// Grid godoc
// @Summary Month grid fragment
// @Tags Calendar
// @Produce html
// @Param date query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {string} string "HTML fragment"
// @Router /calendar/grid [get]
func (h *CalendarHandler) Grid(c *gin.Context) {
	h.pages.fragment(c, render.FragmentGrid, h.month(c))
}

// Create godoc
// @Summary Create an event
// @Tags Calendar
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body models.CreateEventRequest true "Event"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /events [post]
func (h *CalendarHandler) Create(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		h.pages.failOrRedirect(c, "invalid event form", appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"), "/calendar")
		return
	}
	viewer := viewerFromContext(c)

	var ack models.Ack
	err := h.pages.submit(c, "Créer", func(ctx context.Context) error {
		var err error
		ack, err = h.service.Create(ctx, viewer, req)
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
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/calendar?"+render.Query("modal", eventModal))
		return
	}

	message := ack.Message
	if message == "" {
		message = "Événement créé avec succès"
	}
	h.pages.toast(c, message, ui.ToastSuccess)
	target := "/calendar"
	if day := dateOnly(req.StartDate); day != "" {
		target = render.CalendarURL(calendar.ViewMonth, h.service.ParseDate(day))
	}
	c.Redirect(http.StatusSeeOther, target)
}

// Show godoc
// @Summary Event detail page
// @Tags Calendar
// @Produce html
// @Param id path int true "Event ID"
// @Success 200 {string} string "HTML page"
// @Router /events/{id} [get]
func (h *CalendarHandler) Show(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.pages.failOrRedirect(c, "invalid event id", appErrors.Clone(appErrors.ErrValidation, "invalid event id"), "/calendar")
		return
	}
	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.pages.failOrRedirect(c, "load event failed", err, "/calendar")
		return
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, event)
		return
	}
	h.pages.render(c, http.StatusOK, render.PageEvent, event.Title, "calendar", render.EventPage{
		Event:     *event,
		CanManage: viewerFromContext(c).CanManageEvents(),
	})
}

// Delete godoc
// @Summary Delete an event
// @Description Browsers are sent back to the event page with a confirm dialog; JSON clients delete directly.
// @Tags Calendar
// @Produce json
// @Param id path int true "Event ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /events/{id}/delete [post]
func (h *CalendarHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		h.pages.failOrRedirect(c, "invalid event id", appErrors.Clone(appErrors.ErrValidation, "invalid event id"), "/calendar")
		return
	}
	viewer := viewerFromContext(c)
	if !viewer.CanManageEvents() {
		h.pages.failOrRedirect(c, "event delete denied", appErrors.Clone(appErrors.ErrForbidden, "access denied"), "/events/"+strconv.FormatInt(id, 10))
		return
	}

	if wantsJSON(c) {
		if err := h.service.Delete(c.Request.Context(), viewer, id); err != nil {
			response.Error(c, err)
			return
		}
		response.NoContent(c)
		return
	}

	back := "/events/" + strconv.FormatInt(id, 10)
	h.pages.confirm(c, back, "/calendar", "Événement supprimé", func(ctx context.Context) error {
		return h.service.Delete(ctx, viewer, id)
	})
}

// dateOnly trims a datetime-local value to its date.
func dateOnly(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > 10 {
		return raw[:10]
	}
	return raw
}
