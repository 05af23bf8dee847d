package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/planify-web/internal/render"
	"github.com/noah-isme/planify-web/internal/service"
	"github.com/noah-isme/planify-web/pkg/response"
)

var exportFormats = []string{service.FormatPDF, service.FormatCSV, service.FormatICal}

type timetableService interface {
	Week(ctx context.Context, q service.TimetableQuery) (*service.TimetablePage, error)
	Export(ctx context.Context, q service.TimetableQuery, format string) (*service.ExportFile, error)
}

// TimetableHandler serves the weekly timetable and its exports.
type TimetableHandler struct {
	service  timetableService
	pages    *Pages
	location *time.Location
}

// NewTimetableHandler constructs the handler. loc is used to read the week parameter.
func NewTimetableHandler(svc timetableService, pages *Pages, loc *time.Location) *TimetableHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TimetableHandler{service: svc, pages: pages, location: loc}
}

func (h *TimetableHandler) query(c *gin.Context) service.TimetableQuery {
	q := service.TimetableQuery{
		Nav:       strings.ToLower(strings.TrimSpace(c.Query("nav"))),
		Professor: strings.TrimSpace(c.Query("professor")),
		Classroom: strings.TrimSpace(c.Query("classroom")),
		Subject:   strings.TrimSpace(c.Query("subject")),
	}
	if week, err := time.ParseInLocation("2006-01-02", c.Query("week"), h.location); err == nil {
		q.Week = week
	}
	return q
}

// Week godoc
// @Summary Weekly timetable page
// @Tags Timetable
// @Produce html
// @Param week query string false "Any date of the week (YYYY-MM-DD)"
// @Param nav query string false "prev, next or today"
// @Param professor query string false "Exact teacher name, or all"
// @Param classroom query string false "Exact classroom, or all"
// @Param subject query string false "Subject substring"
// @Param tab query string false "grille or liste"
// @Success 200 {string} string "HTML page"
// @Router /edt [get]
func (h *TimetableHandler) Week(c *gin.Context) {
	q := h.query(c)
	page, err := h.service.Week(c.Request.Context(), q)
	if err != nil {
		if wantsJSON(c) {
			response.Error(c, err)
			return
		}
		h.pages.fail(c, "load timetable failed", err)
		page = &service.TimetablePage{Query: q}
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, page)
		return
	}
	h.pages.render(c, http.StatusOK, render.PageTimetable, "Emploi du temps", "edt", render.TimetablePage{
		TimetablePage: page,
		Tabs:          render.NewTimetableTabs(c.Query("tab")),
		Formats:       exportFormats,
	})
}

// Export godoc
// @Summary Export the filtered week
// @Tags Timetable
// @Produce application/pdf,text/csv,text/calendar
// @Param format query string true "pdf, csv or ical"
// @Param week query string false "Any date of the week (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /edt/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), h.query(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
