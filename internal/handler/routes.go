package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers groups every handler mounted by RegisterRoutes.
type Handlers struct {
	Calendar    *CalendarHandler
	Timetable   *TimetableHandler
	Classroom   *ClassroomHandler
	Chat        *ChatHandler
	Preference  *PreferenceHandler
	Dialog      *DialogHandler
	Metrics     *MetricsHandler
	ManageRoles gin.HandlerFunc
}

// RegisterRoutes mounts the observability endpoints publicly and the pages behind auth.
func RegisterRoutes(r gin.IRouter, h Handlers, auth gin.HandlerFunc) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	pages := r.Group("/", auth)
	manage := []gin.HandlerFunc{}
	if h.ManageRoles != nil {
		manage = append(manage, h.ManageRoles)
	}

	pages.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/calendar") })
	pages.GET("/calendar", h.Calendar.Month)
	pages.GET("/calendar/grid", h.Calendar.Grid)
	pages.POST("/events", append(manage, h.Calendar.Create)...)
	pages.GET("/events/:id", h.Calendar.Show)
	pages.POST("/events/:id/delete", append(manage, h.Calendar.Delete)...)

	pages.GET("/edt", h.Timetable.Week)
	pages.GET("/edt/export", h.Timetable.Export)

	pages.GET("/classrooms", h.Classroom.List)
	pages.POST("/classrooms", append(manage, h.Classroom.Create)...)
	pages.POST("/classrooms/:id", append(manage, h.Classroom.Update)...)
	pages.POST("/classrooms/:id/delete", append(manage, h.Classroom.Delete)...)

	pages.GET("/chat", h.Chat.Inbox)
	pages.GET("/chat/unread", h.Chat.Unread)
	pages.POST("/chat/send", h.Chat.Send)
	pages.POST("/chat/start", h.Chat.Start)
	pages.GET("/chat/:id", h.Chat.Room)
	pages.GET("/chat/:id/messages", h.Chat.Messages)

	pages.POST("/preferences/theme", h.Preference.ToggleTheme)
	pages.POST("/dialogs/:id", h.Dialog.Resolve)
}
