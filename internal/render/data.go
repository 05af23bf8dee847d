package render

import (
	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/service"
	"github.com/noah-isme/planify-web/internal/ui"
)

// Layout is the data every page is rendered with.
type Layout struct {
	Title  string
	Nav    string
	Viewer *models.Viewer
	Theme  ui.Theme
	Toasts []ui.Toast
	Dialog *ui.Dialog
	Unread int
	Page   interface{}
}

// BodyClass is the class set on <body>.
func (l Layout) BodyClass() string {
	return l.Theme.BodyClass()
}

// CalendarPage backs calendar.html.
type CalendarPage struct {
	service.MonthPage
	Modals    *ui.ModalSet
	Submit    *ui.SubmitButton
	CanManage bool
	Form      models.CreateEventRequest
}

// EventPage backs event.html.
type EventPage struct {
	Event     models.Event
	CanManage bool
}

// TimetablePage backs edt.html.
type TimetablePage struct {
	*service.TimetablePage
	Tabs    *ui.Tabs
	Formats []string
}

// ClassroomsPage backs classrooms.html.
type ClassroomsPage struct {
	Classrooms []models.Classroom
	Modals     *ui.ModalSet
	Submit     *ui.SubmitButton
	CanCreate  bool
	IsAdmin    bool
	Form       models.ClassroomRequest
	Editing    *models.Classroom
}

// InboxPage backs inbox.html.
type InboxPage struct {
	*service.Inbox
	PollMillis int64
}

// ChatRoomPage backs chat_room.html.
type ChatRoomPage struct {
	ChatID     int64
	Messages   []models.ChatMessage
	LastID     int64
	PollMillis int64
}

// MessagesFragment backs the messages partial.
type MessagesFragment struct {
	Messages []models.ChatMessage
}

// Timetable tab ids.
const (
	TabGrid = "grille"
	TabList = "liste"
)

// NewTimetableTabs builds the timetable tabs with active selected, the grid by default.
func NewTimetableTabs(active string) *ui.Tabs {
	tabs := ui.NewTabs(TabGrid, TabList)
	tabs.Activate(active)
	return tabs
}
