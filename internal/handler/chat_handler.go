package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/planify-web/internal/models"
	"github.com/noah-isme/planify-web/internal/render"
	"github.com/noah-isme/planify-web/internal/service"
	appErrors "github.com/noah-isme/planify-web/pkg/errors"
	"github.com/noah-isme/planify-web/pkg/response"
)

// LastMessageHeader carries the highest message id of a polling response.
const LastMessageHeader = "X-Last-Message-ID"

type chatService interface {
	Inbox(ctx context.Context, query string) (*service.Inbox, error)
	Room(ctx context.Context, chatID int64) ([]models.ChatMessage, error)
	MessagesAfter(ctx context.Context, chatID, after int64) (*service.MessageBatch, error)
	Send(ctx context.Context, req models.SendMessageRequest) (*models.SendMessageResult, error)
	Start(ctx context.Context, req models.StartChatRequest) (*models.StartChatResult, error)
}

// ChatIntervals are the browser polling cadences.
type ChatIntervals struct {
	Conversation time.Duration
	Inbox        time.Duration
}

// ChatHandler serves the inbox, conversations and their polling fragments.
type ChatHandler struct {
	service   chatService
	pages     *Pages
	intervals ChatIntervals
}

// NewChatHandler constructs the handler.
func NewChatHandler(svc chatService, pages *Pages, intervals ChatIntervals) *ChatHandler {
	if intervals.Conversation <= 0 {
		intervals.Conversation = 3 * time.Second
	}
	if intervals.Inbox <= 0 {
		intervals.Inbox = 5 * time.Second
	}
	return &ChatHandler{service: svc, pages: pages, intervals: intervals}
}

// Inbox godoc
// @Summary Conversation list
// @Tags Chat
// @Produce html,json
// @Param q query string false "Filter on name or preview"
// @Param fragment query bool false "Return the list fragment only"
// @Success 200 {object} response.Envelope
// @Router /chat [get]
func (h *ChatHandler) Inbox(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	inbox, err := h.service.Inbox(c.Request.Context(), query)
	if err != nil {
		if wantsJSON(c) {
			response.Error(c, err)
			return
		}
		if c.Query("fragment") != "" {
			response.Error(c, err)
			return
		}
		h.pages.fail(c, "load inbox failed", err)
		inbox = &service.Inbox{Query: query}
	}

	switch {
	case wantsJSON(c):
		response.JSON(c, http.StatusOK, inbox)
	case c.Query("fragment") != "":
		h.pages.fragment(c, render.FragmentInbox, inbox)
	default:
		h.pages.render(c, http.StatusOK, render.PageInbox, "Messages", "chat", render.InboxPage{
			Inbox:      inbox,
			PollMillis: h.intervals.Inbox.Milliseconds(),
		})
	}
}

// Unread godoc
// @Summary Unread badge total
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /chat/unread [get]
func (h *ChatHandler) Unread(c *gin.Context) {
	inbox, err := h.service.Inbox(c.Request.Context(), "")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"unread": inbox.Unread})
}

// Room godoc
// @Summary Conversation page
// @Tags Chat
// @Produce html
// @Param id path int true "Chat ID"
// @Success 200 {string} string "HTML page"
// @Router /chat/{id} [get]
func (h *ChatHandler) Room(c *gin.Context) {
	chatID, ok := paramID(c, "id")
	if !ok {
		h.pages.failOrRedirect(c, "invalid chat id", appErrors.Clone(appErrors.ErrValidation, "invalid chat id"), "/chat")
		return
	}
	msgs, err := h.service.Room(c.Request.Context(), chatID)
	if err != nil {
		h.pages.failOrRedirect(c, "load conversation failed", err, "/chat")
		return
	}
	var last int64
	for _, m := range msgs {
		if m.ID > last {
			last = m.ID
		}
	}
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, service.MessageBatch{Messages: msgs, LastID: last})
		return
	}
	h.pages.render(c, http.StatusOK, render.PageChatRoom, "Conversation", "chat", render.ChatRoomPage{
		ChatID:     chatID,
		Messages:   msgs,
		LastID:     last,
		PollMillis: h.intervals.Conversation.Milliseconds(),
	})
}

// Messages godoc
// @Summary Messages newer than a given id
// @Tags Chat
// @Produce html,json
// @Param id path int true "Chat ID"
// @Param after query int false "Highest message id already rendered"
// @Success 200 {object} response.Envelope
// @Header 200 {integer} X-Last-Message-ID "Highest message id"
// @Router /chat/{id}/messages [get]
func (h *ChatHandler) Messages(c *gin.Context) {
	chatID, ok := paramID(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid chat id"))
		return
	}
	after, _ := strconv.ParseInt(c.Query("after"), 10, 64)
	batch, err := h.service.MessagesAfter(c.Request.Context(), chatID, after)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header(LastMessageHeader, strconv.FormatInt(batch.LastID, 10))
	if wantsJSON(c) {
		response.JSON(c, http.StatusOK, batch)
		return
	}
	h.pages.fragment(c, render.FragmentMessages, render.MessagesFragment{Messages: batch.Messages})
}

// Send godoc
// @Summary Send a message
// @Description A backend refusal is returned with success=false and status 200.
// @Tags Chat
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body models.SendMessageRequest true "Message"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /chat/send [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		h.pages.failOrRedirect(c, "invalid message form", appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"), "/chat")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	back := "/chat/" + strconv.FormatInt(req.ChatID, 10)

	result, err := h.service.Send(c.Request.Context(), req)
	if wantsJSON(c) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, result)
		return
	}
	if err != nil {
		if appErrors.FromError(err).Status == http.StatusBadRequest {
			c.Redirect(http.StatusSeeOther, back)
			return
		}
		h.pages.fail(c, "send message failed", err)
	} else if !result.Success {
		h.pages.fail(c, "message rejected", appErrors.Clone(appErrors.ErrUpstream, result.Error))
	}
	c.Redirect(http.StatusSeeOther, back)
}

// Start godoc
// @Summary Start a conversation
// @Tags Chat
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param payload body models.StartChatRequest true "Other user"
// @Success 201 {object} response.Envelope
// @Router /chat/start [post]
func (h *ChatHandler) Start(c *gin.Context) {
	var req models.StartChatRequest
	if err := c.ShouldBind(&req); err != nil {
		h.pages.failOrRedirect(c, "invalid start form", appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid start payload"), "/chat")
		return
	}
	result, err := h.service.Start(c.Request.Context(), req)
	if err != nil {
		h.pages.failOrRedirect(c, "start chat failed", err, "/chat")
		return
	}
	if wantsJSON(c) {
		response.Created(c, result)
		return
	}
	c.Redirect(http.StatusSeeOther, "/chat/"+strconv.FormatInt(result.ChatID, 10))
}
