package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/internal/chat"
	"github.com/noah-isme/planify-web/internal/models"
)

type chatRepository interface {
	Conversations(ctx context.Context) ([]models.Conversation, error)
	Messages(ctx context.Context, chatID int64) ([]models.ChatMessage, error)
	Send(ctx context.Context, chatID int64, content string) (*models.SendMessageResult, error)
	Start(ctx context.Context, userID int64) (*models.StartChatResult, error)
	MarkRead(ctx context.Context, chatID int64) error
}

// Inbox is the filtered conversation list and its unread badge.
type Inbox struct {
	Conversations []models.Conversation `json:"conversations"`
	Query         string                `json:"query,omitempty"`
	Unread        int                   `json:"unread"`
}

// MessageBatch is the result of an incremental poll.
type MessageBatch struct {
	Messages []models.ChatMessage `json:"messages"`
	LastID   int64                `json:"last_id"`
}

// ChatService serves the inbox, rooms and incremental message polls.
type ChatService struct {
	repo      chatRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewChatService constructs the service.
func NewChatService(repo chatRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ChatService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{repo: repo, metrics: metrics, validator: validate, logger: logger}
}

// Inbox lists conversations matching query. The badge counts every conversation,
// not only the filtered ones.
func (s *ChatService) Inbox(ctx context.Context, query string) (*Inbox, error) {
	list, err := s.repo.Conversations(ctx)
	if err != nil {
		s.metrics.ObserveChatPoll("inbox", "error")
		return nil, upstreamError(err, "failed to load conversations")
	}
	s.metrics.ObserveChatPoll("inbox", "ok")
	return &Inbox{
		Conversations: chat.FilterConversations(list, query),
		Query:         query,
		Unread:        chat.UnreadTotal(list),
	}, nil
}

// Room loads a conversation and marks it read. A failed read acknowledgment is logged only.
func (s *ChatService) Room(ctx context.Context, chatID int64) ([]models.ChatMessage, error) {
	msgs, err := s.repo.Messages(ctx, chatID)
	if err != nil {
		return nil, upstreamError(err, "conversation not found")
	}
	if err := s.repo.MarkRead(ctx, chatID); err != nil {
		s.logger.Warn("mark chat read failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	return msgs, nil
}

// MessagesAfter returns the messages newer than after for browser polling.
func (s *ChatService) MessagesAfter(ctx context.Context, chatID, after int64) (*MessageBatch, error) {
	msgs, err := s.repo.Messages(ctx, chatID)
	if err != nil {
		s.metrics.ObserveChatPoll("conversation", "error")
		return nil, upstreamError(err, "failed to load messages")
	}
	s.metrics.ObserveChatPoll("conversation", "ok")
	fresh, last := chat.After(msgs, after)
	return &MessageBatch{Messages: fresh, LastID: last}, nil
}

// Send posts a message. A backend result with success=false is returned without
// error so the caller can keep the optimistic entry and mark it failed.
func (s *ChatService) Send(ctx context.Context, req models.SendMessageRequest) (*models.SendMessageResult, error) {
	if err := validate(s.validator, req, "chat and content are required"); err != nil {
		return nil, err
	}
	result, err := s.repo.Send(ctx, req.ChatID, req.Content)
	if err != nil {
		return nil, upstreamError(err, "failed to send message")
	}
	if !result.Success {
		s.logger.Warn("message rejected", zap.Int64("chat_id", req.ChatID), zap.String("reason", result.Error))
	}
	return result, nil
}

// Start opens a conversation with another user.
func (s *ChatService) Start(ctx context.Context, req models.StartChatRequest) (*models.StartChatResult, error) {
	if err := validate(s.validator, req, "user is required"); err != nil {
		return nil, err
	}
	result, err := s.repo.Start(ctx, req.UserID)
	if err != nil {
		return nil, upstreamError(err, "failed to start conversation")
	}
	return result, nil
}
