package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/planify-web/internal/models"
)

// ChatRepository talks to the chat endpoints.
type ChatRepository struct {
	client backendClient
}

// NewChatRepository constructs the repository.
func NewChatRepository(client backendClient) *ChatRepository {
	return &ChatRepository{client: client}
}

// Conversations lists the viewer's inbox.
func (r *ChatRepository) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var list []models.Conversation
	if err := r.client.Get(ctx, "/api/chat/conversations", nil, &list); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return list, nil
}

// Messages returns every message of a conversation, oldest first.
func (r *ChatRepository) Messages(ctx context.Context, chatID int64) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	if err := r.client.Get(ctx, fmt.Sprintf("/api/chat/%d/messages", chatID), nil, &msgs); err != nil {
		return nil, fmt.Errorf("list messages of chat %d: %w", chatID, err)
	}
	return msgs, nil
}

// Send posts a message. A response with success=false is returned as-is, not as an error.
func (r *ChatRepository) Send(ctx context.Context, chatID int64, content string) (*models.SendMessageResult, error) {
	var result models.SendMessageResult
	body := models.SendMessageRequest{ChatID: chatID, Content: content}
	if err := r.client.Post(ctx, "/api/chat/send", body, &result); err != nil {
		return nil, fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return &result, nil
}

// Start opens (or reuses) a conversation with another user.
func (r *ChatRepository) Start(ctx context.Context, userID int64) (*models.StartChatResult, error) {
	var result models.StartChatResult
	if err := r.client.Post(ctx, "/api/chat/start", models.StartChatRequest{UserID: userID}, &result); err != nil {
		return nil, fmt.Errorf("start chat with user %d: %w", userID, err)
	}
	return &result, nil
}

// MarkRead acknowledges every message of a conversation.
func (r *ChatRepository) MarkRead(ctx context.Context, chatID int64) error {
	if err := r.client.Post(ctx, fmt.Sprintf("/api/chat/%d/read", chatID), nil, nil); err != nil {
		return fmt.Errorf("mark chat %d read: %w", chatID, err)
	}
	return nil
}
