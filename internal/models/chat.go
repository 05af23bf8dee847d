package models

// ChatMessage is one message of a conversation as returned by the backend.
type ChatMessage struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	SenderID  int64  `json:"sender_id,omitempty"`
	IsMe      bool   `json:"is_me"`
	CreatedAt string `json:"created_at"`
	Date      string `json:"date,omitempty"`
}

// Conversation is an inbox row.
type Conversation struct {
	ChatID      int64  `json:"chat_id"`
	Name        string `json:"name"`
	Preview     string `json:"preview"`
	UnreadCount int    `json:"unread_count"`
}

// SendMessageResult mirrors the backend acknowledgment of POST /api/chat/send.
type SendMessageResult struct {
	Success bool         `json:"success"`
	Message *ChatMessage `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// StartChatResult mirrors POST /api/chat/start.
type StartChatResult struct {
	ChatID int64 `json:"chat_id"`
}

// SendMessageRequest is the body of POST /api/chat/send.
type SendMessageRequest struct {
	ChatID  int64  `json:"chat_id" form:"chat_id" validate:"required"`
	Content string `json:"content" form:"content" validate:"required"`
}

// StartChatRequest is the body of POST /api/chat/start.
type StartChatRequest struct {
	UserID int64 `json:"user_id" form:"user_id" validate:"required"`
}
