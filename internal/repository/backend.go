package repository

import (
	"context"
	"errors"
	"net/url"

	"github.com/noah-isme/planify-web/internal/models"
)

// backendClient is the subset of backend.Client the repositories call.
type backendClient interface {
	Get(ctx context.Context, path string, query url.Values, dest interface{}) error
	Post(ctx context.Context, path string, body, dest interface{}) error
	Put(ctx context.Context, path string, body, dest interface{}) error
	Delete(ctx context.Context, path string, dest interface{}) error
}

// ErrRejected is returned when the backend answers 2xx with success=false.
var ErrRejected = errors.New("backend rejected the request")

// RejectedError carries the backend's reason for a rejected write.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return ErrRejected.Error()
	}
	return ErrRejected.Error() + ": " + e.Reason
}

// Unwrap lets errors.Is match ErrRejected.
func (e *RejectedError) Unwrap() error { return ErrRejected }

// ackResponse decodes a write acknowledgment. Success is a pointer so an empty
// body, which some endpoints send, counts as success.
type ackResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	EventID int64  `json:"event_id"`
}

func (r ackResponse) result() (models.Ack, error) {
	ack := models.Ack{Success: r.Success == nil || *r.Success, Message: r.Message, Error: r.Error, EventID: r.EventID}
	if !ack.Success {
		return ack, &RejectedError{Reason: ack.Failure()}
	}
	return ack, nil
}
