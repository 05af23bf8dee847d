package models

// Ack is the acknowledgment body the backend returns for writes.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	EventID int64  `json:"event_id,omitempty"`
}

// Failure returns the backend's explanation for an unsuccessful write.
func (a Ack) Failure() string {
	if a.Error != "" {
		return a.Error
	}
	return a.Message
}
