package types

import "time"

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SessionSummary is the list-view projection of a session.
type SessionSummary struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	DocumentName string    `json:"document_name,omitempty"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	Active       bool      `json:"active"`
}

type AskResponse struct {
	SessionID string       `json:"session_id"`
	Message   *ChatMessage `json:"message"`
}

type UploadResponse struct {
	SessionID    string `json:"session_id"`
	DocumentID   string `json:"document_id"`
	OriginalName string `json:"original_name,omitempty"`
	TotalPages   int    `json:"total_pages"`
}
