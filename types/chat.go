package types

import (
	"time"
)

const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// DefaultSessionName marks a session whose name has not been set explicitly.
// Display names fall back to derived values for sessions carrying it.
const DefaultSessionName = "New Chat"

// ChatMessage is a single entry in a session transcript.
type ChatMessage struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Sender string    `json:"sender"`
	SentAt time.Time `json:"sent_at"`
}

// ChatSession is one conversation thread, optionally bound to one document.
type ChatSession struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Messages     []ChatMessage `json:"messages"`
	DocumentID   string        `json:"document_id,omitempty"`
	DocumentName string        `json:"document_name,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// DisplayName derives the name shown for a session. It is never stored:
// an explicit non-default name wins, then the first user message truncated
// to 20 characters, then the attached document's name, then a dated placeholder.
func (s *ChatSession) DisplayName() string {
	if s.Name != "" && s.Name != DefaultSessionName {
		return s.Name
	}
	for _, msg := range s.Messages {
		if msg.Sender != SenderUser {
			continue
		}
		runes := []rune(msg.Text)
		if len(runes) > 20 {
			return string(runes[:20]) + "..."
		}
		return msg.Text
	}
	if s.DocumentName != "" {
		return s.DocumentName
	}
	return "Chat " + s.CreatedAt.Format("Jan 2")
}
