package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/asknote/asknote-be/store"
	"github.com/asknote/asknote-be/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBusy rejects a question submitted while a previous one is still being
// answered. Submissions are blocked, not queued.
var ErrBusy = errors.New("another question is still being processed")

// ChatService runs one chat turn: append the user's question, select
// context from the session's document, produce the reply, and append it.
// Every accepted turn adds exactly one assistant message to the transcript.
type ChatService struct {
	registry *store.SessionRegistry
	docs     *store.DocumentStore
	answers  *AnswerService
	busy     atomic.Bool
	logger   *zap.SugaredLogger
}

func NewChatService(
	registry *store.SessionRegistry,
	docs *store.DocumentStore,
	answers *AnswerService,
	logger *zap.SugaredLogger,
) *ChatService {
	return &ChatService{
		registry: registry,
		docs:     docs,
		answers:  answers,
		logger:   logger,
	}
}

// Ask answers one question within a session.
func (s *ChatService) Ask(ctx context.Context, sessionID, question string) (*types.ChatMessage, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &types.ValidationError{Message: "question must not be empty"}
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	sess, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, &types.NotFoundError{Resource: "session", ID: sessionID}
	}

	s.registry.AppendMessage(sessionID, types.ChatMessage{
		ID:     uuid.NewString(),
		Text:   question,
		Sender: types.SenderUser,
		SentAt: time.Now(),
	})

	var rawText string
	var pages []types.PageContent
	if sess.DocumentID != "" {
		if doc, ok := s.docs.Get(sess.DocumentID); ok {
			rawText = doc.RawText
			pages = doc.Pages
		}
	}

	selection := SelectContext(rawText, pages, question)
	answer := s.answers.Answer(ctx, selection.Context, selection.Pages, question)

	reply := types.ChatMessage{
		ID:     uuid.NewString(),
		Text:   answer,
		Sender: types.SenderAssistant,
		SentAt: time.Now(),
	}
	s.registry.AppendMessage(sessionID, reply)
	return &reply, nil
}
