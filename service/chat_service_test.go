package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/asknote/asknote-be/store"
	"github.com/asknote/asknote-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestChatService(t *testing.T, ai AIService) (*ChatService, *store.SessionRegistry, *store.DocumentStore) {
	t.Helper()
	logger := zap.NewNop().Sugar()
	docs := store.NewDocumentStore()
	snap := store.NewFileSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"), logger)
	registry := store.NewSessionRegistry(docs, snap, logger)
	answers := NewAnswerService(ai, 5*time.Second, logger)
	return NewChatService(registry, docs, answers, logger), registry, docs
}

func attachTestDocument(t *testing.T, registry *store.SessionRegistry, sessionID, text string) {
	t.Helper()
	err := registry.AttachDocument(sessionID, &types.DocumentRecord{
		ID:      "doc-1",
		Name:    "notes.pdf",
		RawText: text,
		Pages:   []types.PageContent{{PageNum: 1, Text: text}},
	})
	require.NoError(t, err)
}

func TestAskAppendsUserAndAssistantMessages(t *testing.T) {
	ai := &stubAI{responses: []stubResponse{
		{text: "topic"},
		{text: "The capital is Paris."},
	}}
	svc, registry, _ := newTestChatService(t, ai)

	sess, err := registry.Create("")
	require.NoError(t, err)
	attachTestDocument(t, registry, sess.ID, "Paris is the capital of France.")

	reply, err := svc.Ask(context.Background(), sess.ID, "the capital")
	require.NoError(t, err)
	assert.Equal(t, types.SenderAssistant, reply.Sender)
	assert.Contains(t, reply.Text, "The capital is Paris.")

	after, ok := registry.Get(sess.ID)
	require.True(t, ok)
	// welcome + user question + assistant reply
	require.Len(t, after.Messages, 3)
	assert.Equal(t, types.SenderUser, after.Messages[1].Sender)
	assert.Equal(t, "the capital", after.Messages[1].Text)
	assert.Equal(t, types.SenderAssistant, after.Messages[2].Sender)
}

func TestAskGenerationFailureStillAppendsOneReply(t *testing.T) {
	ai := &stubAI{responses: []stubResponse{
		{text: "topic"},
		{err: assert.AnError},
	}}
	svc, registry, _ := newTestChatService(t, ai)

	sess, err := registry.Create("")
	require.NoError(t, err)
	attachTestDocument(t, registry, sess.ID, "Some document content here.")

	reply, err := svc.Ask(context.Background(), sess.ID, "question")
	require.NoError(t, err, "external failures must not surface as errors")
	assert.Equal(t, apologyReply, reply.Text)

	after, _ := registry.Get(sess.ID)
	require.Len(t, after.Messages, 3)
	assert.Equal(t, apologyReply, after.Messages[2].Text)
}

func TestAskWithoutDocument(t *testing.T) {
	ai := &stubAI{}
	svc, registry, _ := newTestChatService(t, ai)

	sess, err := registry.Create("")
	require.NoError(t, err)

	reply, err := svc.Ask(context.Background(), sess.ID, "anything")
	require.NoError(t, err)
	assert.Equal(t, noContextReply, reply.Text)
	assert.Empty(t, ai.prompts)
}

func TestAskEmptyQuestion(t *testing.T) {
	svc, registry, _ := newTestChatService(t, &stubAI{})

	sess, err := registry.Create("")
	require.NoError(t, err)

	_, err = svc.Ask(context.Background(), sess.ID, "   ")
	var validationErr *types.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAskUnknownSession(t *testing.T) {
	svc, _, _ := newTestChatService(t, &stubAI{})

	_, err := svc.Ask(context.Background(), "no-such-session", "question")
	var notFoundErr *types.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

// blockingAI parks the first call until released so a second submission can
// be attempted while one is outstanding.
type blockingAI struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingAI) Complete(ctx context.Context, prompt string) (string, error) {
	close(b.started)
	<-b.release
	return "greeting", nil
}

func TestAskRejectsConcurrentSubmission(t *testing.T) {
	ai := &blockingAI{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, registry, _ := newTestChatService(t, ai)

	sess, err := registry.Create("")
	require.NoError(t, err)
	attachTestDocument(t, registry, sess.ID, "Document text.")

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Ask(context.Background(), sess.ID, "first question")
	}()

	<-ai.started
	_, err = svc.Ask(context.Background(), sess.ID, "second question")
	assert.ErrorIs(t, err, ErrBusy)

	close(ai.release)
	<-done
}
