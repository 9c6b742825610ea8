package store

import (
	"sort"
	"sync"
	"time"

	"github.com/asknote/asknote-be/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxSessions bounds how many chat sessions may exist at once. Creating a
// session past the limit is rejected, never silently truncated.
const MaxSessions = 20

const welcomeText = "👋 Hello! I am AskNoteBot. I can help you understand your document better. What would you like to know?"

// SessionRegistry tracks chat sessions, their document associations, and the
// active session pointer. Every mutation is followed by a snapshot write; a
// failed write is logged and dropped, losing at most that batch.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*types.ChatSession
	activeID string

	docs   *DocumentStore
	snap   SnapshotStore
	logger *zap.SugaredLogger
}

func NewSessionRegistry(docs *DocumentStore, snap SnapshotStore, logger *zap.SugaredLogger) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*types.ChatSession),
		docs:     docs,
		snap:     snap,
		logger:   logger,
	}
}

// Load rehydrates the registry from the last snapshot. A missing snapshot
// starts the registry empty; a corrupt one is logged and treated the same.
func (r *SessionRegistry) Load() {
	snap, err := r.snap.Load()
	if err != nil {
		r.logger.Warnw("could not load snapshot, starting empty", "error", err)
		return
	}
	if snap == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = make(map[string]*types.ChatSession, len(snap.Sessions))
	for i := range snap.Sessions {
		sess := snap.Sessions[i]
		r.sessions[sess.ID] = &sess
	}
	r.docs.restore(snap.Documents)

	if _, ok := r.sessions[snap.ActiveSessionID]; ok {
		r.activeID = snap.ActiveSessionID
	} else {
		r.activeID = r.latestSessionIDLocked()
	}
	r.logger.Infow("restored sessions from snapshot", "sessions", len(r.sessions), "documents", r.docs.Len())
}

// Create inserts a new session seeded with the greeting message and makes it
// active. It fails with a CapacityError once MaxSessions exist, without
// mutating the registry.
func (r *SessionRegistry) Create(name string) (*types.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= MaxSessions {
		return nil, &types.CapacityError{Resource: "session", Limit: MaxSessions}
	}

	if name == "" {
		name = types.DefaultSessionName
	}
	now := time.Now()
	sess := &types.ChatSession{
		ID:   uuid.NewString(),
		Name: name,
		Messages: []types.ChatMessage{{
			ID:     uuid.NewString(),
			Text:   welcomeText,
			Sender: types.SenderAssistant,
			SentAt: now,
		}},
		CreatedAt: now,
	}
	r.sessions[sess.ID] = sess
	r.activeID = sess.ID
	r.persistLocked()
	return cloneSession(sess), nil
}

// Get returns a copy of the session, if present.
func (r *SessionRegistry) Get(id string) (*types.ChatSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return cloneSession(sess), true
}

// List returns session summaries, most recent first.
func (r *SessionRegistry) List() []types.SessionSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.SessionSummary, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, types.SessionSummary{
			ID:           sess.ID,
			DisplayName:  sess.DisplayName(),
			DocumentName: sess.DocumentName,
			MessageCount: len(sess.Messages),
			CreatedAt:    sess.CreatedAt,
			Active:       sess.ID == r.activeID,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Count reports the number of sessions.
func (r *SessionRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// ActiveID returns the active session id, or empty when none is active.
func (r *SessionRegistry) ActiveID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeID
}

// SetActive selects an existing session as active.
func (r *SessionRegistry) SetActive(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return &types.NotFoundError{Resource: "session", ID: id}
	}
	r.activeID = id
	r.persistLocked()
	return nil
}

// AttachDocument stores doc and binds it to the session, replacing and
// cascading away any previously attached document. The session name is
// updated from the document when still at its default.
func (r *SessionRegistry) AttachDocument(sessionID string, doc *types.DocumentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return &types.NotFoundError{Resource: "session", ID: sessionID}
	}
	if err := r.docs.Put(doc); err != nil {
		return err
	}
	if sess.DocumentID != "" && sess.DocumentID != doc.ID {
		r.docs.Remove(sess.DocumentID)
	}
	sess.DocumentID = doc.ID
	sess.DocumentName = doc.Name
	if sess.Name == types.DefaultSessionName {
		sess.Name = trimExtension(doc.Name)
	}
	r.persistLocked()
	return nil
}

// DetachDocument removes the session's document binding and the record
// behind it. Used to roll back a failed upload.
func (r *SessionRegistry) DetachDocument(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	if sess.DocumentID != "" {
		r.docs.Remove(sess.DocumentID)
	}
	sess.DocumentID = ""
	sess.DocumentName = ""
	r.persistLocked()
}

// AppendMessage appends to the session transcript. Appending to an unknown
// session is a no-op.
func (r *SessionRegistry) AppendMessage(sessionID string, msg types.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	sess.Messages = append(sess.Messages, msg)
	r.persistLocked()
}

// Delete removes a session and cascades removal of its document record and
// file blob. When the active session is deleted, the remaining session with
// the latest creation time becomes active. Deleting an unknown id is a no-op.
func (r *SessionRegistry) Delete(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return
	}
	if sess.DocumentID != "" {
		r.docs.Remove(sess.DocumentID)
	}
	delete(r.sessions, sessionID)

	if r.activeID == sessionID {
		r.activeID = r.latestSessionIDLocked()
	}
	r.persistLocked()
}

// DeleteAll clears sessions, documents, and the active pointer.
func (r *SessionRegistry) DeleteAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = make(map[string]*types.ChatSession)
	r.activeID = ""
	r.docs.clear()
	if err := r.snap.Clear(); err != nil {
		r.logger.Warnw("failed to clear snapshot", "error", err)
	}
}

func (r *SessionRegistry) latestSessionIDLocked() string {
	var latest *types.ChatSession
	for _, sess := range r.sessions {
		if latest == nil || sess.CreatedAt.After(latest.CreatedAt) {
			latest = sess
		}
	}
	if latest == nil {
		return ""
	}
	return latest.ID
}

func (r *SessionRegistry) persistLocked() {
	snap := &Snapshot{
		Sessions:        make([]types.ChatSession, 0, len(r.sessions)),
		Documents:       r.docs.snapshot(),
		ActiveSessionID: r.activeID,
	}
	for _, sess := range r.sessions {
		snap.Sessions = append(snap.Sessions, *cloneSession(sess))
	}
	if err := r.snap.Save(snap); err != nil {
		r.logger.Warnw("failed to persist snapshot", "error", err)
	}
}

func cloneSession(sess *types.ChatSession) *types.ChatSession {
	out := *sess
	out.Messages = make([]types.ChatMessage, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	return &out
}

func trimExtension(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}
