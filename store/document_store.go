package store

import (
	"os"
	"sync"

	"github.com/asknote/asknote-be/types"
)

// DocumentStore holds extracted document content keyed by document id.
// Records are replaced wholesale on re-upload and removed when their
// owning session is deleted.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*types.DocumentRecord
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]*types.DocumentRecord),
	}
}

// Put stores a record, replacing any prior record with the same id.
// Empty raw text is rejected; detecting it is the caller's responsibility
// before a record reaches the store.
func (s *DocumentStore) Put(doc *types.DocumentRecord) error {
	if doc.RawText == "" {
		return &types.ValidationError{Message: "document has no extractable text"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

// Get returns the record for id. Missing keys are not an error.
func (s *DocumentStore) Get(id string) (*types.DocumentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// Remove deletes the record for id along with its persisted file blob.
// Removing an absent key is a no-op.
func (s *DocumentStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return
	}
	if doc.BlobPath != "" {
		os.Remove(doc.BlobPath)
	}
	delete(s.docs, id)
}

// Len reports the number of stored records.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *DocumentStore) snapshot() map[string]types.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]types.DocumentRecord, len(s.docs))
	for id, doc := range s.docs {
		out[id] = *doc
	}
	return out
}

func (s *DocumentStore) restore(docs map[string]types.DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]*types.DocumentRecord, len(docs))
	for id, doc := range docs {
		d := doc
		s.docs[id] = &d
	}
}

func (s *DocumentStore) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.docs {
		if doc.BlobPath != "" {
			os.Remove(doc.BlobPath)
		}
	}
	s.docs = make(map[string]*types.DocumentRecord)
}
