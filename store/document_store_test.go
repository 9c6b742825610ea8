package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asknote/asknote-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStorePutGet(t *testing.T) {
	docs := NewDocumentStore()

	require.NoError(t, docs.Put(&types.DocumentRecord{ID: "doc-1", RawText: "content"}))

	got, ok := docs.Get("doc-1")
	require.True(t, ok)
	assert.Equal(t, "content", got.RawText)
	assert.Equal(t, 1, docs.Len())
}

func TestDocumentStoreRejectsEmptyText(t *testing.T) {
	docs := NewDocumentStore()

	err := docs.Put(&types.DocumentRecord{ID: "doc-1"})
	var validationErr *types.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, docs.Len())
}

func TestDocumentStoreRemoveDeletesBlob(t *testing.T) {
	docs := NewDocumentStore()
	blob := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(blob, []byte("%PDF-"), 0644))

	require.NoError(t, docs.Put(&types.DocumentRecord{ID: "doc-1", RawText: "content", BlobPath: blob}))
	docs.Remove("doc-1")

	_, ok := docs.Get("doc-1")
	assert.False(t, ok)
	_, err := os.Stat(blob)
	assert.True(t, os.IsNotExist(err))
}

func TestDocumentStoreRemoveAbsentIsNoop(t *testing.T) {
	docs := NewDocumentStore()

	docs.Remove("ghost")

	assert.Zero(t, docs.Len())
}
