package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/asknote/asknote-be/store"
	"github.com/asknote/asknote-be/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPDFService() (*PDFService, *store.MemoryCache) {
	cache := store.NewMemoryCache()
	return NewPDFService(cache, zap.NewNop().Sugar()), cache
}

func extractionKind(t *testing.T, err error) types.ExtractKind {
	t.Helper()
	var extractionErr *types.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	return extractionErr.Kind
}

func TestExtractEmptyPayload(t *testing.T) {
	svc, _ := newTestPDFService()

	_, err := svc.Extract(context.Background(), nil)
	assert.Equal(t, types.ExtractEmptyFile, extractionKind(t, err))
}

func TestExtractOversizedPayload(t *testing.T) {
	svc, _ := newTestPDFService()

	_, err := svc.Extract(context.Background(), make([]byte, MaxFileSize+1))
	assert.Equal(t, types.ExtractTooLarge, extractionKind(t, err))
}

func TestExtractNonPDFPayload(t *testing.T) {
	svc, _ := newTestPDFService()

	_, err := svc.Extract(context.Background(), []byte("plain text, not a pdf"))
	assert.Equal(t, types.ExtractInvalidType, extractionKind(t, err))
}

func TestExtractCorruptPDF(t *testing.T) {
	svc, _ := newTestPDFService()

	_, err := svc.Extract(context.Background(), []byte("%PDF-1.4 but the rest is garbage"))
	assert.Equal(t, types.ExtractCorrupted, extractionKind(t, err))
}

func TestExtractServesCachedResult(t *testing.T) {
	svc, cache := newTestPDFService()

	data := []byte("%PDF-1.4 pretend document body")
	cached := types.ExtractionResult{
		FullText: "cached text",
		Pages:    []types.PageContent{{PageNum: 1, Text: "cached text"}},
	}
	encoded, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, cache.Put(context.Background(), hashContent(data), encoded, time.Now().Add(time.Minute)))

	// The payload is unparseable, so a result proves the cache was hit.
	result, err := svc.Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "cached text", result.FullText)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, 1, result.Pages[0].PageNum)
}
