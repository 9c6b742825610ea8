package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/asknote/asknote-be/store"
	"github.com/asknote/asknote-be/types"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// MaxFileSize is the upload ceiling for a single document.
const MaxFileSize = 50 << 20

// extractionCacheTTL is how long an extraction result stays valid for a
// given content hash.
const extractionCacheTTL = time.Hour

var pdfMagic = []byte("%PDF-")

// PDFService extracts text from PDF payloads, page by page. Results are
// cached by content hash so re-uploads of the same file skip the parse.
type PDFService struct {
	cache  store.Cache
	logger *zap.SugaredLogger
}

func NewPDFService(cache store.Cache, logger *zap.SugaredLogger) *PDFService {
	return &PDFService{
		cache:  cache,
		logger: logger,
	}
}

// Extract parses data and returns the full text plus per-page contents.
// Pages without extractable text are skipped; the document as a whole
// failing to yield text is an error.
func (s *PDFService) Extract(ctx context.Context, data []byte) (*types.ExtractionResult, error) {
	if len(data) == 0 {
		return nil, &types.ExtractionError{Kind: types.ExtractEmptyFile}
	}
	if len(data) > MaxFileSize {
		return nil, &types.ExtractionError{Kind: types.ExtractTooLarge}
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return nil, &types.ExtractionError{Kind: types.ExtractInvalidType}
	}

	key := hashContent(data)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warnw("extraction cache read failed", "error", err)
	} else if ok {
		var result types.ExtractionResult
		if err := json.Unmarshal(cached, &result); err == nil {
			return &result, nil
		}
		s.logger.Warnw("discarding undecodable cache entry", "key", key)
	}

	result, err := s.parse(data)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(result)
	if err == nil {
		if err := s.cache.Put(ctx, key, encoded, time.Now().Add(extractionCacheTTL)); err != nil {
			s.logger.Warnw("extraction cache write failed", "error", err)
		}
	}
	return result, nil
}

func (s *PDFService) parse(data []byte) (result *types.ExtractionResult, err error) {
	// The parser panics on some malformed files; treat those as corrupt input.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &types.ExtractionError{Kind: types.ExtractCorrupted, Err: fmt.Errorf("parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if isPasswordError(err) {
			return nil, &types.ExtractionError{Kind: types.ExtractPasswordProtected, Err: err}
		}
		return nil, &types.ExtractionError{Kind: types.ExtractCorrupted, Err: err}
	}

	totalPages := reader.NumPage()
	pages := make([]types.PageContent, 0, totalPages)
	texts := make([]string, 0, totalPages)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			s.logger.Warnw("failed to extract text from page", "page", pageNum, "error", err)
			continue // Skip failed pages instead of returning error
		}
		text = cleanText(text)
		if text == "" {
			continue
		}
		pages = append(pages, types.PageContent{PageNum: pageNum, Text: text})
		texts = append(texts, text)
	}

	fullText := strings.TrimSpace(strings.Join(texts, "\n\n"))
	if fullText == "" {
		return nil, &types.ExtractionError{Kind: types.ExtractNoText}
	}

	return &types.ExtractionResult{
		FullText: fullText,
		Pages:    pages,
	}, nil
}

func hashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func isPasswordError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "encrypt") || strings.Contains(msg, "password")
}

func cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // Null character
		"\ufffd": "",   // Unicode replacement character
		"\u001b": "",   // Escape character
		"\r":     "",   // Carriage return
		"\f":     "\n", // Form feed to newline
		"  ":     " ",  // Multiple spaces to single space
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return strings.TrimSpace(cleaned)
}
