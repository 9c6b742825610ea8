package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asknote/asknote-be/store"
	"github.com/asknote/asknote-be/types"
	"github.com/asknote/asknote-be/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileService runs the upload path: validate, extract, persist the blob,
// and bind the resulting document to a session. A failure anywhere rolls
// back whatever was created earlier in the same upload, so a failed upload
// never leaves an orphaned document behind.
type FileService struct {
	uploadDir string
	registry  *store.SessionRegistry
	pdf       *PDFService
	logger    *zap.SugaredLogger
}

func NewFileService(
	uploadDir string,
	registry *store.SessionRegistry,
	pdf *PDFService,
	logger *zap.SugaredLogger,
) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileService{
		uploadDir: uploadDir,
		registry:  registry,
		pdf:       pdf,
		logger:    logger,
	}, nil
}

// UploadDocument processes one uploaded file. When sessionID is empty a new
// session is created and named after the file; otherwise the document is
// attached to the given session, replacing any previous one.
func (s *FileService) UploadDocument(ctx context.Context, fileName string, src io.Reader, sessionID string) (*types.ChatSession, *types.DocumentRecord, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != ".pdf" {
		return nil, nil, &types.ValidationError{Message: fmt.Sprintf("unsupported file type: %s, please upload a PDF", ext)}
	}

	data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, &types.ValidationError{Message: "the selected file is empty"}
	}
	if len(data) > MaxFileSize {
		return nil, nil, &types.ValidationError{Message: "file size too large, please upload a PDF smaller than 50MB"}
	}

	// Extract before touching any state so most failures need no rollback.
	extraction, err := s.pdf.Extract(ctx, data)
	if err != nil {
		return nil, nil, err
	}

	createdSession := false
	if sessionID == "" {
		sess, err := s.registry.Create(utils.FileNameWithoutExt(fileName))
		if err != nil {
			return nil, nil, err
		}
		sessionID = sess.ID
		createdSession = true
	} else if _, ok := s.registry.Get(sessionID); !ok {
		return nil, nil, &types.NotFoundError{Resource: "session", ID: sessionID}
	}

	blobPath, err := utils.SaveFileWithTimestamp(data, fileName, s.uploadDir)
	if err != nil {
		s.rollback(sessionID, createdSession, "")
		return nil, nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}

	doc := &types.DocumentRecord{
		ID:        uuid.NewString(),
		Name:      fileName,
		RawText:   extraction.FullText,
		Pages:     extraction.Pages,
		BlobPath:  blobPath,
		CreatedAt: time.Now(),
	}
	if err := s.registry.AttachDocument(sessionID, doc); err != nil {
		s.rollback(sessionID, createdSession, blobPath)
		return nil, nil, err
	}

	sess, _ := s.registry.Get(sessionID)
	s.logger.Infow("document uploaded", "session", sessionID, "document", doc.ID, "pages", len(doc.Pages))
	return sess, doc, nil
}

func (s *FileService) rollback(sessionID string, createdSession bool, blobPath string) {
	if blobPath != "" {
		if err := os.Remove(blobPath); err != nil {
			s.logger.Warnw("failed to remove blob during rollback", "path", blobPath, "error", err)
		}
	}
	if createdSession {
		s.registry.Delete(sessionID)
	}
}
