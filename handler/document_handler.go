package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// DocumentHandler serves stored PDF blobs back to the client, matching the
// timestamp-suffixed names the upload path writes.
type DocumentHandler struct {
	uploadDir string
}

func NewDocumentHandler(uploadDir string) *DocumentHandler {
	return &DocumentHandler{
		uploadDir: uploadDir,
	}
}

func (h *DocumentHandler) ServeDocument(c *gin.Context) {
	requestedName := c.Query("file")
	if requestedName == "" {
		sendError(c, http.StatusBadRequest, "file parameter is required")
		return
	}
	if filepath.Ext(requestedName) != ".pdf" {
		sendError(c, http.StatusBadRequest, "only PDF files are allowed")
		return
	}

	actualFile, err := h.findFileWithTimestamp(requestedName)
	if err != nil {
		sendError(c, http.StatusNotFound, "file not found")
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", requestedName))
	c.File(filepath.Join(h.uploadDir, actualFile))
}

func (h *DocumentHandler) findFileWithTimestamp(requestedName string) (string, error) {
	files, err := os.ReadDir(h.uploadDir)
	if err != nil {
		return "", err
	}

	baseName := strings.TrimSuffix(requestedName, ".pdf")
	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, ".pdf") {
			continue
		}

		nameWithoutExt := strings.TrimSuffix(name, ".pdf")
		if nameWithoutExt == baseName {
			return name, nil
		}
		lastUnderscoreIdx := strings.LastIndex(nameWithoutExt, "_")
		if lastUnderscoreIdx == -1 {
			continue
		}

		timestampPart := nameWithoutExt[lastUnderscoreIdx+1:]
		fileBaseName := nameWithoutExt[:lastUnderscoreIdx]

		// Unix timestamps are 10 digits, millisecond ones 13
		if len(timestampPart) == 10 || len(timestampPart) == 13 {
			if _, err := strconv.ParseInt(timestampPart, 10, 64); err == nil {
				if fileBaseName == baseName {
					return name, nil
				}
			}
		}
	}

	return "", fmt.Errorf("file not found: %s", requestedName)
}
