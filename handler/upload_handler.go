package handler

import (
	"net/http"

	"github.com/asknote/asknote-be/service"
	"github.com/asknote/asknote-be/types"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	fileService *service.FileService
}

func NewUploadHandler(fileService *service.FileService) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
	}
}

func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		sendError(c, http.StatusBadRequest, "invalid file")
		return
	}
	defer file.Close()

	sessionID := c.Request.FormValue("session_id")

	sess, doc, err := h.fileService.UploadDocument(c.Request.Context(), header.Filename, file, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	sendSuccess(c, types.UploadResponse{
		SessionID:    sess.ID,
		DocumentID:   doc.ID,
		OriginalName: doc.Name,
		TotalPages:   len(doc.Pages),
	})
}
