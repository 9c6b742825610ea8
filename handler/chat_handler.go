package handler

import (
	"net/http"

	"github.com/asknote/asknote-be/service"
	"github.com/asknote/asknote-be/types"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func (h *ChatHandler) HandleAsk(c *gin.Context) {
	sessionID := c.Param("id")

	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.chatService.Ask(c.Request.Context(), sessionID, req.Question)
	if err != nil {
		respondError(c, err)
		return
	}

	sendSuccess(c, types.AskResponse{
		SessionID: sessionID,
		Message:   msg,
	})
}
