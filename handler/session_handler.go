package handler

import (
	"net/http"

	"github.com/asknote/asknote-be/store"
	"github.com/asknote/asknote-be/types"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	registry *store.SessionRegistry
}

func NewSessionHandler(registry *store.SessionRegistry) *SessionHandler {
	return &SessionHandler{
		registry: registry,
	}
}

func (h *SessionHandler) HandleCreate(c *gin.Context) {
	var req types.CreateSessionRequest
	// Body is optional; an empty body creates an unnamed session.
	c.ShouldBindJSON(&req)

	sess, err := h.registry.Create(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	sendSuccess(c, sess)
}

func (h *SessionHandler) HandleList(c *gin.Context) {
	sendSuccess(c, h.registry.List())
}

func (h *SessionHandler) HandleGet(c *gin.Context) {
	sess, ok := h.registry.Get(c.Param("id"))
	if !ok {
		sendError(c, http.StatusNotFound, "session not found")
		return
	}
	sendSuccess(c, sess)
}

func (h *SessionHandler) HandleSelect(c *gin.Context) {
	if err := h.registry.SetActive(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	sendSuccess(c, gin.H{"active_session_id": c.Param("id")})
}

func (h *SessionHandler) HandleDelete(c *gin.Context) {
	h.registry.Delete(c.Param("id"))
	sendSuccess(c, gin.H{"active_session_id": h.registry.ActiveID()})
}

func (h *SessionHandler) HandleDeleteAll(c *gin.Context) {
	h.registry.DeleteAll()
	sendSuccess(c, nil)
}
