package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/asknote/asknote-be/types"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocketService serves the chat over a websocket connection.
type WebSocketService struct {
	chat     *ChatService
	upgrader websocket.Upgrader
	logger   *zap.SugaredLogger
}

func NewWebSocketService(chat *ChatService, logger *zap.SugaredLogger) *WebSocketService {
	return &WebSocketService{
		chat:   chat,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warnw("websocket read error", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			s.writeError(conn, "invalid message")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			conn.WriteJSON(types.WebSocketResponse{
				Type: types.TypeWebsocketPong,
			})
		case types.TypeWebsocketChat:
			s.handleChatFrame(conn, r, req)
		default:
			s.writeError(conn, "invalid message type")
		}
	}
}

func (s *WebSocketService) handleChatFrame(conn *websocket.Conn, r *http.Request, req types.WebsocketRequest) {
	payloadBytes, err := json.Marshal(req.Payload)
	if err != nil {
		s.writeError(conn, "invalid payload")
		return
	}
	var payload types.WebSocketChatPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		s.writeError(conn, "invalid payload")
		return
	}

	conn.WriteJSON(types.WebSocketResponse{
		Type:    types.TypeWebsocketProcessing,
		Payload: types.WebSocketProcessingResponse{Message: "Processing your question"},
	})

	msg, err := s.chat.Ask(r.Context(), payload.SessionID, payload.Question)
	if err != nil {
		if errors.Is(err, ErrBusy) {
			s.writeError(conn, "a question is already being processed")
			return
		}
		s.writeError(conn, err.Error())
		return
	}

	if err := conn.WriteJSON(types.WebSocketResponse{
		Type: types.TypeWebsocketChat,
		Payload: types.WebSocketChatResponse{
			SessionID: payload.SessionID,
			Message:   msg,
		},
	}); err != nil {
		s.logger.Warnw("websocket write error", "error", err)
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	conn.WriteJSON(types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketErrorResponse{Message: message},
	})
}
