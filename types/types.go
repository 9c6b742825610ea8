package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketChat       = "chat"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketError      = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketChatPayload struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketChatResponse struct {
	SessionID string       `json:"session_id"`
	Message   *ChatMessage `json:"message"`
}

type WebSocketProcessingResponse struct {
	Message string `json:"message"`
}

type WebSocketErrorResponse struct {
	Message string `json:"message"`
}
