package types

type AskRequest struct {
	Question string `json:"question"`
}

type CreateSessionRequest struct {
	Name string `json:"name,omitempty"`
}
