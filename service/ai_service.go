package service

import (
	"context"
)

// AIService is the generation collaborator: one prompt in, one reply out.
// Both intent classification and answer generation go through it.
type AIService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
