package llm

import (
	"context"
)

// Client sends one prompt to a text model and returns the reply text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
