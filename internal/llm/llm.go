package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts chat-completion providers that return structured JSON.
type Client interface {
	Complete(ctx context.Context, req Request) (Completion, error)
}

// Request captures one structured-output completion request.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
}

// Completion is the provider's response plus token accounting.
type Completion struct {
	JSON       json.RawMessage
	TokensUsed int
	Model      string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (Completion, error) {
	_ = ctx
	_ = req
	return Completion{}, ErrNotImplemented
}
