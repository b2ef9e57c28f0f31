package port

import "context"

// CompletionRequest is a single-turn text prompt.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
}

// CompletionResponse holds the model's text answer.
type CompletionResponse struct {
	Text  string
	Model string
}

// CompletionClient abstracts an LLM text-completion provider.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
