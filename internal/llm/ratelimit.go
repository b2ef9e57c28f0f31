package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"pravaah/internal/port"
)

// PacedClient spaces calls to a provider so a configured requests-per-minute
// budget is never exceeded. Callers block until a slot frees up or ctx ends.
type PacedClient struct {
	next    port.CompletionClient
	limiter *rate.Limiter
}

// NewPacedClient wraps next with a limiter. A non-positive rpm returns next
// unchanged.
func NewPacedClient(next port.CompletionClient, rpm int) port.CompletionClient {
	if rpm <= 0 {
		return next
	}
	return &PacedClient{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
	}
}

func (p *PacedClient) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return p.next.Complete(ctx, req)
}
