package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"pravaah/internal/port"
)

// BreakerSettings controls when a failing provider is taken out of rotation.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker; 0 disables it.
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// rateLimitWindow tracks Retry-After backoff for a single provider.
type rateLimitWindow struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *rateLimitWindow) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *rateLimitWindow) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

type member struct {
	name    string
	client  port.CompletionClient
	window  *rateLimitWindow
	breaker *gobreaker.CircuitBreaker[*port.CompletionResponse]
}

// FallbackClient tries providers in order, skipping any that are rate
// limited or whose breaker is open. It implements port.CompletionClient.
type FallbackClient struct {
	members []*member
	now     func() time.Time
}

// NewFallbackClient creates a FallbackClient from an ordered list of clients and their names.
func NewFallbackClient(clients []port.CompletionClient, names []string, settings BreakerSettings) *FallbackClient {
	members := make([]*member, len(clients))
	for i, c := range clients {
		m := &member{name: names[i], client: c, window: &rateLimitWindow{}}
		if settings.ConsecutiveFailures > 0 {
			m.breaker = gobreaker.NewCircuitBreaker[*port.CompletionResponse](gobreaker.Settings{
				Name:    names[i],
				Timeout: settings.OpenTimeout,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
				},
				IsSuccessful: func(err error) bool {
					// Rate limits and cancellations do not count as failures.
					var rlErr *RateLimitError
					return err == nil || errors.As(err, &rlErr) || errors.Is(err, context.Canceled)
				},
				OnStateChange: func(name string, from, to gobreaker.State) {
					slog.Warn("llm.FallbackClient: circuit breaker state change",
						"provider", name, "from", from.String(), "to", to.String())
				},
			})
		}
		members[i] = m
	}
	return &FallbackClient{members: members, now: time.Now}
}

func (f *FallbackClient) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for _, m := range f.members {
		if resetAt, open := m.window.isOpenWithReset(now); open {
			slog.Info("llm.FallbackClient: skipping rate-limited provider",
				"provider", m.name, "until", resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := m.call(ctx, req)
		if err == nil {
			return out, nil
		}

		slog.Warn("llm.FallbackClient: provider failed", "provider", m.name, "error", err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			m.window.open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("completion aborted: %w", ctx.Err())
		}
	}

	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", errors.New("all providers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}

func (m *member) call(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	if m.breaker == nil {
		return m.client.Complete(ctx, req)
	}
	return m.breaker.Execute(func() (*port.CompletionResponse, error) {
		return m.client.Complete(ctx, req)
	})
}

// IsCircuitOpen reports whether err came from an open breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
