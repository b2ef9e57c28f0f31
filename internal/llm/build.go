package llm

import (
	"fmt"
	"log/slog"

	"pravaah/internal/config"
	"pravaah/internal/port"
)

// NewFromConfig builds the completion client used by the pipeline: every
// configured provider with a key, paced to its request budget, chained in
// fallback order. A single provider is still wrapped so its breaker applies.
func NewFromConfig(cfg *config.LLMConfig) (port.CompletionClient, error) {
	var (
		clients []port.CompletionClient
		names   []string
	)
	for _, pc := range cfg.Providers() {
		if pc.APIKey == "" {
			slog.Warn("llm.NewFromConfig: provider has no API key, skipping", "provider", pc.Provider)
			continue
		}
		c, err := NewClient(pc)
		if err != nil {
			return nil, fmt.Errorf("creating %s client: %w", pc.Provider, err)
		}
		clients = append(clients, NewPacedClient(c, pc.RequestsPerMinute))
		names = append(names, pc.Provider)
	}
	if len(clients) == 0 {
		return nil, config.ErrMissingLLMCredential
	}
	slog.Info("llm.NewFromConfig: completion providers ready", "providers", names)
	return NewFallbackClient(clients, names, BreakerSettings{
		ConsecutiveFailures: cfg.BreakerFailures,
		OpenTimeout:         cfg.BreakerOpenTimeout,
	}), nil
}
