package noop

import (
	"context"
	"log/slog"

	"pravaah/internal/domain"
	"pravaah/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a ReviewNotifier that only logs.
func NewNoopNotifier() port.ReviewNotifier {
	return noopNotifier{}
}

func (noopNotifier) NotifyQueued(_ context.Context, entry domain.ReviewQueueEntry) error {
	slog.Info("noop.Notifier.NotifyQueued: document queued for review",
		"filename", entry.Filename, "ai_guess", entry.AIGuess, "confidence", entry.Confidence)
	return nil
}
