package port

import (
	"context"

	"pravaah/internal/domain"
)

// ReviewQueue stores documents waiting for a human to confirm their type.
type ReviewQueue interface {
	Add(ctx context.Context, entry domain.ReviewQueueEntry) error
	List(ctx context.Context) ([]domain.ReviewQueueEntry, error)
	// Remove deletes every entry whose filename equals filename exactly and
	// returns the deleted entries.
	Remove(ctx context.Context, filename string) ([]domain.ReviewQueueEntry, error)
}
