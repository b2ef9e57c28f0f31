package port

import (
	"context"

	"pravaah/internal/domain"
)

// ReviewNotifier tells reviewers that a document entered the review queue.
type ReviewNotifier interface {
	NotifyQueued(ctx context.Context, entry domain.ReviewQueueEntry) error
}
