package port

import (
	"context"

	"pravaah/internal/domain"
)

// LogStore persists processed-document summaries. Records are never updated
// or deleted.
type LogStore interface {
	Append(ctx context.Context, rec domain.LogRecord) error
	List(ctx context.Context) ([]domain.LogRecord, error)
}
