// Package noop provides a LogStore that discards writes. It is used when no
// log-store backend is configured.
package noop

import (
	"context"
	"log/slog"

	"pravaah/internal/domain"
	"pravaah/internal/port"
)

type logStore struct{}

// NewLogStore returns a LogStore that drops every record.
func NewLogStore() port.LogStore {
	return logStore{}
}

func (logStore) Append(_ context.Context, rec domain.LogRecord) error {
	slog.Debug("noop.LogStore.Append: log store disabled, dropping record", "doc_type", rec.DocType)
	return nil
}

func (logStore) List(_ context.Context) ([]domain.LogRecord, error) {
	return nil, nil
}
