package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pravaah/internal/domain"
	"pravaah/internal/port"
)

type logStore struct {
	db *sqlx.DB
}

// NewLogStore creates a PostgreSQL-backed LogStore over the processed_logs
// table.
func NewLogStore(db *sqlx.DB) port.LogStore {
	return &logStore{db: db}
}

func (s *logStore) Append(ctx context.Context, rec domain.LogRecord) error {
	query := `INSERT INTO processed_logs
		(id, logged_at, doc_type, vendor_name, total_amount, invoice_date)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Timestamp, rec.DocType, rec.VendorName, rec.TotalAmount, rec.InvoiceDate)
	if err != nil {
		return fmt.Errorf("logStore.Append: %w", err)
	}
	return nil
}

func (s *logStore) List(ctx context.Context) ([]domain.LogRecord, error) {
	var records []domain.LogRecord
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, logged_at, doc_type, vendor_name, total_amount, invoice_date
		 FROM processed_logs ORDER BY logged_at, id`)
	if err != nil {
		return nil, fmt.Errorf("logStore.List: %w", err)
	}
	return records, nil
}

func (s *logStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
