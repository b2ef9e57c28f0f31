// Package csvfile keeps the review queue in a single CSV file with the
// columns filename, ai_guess, confidence and archive_key.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"pravaah/internal/domain"
	"pravaah/internal/port"
)

var header = []string{"filename", "ai_guess", "confidence", "archive_key"}

// Store is a file-backed review queue. All mutations hold a process-wide
// lock and rewrites go through a temporary file that is renamed into place.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ port.ReviewQueue = (*Store)(nil)

// New creates a Store for the CSV file at path. The file is created on the
// first Add.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Add(_ context.Context, entry domain.ReviewQueueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", domain.ErrQueueIO, s.path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrQueueIO, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("%w: writing header: %w", domain.ErrQueueIO, err)
		}
	}
	if err := w.Write(toRow(entry)); err != nil {
		return fmt.Errorf("%w: writing row: %w", domain.ErrQueueIO, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrQueueIO, err)
	}
	return nil
}

func (s *Store) List(_ context.Context) ([]domain.ReviewQueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *Store) Remove(_ context.Context, filename string) ([]domain.ReviewQueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}

	var kept, removed []domain.ReviewQueueEntry
	for _, e := range entries {
		if e.Filename == filename {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	if err := s.rewrite(kept); err != nil {
		return nil, err
	}
	return removed, nil
}

// readAll maps columns by header name so files written without the
// archive_key column still load.
func (s *Store) readAll() ([]domain.ReviewQueueEntry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.ReviewQueueEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrQueueIO, s.path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	cols, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []domain.ReviewQueueEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", domain.ErrQueueIO, err)
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	entries := []domain.ReviewQueueEntry{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading row: %w", domain.ErrQueueIO, err)
		}
		entries = append(entries, domain.ReviewQueueEntry{
			Filename:   field(row, "filename"),
			AIGuess:    domain.DocumentType(field(row, "ai_guess")),
			Confidence: field(row, "confidence"),
			ArchiveKey: field(row, "archive_key"),
		})
	}
	return entries, nil
}

func (s *Store) rewrite(entries []domain.ReviewQueueEntry) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", domain.ErrQueueIO, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := csv.NewWriter(tmp)
	_ = w.Write(header)
	for _, e := range entries {
		_ = w.Write(toRow(e))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: writing temp file: %w", domain.ErrQueueIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrQueueIO, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", domain.ErrQueueIO, s.path, err)
	}
	return nil
}

func toRow(e domain.ReviewQueueEntry) []string {
	return []string{e.Filename, string(e.AIGuess), e.Confidence, e.ArchiveKey}
}
