// Package redis keeps the review queue in a Redis list of JSON entries.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"pravaah/internal/config"
	"pravaah/internal/domain"
	"pravaah/internal/port"
)

const (
	queueKey   = "review_queue"
	maxRetries = 5
)

// Store is a Redis-backed review queue. Removal is an optimistic
// WATCH/MULTI transaction retried on conflict.
type Store struct {
	rdb *goredis.Client
	key string
}

var _ port.ReviewQueue = (*Store)(nil)

// NewClient creates a go-redis client from configuration.
func NewClient(cfg *config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// New creates a Store. keyPrefix namespaces the list key.
func New(rdb *goredis.Client, keyPrefix string) *Store {
	return &Store{rdb: rdb, key: keyPrefix + queueKey}
}

func (s *Store) Add(ctx context.Context, entry domain.ReviewQueueEntry) error {
	data, err := json.Marshal(storedEntry(entry))
	if err != nil {
		return fmt.Errorf("%w: encoding entry: %w", domain.ErrQueueIO, err)
	}
	if err := s.rdb.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrQueueIO, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]domain.ReviewQueueEntry, error) {
	return s.list(ctx, s.rdb)
}

func (s *Store) Remove(ctx context.Context, filename string) ([]domain.ReviewQueueEntry, error) {
	var removed []domain.ReviewQueueEntry
	txf := func(tx *goredis.Tx) error {
		removed = nil
		entries, err := s.list(ctx, tx)
		if err != nil {
			return err
		}
		var kept []any
		for _, e := range entries {
			if e.Filename == filename {
				removed = append(removed, e)
				continue
			}
			data, err := json.Marshal(storedEntry(e))
			if err != nil {
				return err
			}
			kept = append(kept, data)
		}
		if len(removed) == 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Del(ctx, s.key)
			if len(kept) > 0 {
				pipe.RPush(ctx, s.key, kept...)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, s.key)
		if err == nil {
			return removed, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrQueueIO, err)
	}
	return nil, fmt.Errorf("%w: remove %q: too many concurrent updates", domain.ErrQueueIO, filename)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) list(ctx context.Context, c goredis.Cmdable) ([]domain.ReviewQueueEntry, error) {
	raw, err := c.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQueueIO, err)
	}
	entries := make([]domain.ReviewQueueEntry, 0, len(raw))
	for _, r := range raw {
		var e stored
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("%w: decoding entry: %w", domain.ErrQueueIO, err)
		}
		entries = append(entries, e.entry())
	}
	return entries, nil
}

// stored is the persisted form; unlike the API form it keeps the archive key.
type stored struct {
	Filename   string `json:"filename"`
	AIGuess    string `json:"ai_guess"`
	Confidence string `json:"confidence"`
	ArchiveKey string `json:"archive_key,omitempty"`
}

func storedEntry(e domain.ReviewQueueEntry) stored {
	return stored{Filename: e.Filename, AIGuess: string(e.AIGuess), Confidence: e.Confidence, ArchiveKey: e.ArchiveKey}
}

func (s stored) entry() domain.ReviewQueueEntry {
	return domain.ReviewQueueEntry{
		Filename:   s.Filename,
		AIGuess:    domain.DocumentType(s.AIGuess),
		Confidence: s.Confidence,
		ArchiveKey: s.ArchiveKey,
	}
}
