package service

import (
	"context"
	"log/slog"

	"pravaah/internal/domain"
	"pravaah/internal/port"
)

// ReviewQueueService exposes the review queue to clients.
type ReviewQueueService interface {
	List(ctx context.Context) ([]domain.ReviewQueueEntry, error)
	Remove(ctx context.Context, filename string) (int, error)
}

type reviewQueueService struct {
	queue   port.ReviewQueue
	archive port.DocumentArchive
}

// NewReviewQueueService creates a new ReviewQueueService. archive may be nil.
func NewReviewQueueService(queue port.ReviewQueue, archive port.DocumentArchive) ReviewQueueService {
	return &reviewQueueService{queue: queue, archive: archive}
}

// List returns the queue in insertion order. Archived rows get a download
// link; a row whose link cannot be signed is returned without one.
func (s *reviewQueueService) List(ctx context.Context) ([]domain.ReviewQueueEntry, error) {
	entries, err := s.queue.List(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.ReviewQueueEntry{}
	}
	if s.archive == nil {
		return entries, nil
	}
	for i := range entries {
		if entries[i].ArchiveKey == "" {
			continue
		}
		url, err := s.archive.URL(ctx, entries[i].ArchiveKey)
		if err != nil {
			slog.Warn("service.ReviewQueue.List: presigning archived upload failed",
				"filename", entries[i].Filename, "error", err)
			continue
		}
		entries[i].FileURL = url
	}
	return entries, nil
}

// Remove deletes every row named filename along with their archived copies.
func (s *reviewQueueService) Remove(ctx context.Context, filename string) (int, error) {
	removed, err := s.queue.Remove(ctx, filename)
	if err != nil {
		return 0, err
	}
	if s.archive != nil {
		for _, e := range removed {
			if e.ArchiveKey == "" {
				continue
			}
			if err := s.archive.Remove(ctx, e.ArchiveKey); err != nil {
				slog.Warn("service.ReviewQueue.Remove: deleting archived upload failed", "key", e.ArchiveKey, "error", err)
			}
		}
	}
	return len(removed), nil
}
