package port

import (
	"context"
	"io"
)

// DocumentArchive keeps a copy of uploads that were sent to the review queue
// so reviewers can open the original file.
type DocumentArchive interface {
	// Archive stores body under a fresh key derived from filename and
	// returns that key.
	Archive(ctx context.Context, filename string, body io.Reader, size int64) (string, error)
	// URL returns a time-limited download link for key.
	URL(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
}
