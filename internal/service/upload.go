package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pravaah/internal/domain"
)

// Upload is a document handed to the pipeline.
type Upload struct {
	Filename string
	Body     io.Reader
	// Size is the declared size in bytes, or -1 when unknown.
	Size int64
}

// stager writes uploads to a private temp directory for the OCR engine.
type stager struct {
	tempDir  string
	maxBytes int64
}

// stage copies the upload to <tempdir>/pravaah-*/temp_<name>. The returned
// cleanup removes it and must always be called.
func (s stager) stage(u Upload) (string, func(), error) {
	noop := func() {}
	if u.Body == nil || strings.TrimSpace(u.Filename) == "" {
		return "", noop, domain.ErrMissingUpload
	}

	name := filepath.Base(filepath.Clean("/" + u.Filename))
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !domain.AllowedExtensions[ext] {
		return "", noop, domain.ErrUnsupportedFileType
	}
	if s.maxBytes > 0 && u.Size > s.maxBytes {
		return "", noop, domain.ErrFileTooLarge
	}

	dir, err := os.MkdirTemp(s.tempDir, "pravaah-")
	if err != nil {
		return "", noop, fmt.Errorf("creating staging dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, domain.StagedFilePrefix+name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		cleanup()
		return "", noop, fmt.Errorf("creating staged file: %w", err)
	}

	body := u.Body
	if s.maxBytes > 0 {
		body = io.LimitReader(u.Body, s.maxBytes+1)
	}
	n, err := io.Copy(f, body)
	closeErr := f.Close()
	if err != nil {
		cleanup()
		return "", noop, fmt.Errorf("writing staged file: %w", err)
	}
	if closeErr != nil {
		cleanup()
		return "", noop, fmt.Errorf("closing staged file: %w", closeErr)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		cleanup()
		return "", noop, domain.ErrFileTooLarge
	}
	return path, cleanup, nil
}
