package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"pravaah/internal/config"
	"pravaah/internal/domain"
)

// ImageEngine turns an encoded image into text.
type ImageEngine interface {
	RecognizeImage(ctx context.Context, data []byte) (string, error)
}

// PageRasterizer renders every page of a PDF into image files.
type PageRasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error)
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".tif": true, ".tiff": true,
	".bmp": true, ".gif": true, ".webp": true,
}

// Recognizer implements port.TextRecognizer. PDFs are rasterized page by
// page and every page is OCRed; other files are treated as images.
type Recognizer struct {
	engine     ImageEngine
	rasterizer PageRasterizer
	timeout    time.Duration
	tempDir    string
}

// NewRecognizer wires Tesseract and pdftoppm from configuration.
func NewRecognizer(cfg *config.OCRConfig, tempDir string) *Recognizer {
	return NewRecognizerWith(
		NewTesseractEngine(cfg.Languages, cfg.TessdataPrefix, cfg.RasterDPI),
		NewPopplerRasterizer(cfg.PDFToPPMPath, cfg.RasterDPI),
		time.Duration(cfg.TimeoutSecs)*time.Second,
		tempDir,
	)
}

// NewRecognizerWith builds a Recognizer from explicit collaborators.
func NewRecognizerWith(engine ImageEngine, rasterizer PageRasterizer, timeout time.Duration, tempDir string) *Recognizer {
	return &Recognizer{engine: engine, rasterizer: rasterizer, timeout: timeout, tempDir: tempDir}
}

// Recognize returns the text of the file at path. PDF pages are joined with
// a trailing newline per page.
func (r *Recognizer) Recognize(ctx context.Context, path string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ext := strings.ToLower(filepath.Ext(path))
	var (
		text string
		err  error
	)
	switch {
	case ext == ".pdf":
		text, err = r.recognizePDF(ctx, path)
	case imageExtensions[ext]:
		text, err = r.recognizeImageFile(ctx, path)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, ext)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrOCRFailed, err)
	}
	return text, nil
}

func (r *Recognizer) recognizeImageFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	return r.engine.RecognizeImage(ctx, data)
}

func (r *Recognizer) recognizePDF(ctx context.Context, path string) (string, error) {
	outDir, err := os.MkdirTemp(r.tempDir, "pravaah-pages-")
	if err != nil {
		return "", fmt.Errorf("creating page dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(outDir) }()

	pages, err := r.rasterizer.Rasterize(ctx, path, outDir)
	if errors.Is(err, exec.ErrNotFound) {
		slog.Warn("ocr.Recognizer.recognizePDF: pdftoppm not found, using embedded text layer", "file", filepath.Base(path))
		return r.textLayer(path)
	}
	if err != nil {
		return "", fmt.Errorf("rasterizing pdf: %w", err)
	}

	var sb strings.Builder
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := os.ReadFile(page)
		if err != nil {
			return "", fmt.Errorf("reading page %d: %w", i+1, err)
		}
		text, err := r.engine.RecognizeImage(ctx, data)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	slog.Debug("ocr.Recognizer.recognizePDF: done", "file", filepath.Base(path), "pages", len(pages))
	return sb.String(), nil
}

func (r *Recognizer) textLayer(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}
	text, _, err := ExtractPDFText(data)
	return text, err
}
