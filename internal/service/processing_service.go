package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"pravaah/internal/domain"
	"pravaah/internal/pipeline"
	"pravaah/internal/port"
	"pravaah/internal/validator"
)

// ProcessingService runs uploads through the document pipeline.
type ProcessingService interface {
	// Process classifies an upload and either routes it to the review queue
	// or extracts, validates, risk-scores and logs it.
	Process(ctx context.Context, upload Upload) (*domain.ProcessingResult, error)
	// Resolve re-extracts a queued document under the type a reviewer chose,
	// logs it and removes every queue row named filenameToRemove.
	Resolve(ctx context.Context, upload Upload, correctDocType, filenameToRemove string) (*domain.ResolutionResult, error)
}

// ProcessingDeps are the collaborators of the processing service. Archive,
// Notifier and Recorder are optional.
type ProcessingDeps struct {
	Recognizer port.TextRecognizer
	LLM        port.CompletionClient
	Logs       port.LogStore
	Queue      port.ReviewQueue
	Archive    port.DocumentArchive
	Notifier   port.ReviewNotifier
	Recorder   Recorder
}

// ProcessingOptions tune the pipeline.
type ProcessingOptions struct {
	ConfidenceThreshold float64
	Region              domain.RegionProfile
	// LocationContext overrides the region's location in risk prompts.
	LocationContext string
	TempDir         string
	MaxFileBytes    int64
}

type processingService struct {
	recognizer port.TextRecognizer
	logs       port.LogStore
	queue      port.ReviewQueue
	archive    port.DocumentArchive
	notifier   port.ReviewNotifier
	recorder   Recorder
	reviews    ReviewQueueService

	normalizer *pipeline.AmountNormalizer
	extractor  *pipeline.Extractor
	validator  *validator.Validator
	risk       *pipeline.RiskAnalyzer

	threshold float64
	stager    stager
	now       func() time.Time
}

// NewProcessingService creates a new ProcessingService implementation.
func NewProcessingService(deps ProcessingDeps, opts ProcessingOptions) ProcessingService {
	threshold := opts.ConfidenceThreshold
	if threshold <= 0 {
		threshold = pipeline.DefaultConfidenceThreshold
	}
	recorder := deps.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &processingService{
		recognizer: deps.Recognizer,
		logs:       deps.Logs,
		queue:      deps.Queue,
		archive:    deps.Archive,
		notifier:   deps.Notifier,
		recorder:   recorder,
		reviews:    NewReviewQueueService(deps.Queue, deps.Archive),
		normalizer: pipeline.NewAmountNormalizer(opts.Region),
		extractor:  pipeline.NewExtractor(deps.LLM),
		validator:  validator.New(opts.Region),
		risk:       pipeline.NewRiskAnalyzer(deps.LLM, opts.Region, opts.LocationContext),
		threshold:  threshold,
		stager:     stager{tempDir: opts.TempDir, maxBytes: opts.MaxFileBytes},
		now:        time.Now,
	}
}

func (s *processingService) Process(ctx context.Context, upload Upload) (*domain.ProcessingResult, error) {
	path, cleanup, err := s.stager.stage(upload)
	defer cleanup()
	if err != nil {
		return nil, err
	}

	text, err := s.recognize(ctx, path)
	if err != nil {
		return nil, err
	}

	cleaned := s.normalizer.Normalize(text)
	cls := pipeline.Classify(cleaned)
	result := &domain.ProcessingResult{
		Filename:   upload.Filename,
		OCRText:    text,
		DocType:    cls.DocumentType,
		Confidence: cls.Confidence,
	}

	if cls.Confidence < s.threshold {
		s.enqueue(ctx, path, upload.Filename, cls)
		result.Status = domain.StatusSentToReview
		s.recorder.ObserveDocument(string(cls.DocumentType), string(result.Status))
		slog.Info("service.Process: sent to review queue",
			"filename", upload.Filename, "doc_type", cls.DocumentType, "confidence", cls.Confidence)
		return result, nil
	}

	fields, err := s.extract(ctx, cleaned, cls.DocumentType)
	if err != nil {
		return nil, err
	}

	result.ExtractedData = fields
	result.ValidationResults = s.validator.Validate(fields)

	start := time.Now()
	risk := s.risk.Analyze(ctx, fields)
	result.RiskAnalysis = &risk
	s.recorder.ObserveStage("risk", time.Since(start))

	s.appendLog(ctx, cls.DocumentType, fields)

	result.Status = domain.StatusProcessingComplete
	s.recorder.ObserveDocument(string(cls.DocumentType), string(result.Status))
	slog.Info("service.Process: processing complete",
		"filename", upload.Filename, "doc_type", cls.DocumentType, "risk", risk.Label)
	return result, nil
}

func (s *processingService) Resolve(ctx context.Context, upload Upload, correctDocType, filenameToRemove string) (*domain.ResolutionResult, error) {
	docType, err := domain.ParseDocumentType(correctDocType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, correctDocType)
	}
	if strings.TrimSpace(filenameToRemove) == "" {
		return nil, domain.ErrMissingReviewFilename
	}

	path, cleanup, err := s.stager.stage(upload)
	defer cleanup()
	if err != nil {
		return nil, err
	}

	text, err := s.recognize(ctx, path)
	if err != nil {
		return nil, err
	}

	fields, err := s.extract(ctx, s.normalizer.Normalize(text), docType)
	if err != nil {
		return nil, err
	}

	s.appendLog(ctx, docType, fields)

	removed, err := s.reviews.Remove(ctx, filenameToRemove)
	s.recorder.ObserveQueueOp("remove", err)
	if err != nil {
		slog.Error("service.Resolve: removing from review queue failed", "filename", filenameToRemove, "error", err)
	}

	s.recorder.ObserveDocument(string(docType), "Resolved")
	slog.Info("service.Resolve: document resolved",
		"filename", filenameToRemove, "doc_type", docType, "removed", removed)
	return &domain.ResolutionResult{Status: "success", ExtractedData: fields, Removed: removed}, nil
}

// recognize runs OCR. Output that is empty after trimming is an OCR failure.
func (s *processingService) recognize(ctx context.Context, path string) (string, error) {
	start := time.Now()
	text, err := s.recognizer.Recognize(ctx, path)
	s.recorder.ObserveStage("ocr", time.Since(start))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyOCRText
	}
	return text, nil
}

func (s *processingService) extract(ctx context.Context, text string, docType domain.DocumentType) (domain.StructuredFields, error) {
	start := time.Now()
	res, err := s.extractor.Extract(ctx, text, docType)
	s.recorder.ObserveStage("extract", time.Since(start))
	if err != nil {
		return nil, err
	}

	fields, err := res.Parsed()
	if err != nil {
		var parseErr *domain.AIOutputParseError
		if errors.As(err, &parseErr) {
			slog.Error("service.extract: model did not return valid JSON",
				"doc_type", docType, "model", res.Model, "raw", parseErr.Raw)
		}
		return nil, err
	}
	return fields, nil
}

// appendLog writes the log record. Log store failures never fail the request.
func (s *processingService) appendLog(ctx context.Context, docType domain.DocumentType, fields domain.StructuredFields) {
	rec := domain.NewLogRecord(docType, fields, s.now())
	if err := s.logs.Append(ctx, rec); err != nil {
		slog.Error("service.appendLog: log store append failed",
			"doc_type", docType, "error", fmt.Errorf("%w: %w", domain.ErrLogStore, err))
	}
}

// enqueue adds the document to the review queue. Archive and notification
// failures are logged; a queue failure is logged and the request still
// reports the document as sent to review.
func (s *processingService) enqueue(ctx context.Context, path, filename string, cls domain.ClassificationResult) {
	entry := domain.ReviewQueueEntry{
		Filename:   filename,
		AIGuess:    cls.DocumentType,
		Confidence: domain.FormatConfidence(cls.Confidence),
	}

	if s.archive != nil {
		key, err := s.archiveFile(ctx, path, filename)
		if err != nil {
			slog.Warn("service.enqueue: archiving upload failed", "filename", filename, "error", err)
		} else {
			entry.ArchiveKey = key
		}
	}

	err := s.queue.Add(ctx, entry)
	s.recorder.ObserveQueueOp("add", err)
	if err != nil {
		slog.Error("service.enqueue: adding to review queue failed", "filename", filename, "error", err)
		if entry.ArchiveKey != "" {
			if rmErr := s.archive.Remove(ctx, entry.ArchiveKey); rmErr != nil {
				slog.Warn("service.enqueue: removing orphaned archive failed", "key", entry.ArchiveKey, "error", rmErr)
			}
		}
		return
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyQueued(ctx, entry); err != nil {
			slog.Warn("service.enqueue: reviewer notification failed", "filename", filename, "error", err)
		}
	}
}

func (s *processingService) archiveFile(ctx context.Context, path, filename string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrArchiveFailed, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrArchiveFailed, err)
	}
	return s.archive.Archive(ctx, filename, f, info.Size())
}
