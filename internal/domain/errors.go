package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyOCRText          = errors.New("OCR failed.")
	ErrOCRFailed             = errors.New("OCR engine failed")
	ErrAIService             = errors.New("AI service call failed")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrInvalidDocumentType   = errors.New("invalid document type")
	ErrQueueIO               = errors.New("review queue I/O failed")
	ErrLogStore              = errors.New("log store unavailable")
	ErrArchiveFailed         = errors.New("archiving upload failed")
	ErrMissingUpload         = errors.New("no file uploaded")
	ErrMissingReviewFilename = errors.New("filename_to_remove is required")
)

// AIOutputParseError reports that the model answered with text that is not a
// JSON object. Raw keeps the sanitized text for diagnostics.
type AIOutputParseError struct {
	Raw string
	Err error
}

func (e *AIOutputParseError) Error() string {
	return fmt.Sprintf("AI failed to return valid JSON: %v", e.Err)
}

func (e *AIOutputParseError) Unwrap() error {
	return e.Err
}
