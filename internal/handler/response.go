package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pravaah/internal/domain"
	"pravaah/internal/middleware"
)

// ErrorResponseBody is the body of every error response.
type ErrorResponseBody struct {
	Detail string `json:"detail" example:"OCR failed."`
	Code   string `json:"code" example:"OCR_EMPTY"`
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, detail string) {
	c.JSON(status, ErrorResponseBody{Detail: detail, Code: code})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var parseErr *domain.AIOutputParseError
	switch {
	case errors.Is(err, domain.ErrEmptyOCRText):
		return http.StatusBadRequest, "OCR_EMPTY", "OCR failed."
	case errors.As(err, &parseErr):
		return http.StatusInternalServerError, "AI_INVALID_JSON", "AI failed to return valid JSON."
	case errors.Is(err, domain.ErrMissingUpload):
		return http.StatusBadRequest, "MISSING_FILE", "file field is required"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, jpeg, png, tif, tiff"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidDocumentType):
		return http.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "correct_doc_type must be one of: Invoice, Claim Form, Inspection Report, Unknown Document"
	case errors.Is(err, domain.ErrMissingReviewFilename):
		return http.StatusBadRequest, "MISSING_FILENAME", "filename_to_remove is required"
	case errors.Is(err, domain.ErrOCRFailed):
		return http.StatusInternalServerError, "OCR_FAILED", internalDetail(err)
	case errors.Is(err, domain.ErrAIService):
		return http.StatusInternalServerError, "AI_SERVICE_ERROR", internalDetail(err)
	case errors.Is(err, domain.ErrQueueIO):
		return http.StatusInternalServerError, "QUEUE_IO_ERROR", internalDetail(err)
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", internalDetail(err)
	}
}

func internalDetail(err error) string {
	return "An internal server error occurred: " + err.Error()
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		slog.Error("handler.HandleError: request failed",
			"request_id", c.GetString(middleware.ContextKeyRequestID),
			"path", c.Request.URL.Path,
			"code", code,
			"error", err,
		)
	}
	RespondError(c, status, code, msg)
}
