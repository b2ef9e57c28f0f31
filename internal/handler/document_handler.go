package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pravaah/internal/service"
)

// DocumentHandler handles document processing endpoints.
type DocumentHandler struct {
	processingService service.ProcessingService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(processingService service.ProcessingService) *DocumentHandler {
	return &DocumentHandler{processingService: processingService}
}

// Process handles POST /process-document
// @Summary Process a document
// @Description OCR, classify and, when confident, extract, validate and risk-score an uploaded document. Low-confidence documents are sent to the review queue.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to process (PDF, JPG, PNG or TIFF)"
// @Success 200 {object} domain.ProcessingResult "Processing outcome"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type or OCR produced no text"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "AI returned invalid JSON or an internal error occurred"
// @Router /process-document [post]
func (h *DocumentHandler) Process(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.processingService.Process(c.Request.Context(), service.Upload{
		Filename: header.Filename,
		Body:     file,
		Size:     header.Size,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Review handles POST /review-document
// @Summary Resolve a queued document
// @Description Re-extract a document under the type chosen by a reviewer, log it and remove it from the review queue
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "The queued document"
// @Param correct_doc_type formData string true "Document type chosen by the reviewer" Enums(Invoice, Claim Form, Inspection Report, Unknown Document)
// @Param filename_to_remove formData string true "Review queue filename to remove"
// @Success 200 {object} domain.ResolutionResult "Resolution outcome"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "AI returned invalid JSON or an internal error occurred"
// @Router /review-document [post]
func (h *DocumentHandler) Review(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	correctType := c.PostForm("correct_doc_type")
	if correctType == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "correct_doc_type is required")
		return
	}

	result, err := h.processingService.Resolve(c.Request.Context(), service.Upload{
		Filename: header.Filename,
		Body:     file,
		Size:     header.Size,
	}, correctType, c.PostForm("filename_to_remove"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
