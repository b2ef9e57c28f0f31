package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pravaah/internal/domain"
	"pravaah/internal/handler"
	"pravaah/internal/port"
	"pravaah/internal/service"
	"pravaah/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// multipartRequest builds a POST with a "file" part and extra form fields.
func multipartRequest(t *testing.T, path, filename string, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, _ = part.Write([]byte("%PDF-1.4 test content"))
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorResponseBody {
	t.Helper()
	var body handler.ErrorResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestDocumentHandler_Process_Success(t *testing.T) {
	svc := new(mocks.MockProcessingService)
	h := handler.NewDocumentHandler(svc)

	svc.On("Process", mock.Anything, mock.MatchedBy(func(u service.Upload) bool {
		return u.Filename == "invoice.pdf" && u.Size == int64(len("%PDF-1.4 test content")) && u.Body != nil
	})).Return(&domain.ProcessingResult{
		Filename:   "invoice.pdf",
		OCRText:    "Invoice Number: 1",
		DocType:    domain.DocTypeUnknown,
		Confidence: 0.4,
		Status:     domain.StatusSentToReview,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/process-document", "invoice.pdf", nil)

	h.Process(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Sent to Review Queue", resp["status"])
	assert.Equal(t, "Unknown Document", resp["doc_type"])
	assert.Contains(t, resp, "extracted_data")
	assert.Nil(t, resp["extracted_data"])
	assert.Nil(t, resp["validation_results"])
	assert.Nil(t, resp["risk_analysis"])
	svc.AssertExpectations(t)
}

func TestDocumentHandler_Process_NoFile(t *testing.T) {
	svc := new(mocks.MockProcessingService)
	h := handler.NewDocumentHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/process-document", "", nil)

	h.Process(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeError(t, w).Code)
	svc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Process_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{"empty ocr", domain.ErrEmptyOCRText, http.StatusBadRequest, "OCR_EMPTY", "OCR failed."},
		{"invalid json", &domain.AIOutputParseError{Raw: "nope", Err: errors.New("invalid character")},
			http.StatusInternalServerError, "AI_INVALID_JSON", "AI failed to return valid JSON."},
		{"unsupported", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", ""},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", ""},
		{"ocr engine", fmt.Errorf("%w: tesseract missing", domain.ErrOCRFailed), http.StatusInternalServerError, "OCR_FAILED",
			"An internal server error occurred: OCR engine failed: tesseract missing"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "An internal server error occurred: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockProcessingService)
			h := handler.NewDocumentHandler(svc)
			svc.On("Process", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = multipartRequest(t, "/process-document", "scan.png", nil)

			h.Process(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.wantCode, body.Code)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body.Detail)
			}
		})
	}
}

func TestDocumentHandler_Review_Success(t *testing.T) {
	svc := new(mocks.MockProcessingService)
	h := handler.NewDocumentHandler(svc)

	svc.On("Resolve", mock.Anything, mock.MatchedBy(func(u service.Upload) bool {
		return u.Filename == "queued.pdf"
	}), "Invoice", "queued.pdf").Return(&domain.ResolutionResult{
		Status:        "success",
		ExtractedData: domain.StructuredFields{"Vendor Name": "Acme"},
		Removed:       1,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/review-document", "queued.pdf", map[string]string{
		"correct_doc_type":   "Invoice",
		"filename_to_remove": "queued.pdf",
	})

	h.Review(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, map[string]any{"Vendor Name": "Acme"}, resp["extracted_data"])
	svc.AssertExpectations(t)
}

func TestDocumentHandler_Review_MissingType(t *testing.T) {
	svc := new(mocks.MockProcessingService)
	h := handler.NewDocumentHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/review-document", "queued.pdf", map[string]string{"filename_to_remove": "queued.pdf"})

	h.Review(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentHandler_Review_InvalidType(t *testing.T) {
	svc := new(mocks.MockProcessingService)
	h := handler.NewDocumentHandler(svc)
	svc.On("Resolve", mock.Anything, mock.Anything, "Receipt", "queued.pdf").
		Return(nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, "Receipt"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartRequest(t, "/review-document", "queued.pdf", map[string]string{
		"correct_doc_type":   "Receipt",
		"filename_to_remove": "queued.pdf",
	})

	h.Review(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DOCUMENT_TYPE", decodeError(t, w).Code)
}

func TestDashboardHandler_Summary_Empty(t *testing.T) {
	svc := new(mocks.MockDashboardService)
	h := handler.NewDashboardHandler(svc)
	svc.On("Summary", mock.Anything).Return(domain.Dashboard{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/dashboard-data", http.NoBody)

	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"kpis":{},"charts":{}}`, w.Body.String())
}

func TestDashboardHandler_Summary(t *testing.T) {
	svc := new(mocks.MockDashboardService)
	h := handler.NewDashboardHandler(svc)
	svc.On("Summary", mock.Anything).Return(service.BuildDashboard([]domain.LogRecord{
		{DocType: domain.DocTypeInvoice, VendorName: "Acme", TotalAmount: 100},
		{DocType: domain.DocTypeClaimForm, VendorName: domain.NotAvailable},
	}))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/dashboard-data", http.NoBody)

	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"kpis": {"total_docs": 2, "total_invoices": 1, "total_value": 100},
		"charts": {
			"doc_distribution": {"Invoice": 1, "Claim Form": 1},
			"top_vendors": {"Acme": 100, "N/A": 0}
		}
	}`, w.Body.String())
}

func TestDashboardHandler_Export(t *testing.T) {
	svc := new(mocks.MockDashboardService)
	h := handler.NewDashboardHandler(svc)
	svc.On("Records", mock.Anything).Return([]domain.LogRecord{
		{DocType: domain.DocTypeInvoice, VendorName: "Acme", TotalAmount: 100, InvoiceDate: "2024-01-01"},
	}, nil)

	for _, format := range []string{"csv", "xlsx"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodGet, "/dashboard-data/export?format="+format, http.NoBody)

		h.Export(c)

		assert.Equal(t, http.StatusOK, w.Code, format)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "."+format+`"`)
		assert.NotZero(t, w.Body.Len())
	}
}

func TestDashboardHandler_ExportErrors(t *testing.T) {
	svc := new(mocks.MockDashboardService)
	h := handler.NewDashboardHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/dashboard-data/export?format=pdf", http.NoBody)
	h.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("Records", mock.Anything).Return(nil, errors.New("mongo down"))
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/dashboard-data/export", http.NoBody)
	h.Export(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReviewQueueHandler_List(t *testing.T) {
	svc := new(mocks.MockReviewQueueService)
	h := handler.NewReviewQueueHandler(svc)
	svc.On("List", mock.Anything).Return([]domain.ReviewQueueEntry{
		{Filename: "a.pdf", AIGuess: domain.DocTypeUnknown, Confidence: "40%", ArchiveKey: "secret/key"},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/review-queue", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"filename":"a.pdf","ai_guess":"Unknown Document","confidence":"40%"}]`, w.Body.String())
}

func TestReviewQueueHandler_ListEmpty(t *testing.T) {
	svc := new(mocks.MockReviewQueueService)
	h := handler.NewReviewQueueHandler(svc)
	svc.On("List", mock.Anything).Return([]domain.ReviewQueueEntry{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/review-queue", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestReviewQueueHandler_ListError(t *testing.T) {
	svc := new(mocks.MockReviewQueueService)
	h := handler.NewReviewQueueHandler(svc)
	svc.On("List", mock.Anything).Return(nil, fmt.Errorf("%w: permission denied", domain.ErrQueueIO))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/review-queue", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "QUEUE_IO_ERROR", decodeError(t, w).Code)
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	okDep := new(mocks.MockPinger)
	okDep.On("Ping", mock.Anything).Return(nil)
	badDep := new(mocks.MockPinger)
	badDep.On("Ping", mock.Anything).Return(errors.New("refused"))

	h := handler.NewHealthHandler(map[string]port.Pinger{"log_store": okDep, "review_queue": okDep})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"log_store":"ok","review_queue":"ok"}}`, w.Body.String())

	h = handler.NewHealthHandler(map[string]port.Pinger{"log_store": okDep, "review_queue": badDep})
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","checks":{"log_store":"ok","review_queue":"unreachable"}}`, w.Body.String())
}
