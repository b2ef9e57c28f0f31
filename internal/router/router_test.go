package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pravaah/internal/domain"
	"pravaah/internal/handler"
	"pravaah/internal/metrics"
	"pravaah/internal/router"
	"pravaah/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T) (*gin.Engine, *mocks.MockReviewQueueService) {
	t.Helper()
	dash := new(mocks.MockDashboardService)
	dash.On("Summary", mock.Anything).Return(domain.Dashboard{})
	queue := new(mocks.MockReviewQueueService)
	queue.On("List", mock.Anything).Return([]domain.ReviewQueueEntry{}, nil)

	r := router.Setup(router.Handlers{
		Document:    handler.NewDocumentHandler(new(mocks.MockProcessingService)),
		Dashboard:   handler.NewDashboardHandler(dash),
		ReviewQueue: handler.NewReviewQueueHandler(queue),
		Health:      handler.NewHealthHandler(nil),
	}, router.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		Metrics:        metrics.New(),
		EnableSwagger:  true,
	})
	return r, queue
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, http.NoBody))
	return w
}

func TestSetup_TrailingSlashRoutes(t *testing.T) {
	r, queue := newEngine(t)

	for _, path := range []string{"/review-queue", "/review-queue/", "/dashboard-data", "/dashboard-data/"} {
		w := serve(r, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
	queue.AssertNumberOfCalls(t, "List", 2)
}

func TestSetup_ProcessWithoutFile(t *testing.T) {
	r, _ := newEngine(t)

	for _, path := range []string{"/process-document", "/process-document/", "/review-document/"} {
		w := serve(r, http.MethodPost, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestSetup_Operational(t *testing.T) {
	r, _ := newEngine(t)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/healthz").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/readyz").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/swagger/doc.json").Code)

	serve(r, http.MethodGet, "/review-queue")
	w := serve(r, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/review-queue"`)
}

func TestSetup_UnknownRoute(t *testing.T) {
	r, _ := newEngine(t)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/nope").Code)
}
