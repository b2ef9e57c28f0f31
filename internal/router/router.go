package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pravaah/docs" // swagger docs
	"pravaah/internal/handler"
	"pravaah/internal/metrics"
	"pravaah/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Document    *handler.DocumentHandler
	Dashboard   *handler.DashboardHandler
	ReviewQueue *handler.ReviewQueueHandler
	Health      *handler.HealthHandler
}

// Options tune the engine. Metrics may be nil.
type Options struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	EnableSwagger  bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Every route is served with and without a trailing slash.
	post(r, "/process-document", h.Document.Process)
	post(r, "/review-document", h.Document.Review)
	get(r, "/dashboard-data", h.Dashboard.Summary)
	get(r, "/dashboard-data/export", h.Dashboard.Export)
	get(r, "/review-queue", h.ReviewQueue.List)

	return r
}

func post(r *gin.Engine, path string, fn gin.HandlerFunc) {
	r.POST(path, fn)
	r.POST(path+"/", fn)
}

func get(r *gin.Engine, path string, fn gin.HandlerFunc) {
	r.GET(path, fn)
	r.GET(path+"/", fn)
}
