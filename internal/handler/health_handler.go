package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"pravaah/internal/port"
)

const readinessTimeout = 3 * time.Second

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	deps map[string]port.Pinger
}

// NewHealthHandler creates a new HealthHandler. deps are the backends
// checked by the readiness probe, keyed by name.
func NewHealthHandler(deps map[string]port.Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			checks[name] = "unreachable"
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
