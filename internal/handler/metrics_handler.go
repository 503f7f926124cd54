package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/radio-cms-api/internal/service"
	"github.com/noah-isme/radio-cms-api/pkg/response"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	checks  map[string]func() error
}

// NewMetricsHandler constructs a metrics handler. checks are run by Health,
// keyed by dependency name.
func NewMetricsHandler(metrics *service.MetricsService, checks map[string]func() error) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, checks: checks}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Snapshot godoc
// @Summary Runtime metrics
// @Tags Observability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/metrics [get]
func (h *MetricsHandler) Snapshot(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}

// Health reports "ok" when every dependency check passes and 503 otherwise.
func (h *MetricsHandler) Health(c *gin.Context) {
	status := http.StatusOK
	report := gin.H{}
	for name, check := range h.checks {
		if err := check(); err != nil {
			status = http.StatusServiceUnavailable
			report[name] = err.Error()
			continue
		}
		report[name] = "ok"
	}
	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": report})
}
