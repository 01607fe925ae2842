package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartquiz/smartquiz-backend/internal/response"
	"github.com/smartquiz/smartquiz-backend/internal/service"
)

// SystemHandler serves health and metrics endpoints.
type SystemHandler struct {
	infraService *service.InfraService
}

// NewSystemHandler creates a SystemHandler.
func NewSystemHandler(infraService *service.InfraService) *SystemHandler {
	return &SystemHandler{infraService: infraService}
}

// Health handles GET /health. Unhealthy states still return the full
// detail map so operators can see which check failed.
func (h *SystemHandler) Health(c *gin.Context) {
	health := h.infraService.HealthCheck(c.Request.Context())

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	response.Success(c, status, health)
}

// Metrics handles GET /api/v1/metrics.
func (h *SystemHandler) Metrics(c *gin.Context) {
	response.Success(c, http.StatusOK, h.infraService.Metrics())
}
