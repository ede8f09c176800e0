package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportflow/opsdash/internal/service"
	apperrors "github.com/supportflow/opsdash/pkg/util"
)

// MetricsHandler serves the dashboard aggregate.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Get GET /api/metrics.
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	snapshot, err := h.metrics.Snapshot(c.UserContext())
	if err != nil {
		return apperrors.NewInternal("Failed to fetch metrics", err)
	}
	return c.JSON(snapshot)
}
