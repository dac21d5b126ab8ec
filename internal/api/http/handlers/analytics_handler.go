package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/motivity-labs/support-triage/internal/analytics"
)

// AnalyticsHandler serves the aggregate snapshot.
type AnalyticsHandler struct {
	aggregator *analytics.Aggregator
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(aggregator *analytics.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{aggregator: aggregator}
}

// GetAnalytics GET /analytics. Computed fresh from the store on every call.
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.aggregator.Compute(time.Now())})
}
