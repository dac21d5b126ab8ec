package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName   string
	version       string
	llmConfigured bool
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, llmConfigured bool) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, llmConfigured: llmConfigured}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness. State is process memory, so the only dependency
// worth reporting is the completion backend configuration.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	deps := fiber.Map{"completion_backend": "configured"}
	if !h.llmConfigured {
		deps["completion_backend"] = "missing api key"
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": deps,
	})
}
