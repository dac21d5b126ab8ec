package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motivity-labs/support-triage/internal/domain"
)

// MetadataHandler exposes the active enumerations for client-side forms.
type MetadataHandler struct {
	profile domain.CategoryProfile
}

// NewMetadataHandler constructs handler.
func NewMetadataHandler(profile domain.CategoryProfile) *MetadataHandler {
	return &MetadataHandler{profile: profile}
}

var urgencyDescriptions = map[domain.TicketUrgency]string{
	domain.TicketUrgencyCritical: "Total outage, data breach, or no core action possible",
	domain.TicketUrgencyHigh:     "Critical feature broken, security issue, or payment failure",
	domain.TicketUrgencyMedium:   "Partial disruption with a workaround",
	domain.TicketUrgencyLow:      "Cosmetic bugs and non-urgent requests",
}

var statusDescriptions = map[domain.TicketStatus]string{
	domain.TicketStatusOpen:     "Awaiting resolution",
	domain.TicketStatusResolved: "Resolution delivered",
}

// GetMetadata GET /api/metadata.
func (h *MetadataHandler) GetMetadata(c *fiber.Ctx) error {
	categories := make([]fiber.Map, 0, len(h.profile.Categories))
	for _, info := range h.profile.Categories {
		categories = append(categories, fiber.Map{
			"value":       info.Value,
			"label":       info.Value,
			"description": info.Description,
		})
	}
	urgencies := make([]fiber.Map, 0, 4)
	for _, urgency := range domain.Urgencies() {
		urgencies = append(urgencies, fiber.Map{
			"value":       urgency,
			"label":       urgency,
			"description": urgencyDescriptions[urgency],
		})
	}
	statuses := make([]fiber.Map, 0, 2)
	for _, status := range domain.Statuses() {
		statuses = append(statuses, fiber.Map{
			"value":       status,
			"label":       status,
			"description": statusDescriptions[status],
		})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"category_profile": h.profile.Name,
		"categories":       categories,
		"urgencies":        urgencies,
		"statuses":         statuses,
	}})
}
