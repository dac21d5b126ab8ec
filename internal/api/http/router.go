package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motivity-labs/support-triage/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Tickets   *handlers.TicketsHandler
	Chat      *handlers.ChatHandler
	Analytics *handlers.AnalyticsHandler
	Metadata  *handlers.MetadataHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/filtered", cfg.Tickets.FilterTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)

	chat := app.Group("/chat")
	chat.Post("/", cfg.Chat.PostMessage)
	chat.Get("/:user_id/history", cfg.Chat.GetHistory)

	app.Get("/analytics", cfg.Analytics.GetAnalytics)
	app.Get("/api/metadata", cfg.Metadata.GetMetadata)
}
