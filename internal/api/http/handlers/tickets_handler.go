package handlers

import (
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/motivity-labs/support-triage/internal/api/dto"
	"github.com/motivity-labs/support-triage/internal/domain"
	"github.com/motivity-labs/support-triage/internal/enrich"
	"github.com/motivity-labs/support-triage/internal/service"
	apperrors "github.com/motivity-labs/support-triage/pkg/util"
)

// TicketsHandler manages ticket intake and lifecycle endpoints.
type TicketsHandler struct {
	service *service.TriageService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(triageService *service.TriageService) *TicketsHandler {
	return &TicketsHandler{service: triageService}
}

// CreateTicket POST /tickets. Accepts JSON or multipart with an optional
// image attachment.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	input, err := parseCreateInput(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(*ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": ticketResponses(h.service.ListTickets())})
}

// FilterTickets GET /tickets/filtered.
func (h *TicketsHandler) FilterTickets(c *fiber.Ctx) error {
	tickets, err := h.service.FilterTickets(service.TicketFilterInput{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		FromDate: c.Query("from_date"),
		ToDate:   c.Query("to_date"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponses(tickets)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PUT /tickets/:id. Only the status (plus optional assignment
// metadata) may change after creation.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateStatus(c.UserContext(), id, service.StatusUpdateInput{
		Status:          req.Status,
		AssignedTo:      req.AssignedTo,
		ResolutionNotes: req.ResolutionNotes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id, err := parseTicketID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteTicket(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true, "id": id}})
}

func parseCreateInput(c *fiber.Ctx) (service.TicketCreateInput, error) {
	contentType := string(c.Request().Header.ContentType())
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		input := service.TicketCreateInput{
			Name:        c.FormValue("name"),
			Description: c.FormValue("description"),
			UserEmail:   c.FormValue("user_email"),
		}
		file, err := c.FormFile("image")
		if err != nil {
			// no attachment; text-only intake
			return input, nil
		}
		reader, err := file.Open()
		if err != nil {
			return input, apperrors.NewValidationError("unreadable image attachment", nil)
		}
		defer reader.Close()
		data, err := io.ReadAll(reader)
		if err != nil {
			return input, apperrors.NewValidationError("unreadable image attachment", nil)
		}
		mimeType := file.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "image/png"
		}
		input.Image = &enrich.Image{Data: data, MimeType: mimeType}
		return input, nil
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return service.TicketCreateInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	return service.TicketCreateInput{
		Name:        req.Name,
		Description: req.Description,
		UserEmail:   req.UserEmail,
	}, nil
}

func parseTicketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("id must be an integer", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}

func ticketResponse(ticket domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:              ticket.ID,
		Name:            ticket.Name,
		UserEmail:       ticket.UserEmail,
		Description:     ticket.Description,
		Category:        ticket.Category,
		Urgency:         ticket.Urgency,
		Status:          ticket.Status,
		Response:        ticket.Response,
		CreatedAt:       ticket.CreatedAt,
		ResolvedAt:      ticket.ResolvedAt,
		AssignedTo:      ticket.AssignedTo,
		ResolutionNotes: ticket.ResolutionNotes,
	}
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(tickets[i]))
	}
	return items
}
