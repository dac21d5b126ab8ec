package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motivity-labs/support-triage/internal/api/dto"
	"github.com/motivity-labs/support-triage/internal/service"
	apperrors "github.com/motivity-labs/support-triage/pkg/util"
)

// ChatHandler manages conversational support endpoints.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{service: chatService}
}

// PostMessage POST /chat.
func (h *ChatHandler) PostMessage(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.service.RecordTurn(c.UserContext(), req.UserID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ChatResponse{
		Response:         result.Response,
		SuggestedActions: result.SuggestedActions,
	}})
}

// GetHistory GET /chat/:user_id/history.
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	turns := h.service.History(c.Params("user_id"))
	items := make([]dto.ChatTurnResponse, 0, len(turns))
	for _, turn := range turns {
		items = append(items, dto.ChatTurnResponse{
			User:      turn.User,
			Bot:       turn.Bot,
			CreatedAt: turn.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
