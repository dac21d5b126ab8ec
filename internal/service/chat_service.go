package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/motivity-labs/support-triage/internal/domain"
	"github.com/motivity-labs/support-triage/internal/events"
	"github.com/motivity-labs/support-triage/internal/llm"
	"github.com/motivity-labs/support-triage/internal/prompt"
	"github.com/motivity-labs/support-triage/internal/store"
	apperrors "github.com/motivity-labs/support-triage/pkg/util"
)

// SuggestedAction is a client hint derived from the user message.
type SuggestedAction struct {
	Action string `json:"action"`
	Label  string `json:"label"`
}

// ChatResult is the outcome of one recorded chat turn.
type ChatResult struct {
	Response         string
	SuggestedActions []SuggestedAction
}

// ChatService answers user questions with the chat prompt and tracks
// per-user session history.
type ChatService struct {
	catalog    *prompt.Catalog
	completer  llm.Completer
	sessions   *store.SessionTracker
	dispatcher events.Dispatcher
}

// ChatDependencies bundles collaborators for the chat service.
type ChatDependencies struct {
	Catalog    *prompt.Catalog
	Completer  llm.Completer
	Sessions   *store.SessionTracker
	Dispatcher events.Dispatcher
}

// NewChatService constructs the service.
func NewChatService(deps ChatDependencies) *ChatService {
	return &ChatService{
		catalog:    deps.Catalog,
		completer:  deps.Completer,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
	}
}

// RecordTurn answers the message and appends the exchange to the user's
// session log. A failed completion records nothing.
func (c *ChatService) RecordTurn(ctx context.Context, userID, message string) (*ChatResult, error) {
	userID = strings.TrimSpace(userID)
	message = strings.TrimSpace(message)
	if userID == "" || message == "" {
		return nil, apperrors.NewValidationError("user_id and message required", nil)
	}

	raw, err := c.completer.Complete(ctx, c.catalog.Chat(message))
	if err != nil {
		return nil, err
	}
	response := strings.TrimSpace(raw)

	c.sessions.Append(userID, domain.ChatTurn{
		User:      message,
		Bot:       response,
		CreatedAt: time.Now(),
	})

	result := &ChatResult{
		Response:         response,
		SuggestedActions: suggestActions(message),
	}

	if c.dispatcher != nil {
		actions := make([]string, 0, len(result.SuggestedActions))
		for _, a := range result.SuggestedActions {
			actions = append(actions, a.Action)
		}
		_ = c.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventChatTurnRecorded,
			Timestamp: time.Now(),
			Payload: events.ChatTurnRecordedPayload{
				UserID:           userID,
				SuggestedActions: actions,
			},
		})
	}
	return result, nil
}

// History returns the ordered session log; unknown users get an empty log.
func (c *ChatService) History(userID string) []domain.ChatTurn {
	return c.sessions.History(userID)
}

// suggestActions runs independent keyword checks over the lower-cased
// message; more than one suggestion may fire.
func suggestActions(message string) []SuggestedAction {
	lowered := strings.ToLower(message)
	actions := make([]SuggestedAction, 0, 2)
	if strings.Contains(lowered, "ticket") || strings.Contains(lowered, "support") {
		actions = append(actions, SuggestedAction{Action: "create_ticket", Label: "Create a support ticket"})
	}
	if strings.Contains(lowered, "documentation") {
		actions = append(actions, SuggestedAction{Action: "view_documentation", Label: "View documentation"})
	}
	return actions
}
