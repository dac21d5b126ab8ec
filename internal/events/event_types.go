package events

import (
	"time"

	"github.com/motivity-labs/support-triage/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketDeleted       EventType = "ticket_deleted"
	EventChatTurnRecorded    EventType = "chat_turn_recorded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID  int64                `json:"ticket_id"`
	Category  domain.Category      `json:"category"`
	Urgency   domain.TicketUrgency `json:"urgency"`
	UserEmail string               `json:"user_email"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  int64               `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	TicketID int64 `json:"ticket_id"`
}

// ChatTurnRecordedPayload payload.
type ChatTurnRecordedPayload struct {
	UserID           string   `json:"user_id"`
	SuggestedActions []string `json:"suggested_actions"`
}
