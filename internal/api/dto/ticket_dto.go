package dto

import (
	"time"

	"github.com/motivity-labs/support-triage/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UserEmail   string `json:"user_email"`
}

// UpdateTicketRequest payload.
type UpdateTicketRequest struct {
	Status          string  `json:"status"`
	AssignedTo      *string `json:"assigned_to,omitempty"`
	ResolutionNotes *string `json:"resolution_notes,omitempty"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID              int64                `json:"id"`
	Name            string               `json:"name"`
	UserEmail       string               `json:"user_email"`
	Description     string               `json:"description"`
	Category        domain.Category      `json:"category"`
	Urgency         domain.TicketUrgency `json:"urgency"`
	Status          domain.TicketStatus  `json:"status"`
	Response        string               `json:"response"`
	CreatedAt       time.Time            `json:"created_at"`
	ResolvedAt      *time.Time           `json:"resolved_at,omitempty"`
	AssignedTo      *string              `json:"assigned_to,omitempty"`
	ResolutionNotes *string              `json:"resolution_notes,omitempty"`
}
