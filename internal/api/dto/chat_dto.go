package dto

import (
	"time"

	"github.com/motivity-labs/support-triage/internal/service"
)

// ChatRequest payload.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ChatResponse carries the bot reply and derived client hints.
type ChatResponse struct {
	Response         string                    `json:"response"`
	SuggestedActions []service.SuggestedAction `json:"suggested_actions"`
}

// ChatTurnResponse is one history entry.
type ChatTurnResponse struct {
	User      string    `json:"user"`
	Bot       string    `json:"bot"`
	CreatedAt time.Time `json:"created_at"`
}
