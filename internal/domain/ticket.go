package domain

import (
	"strings"
	"time"
)

// TicketStatus enumerates the two-state ticket lifecycle.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "Open"
	TicketStatusResolved TicketStatus = "Resolved"
)

// TicketUrgency enumerates triage urgency levels.
type TicketUrgency string

const (
	TicketUrgencyCritical TicketUrgency = "Critical"
	TicketUrgencyHigh     TicketUrgency = "High"
	TicketUrgencyMedium   TicketUrgency = "Medium"
	TicketUrgencyLow      TicketUrgency = "Low"
)

// Statuses lists all lifecycle states in presentation order.
func Statuses() []TicketStatus {
	return []TicketStatus{TicketStatusOpen, TicketStatusResolved}
}

// Urgencies lists all urgency levels in descending severity.
func Urgencies() []TicketUrgency {
	return []TicketUrgency{TicketUrgencyCritical, TicketUrgencyHigh, TicketUrgencyMedium, TicketUrgencyLow}
}

// ParseStatus matches a status case-insensitively, returning the canonical value.
func ParseStatus(s string) (TicketStatus, bool) {
	for _, status := range Statuses() {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, true
		}
	}
	return "", false
}

// ParseUrgency matches an urgency case-insensitively, returning the canonical value.
func ParseUrgency(s string) (TicketUrgency, bool) {
	for _, urgency := range Urgencies() {
		if strings.EqualFold(string(urgency), strings.TrimSpace(s)) {
			return urgency, true
		}
	}
	return "", false
}

// Ticket is the aggregate for classified support requests.
type Ticket struct {
	ID              int64
	Name            string
	UserEmail       string
	Description     string
	Category        Category
	Urgency         TicketUrgency
	Status          TicketStatus
	Response        string
	CreatedAt       time.Time
	ResolvedAt      *time.Time
	AssignedTo      *string
	ResolutionNotes *string
}
