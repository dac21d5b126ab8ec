package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/motivity-labs/support-triage/internal/domain"
	"github.com/motivity-labs/support-triage/internal/enrich"
	"github.com/motivity-labs/support-triage/internal/events"
	"github.com/motivity-labs/support-triage/internal/store"
	apperrors "github.com/motivity-labs/support-triage/pkg/util"
)

// TriageService coordinates ticket intake, lookup and lifecycle updates.
type TriageService struct {
	pipeline   *enrich.Pipeline
	tickets    *store.TicketStore
	dispatcher events.Dispatcher
}

// TriageDependencies bundles collaborators for the triage service.
type TriageDependencies struct {
	Pipeline   *enrich.Pipeline
	TicketRepo *store.TicketStore
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Name        string
	UserEmail   string
	Description string
	Image       *enrich.Image
}

// StatusUpdateInput describes a status change request.
type StatusUpdateInput struct {
	Status          string
	AssignedTo      *string
	ResolutionNotes *string
}

// TicketFilterInput carries raw filter criteria from the transport layer.
type TicketFilterInput struct {
	Status   string
	Category string
	FromDate string
	ToDate   string
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	return &TriageService{
		pipeline:   deps.Pipeline,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket enriches the description and stores the resulting ticket.
// Enrichment failures leave the store untouched.
func (s *TriageService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.UserEmail)
	description := strings.TrimSpace(input.Description)
	if name == "" || email == "" || description == "" {
		return nil, apperrors.NewValidationError("name, description, user_email required", nil)
	}

	enrichment, err := s.pipeline.Enrich(ctx, description, input.Image)
	if err != nil {
		return nil, err
	}

	ticket := s.tickets.Insert(domain.Ticket{
		Name:        name,
		UserEmail:   email,
		Description: enrichment.Description,
		Category:    enrichment.Category,
		Urgency:     enrichment.Urgency,
		Status:      domain.TicketStatusOpen,
		Response:    enrichment.Response,
	})

	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID:  ticket.ID,
			Category:  ticket.Category,
			Urgency:   ticket.Urgency,
			UserEmail: ticket.UserEmail,
		},
	})
	return &ticket, nil
}

// GetTicket fetches one ticket by id.
func (s *TriageService) GetTicket(id int64) (domain.Ticket, error) {
	return s.tickets.Get(id)
}

// ListTickets returns all tickets in insertion order.
func (s *TriageService) ListTickets() []domain.Ticket {
	return s.tickets.List()
}

// FilterTickets applies the supplied criteria. Unparsable dates are a hard
// validation error, never a silently ignored filter.
func (s *TriageService) FilterTickets(input TicketFilterInput) ([]domain.Ticket, error) {
	query := store.FilterQuery{
		Status:   strings.TrimSpace(input.Status),
		Category: strings.TrimSpace(input.Category),
	}

	if raw := strings.TrimSpace(input.FromDate); raw != "" {
		from, _, err := parseFilterDate(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid from_date", map[string]any{"from_date": raw})
		}
		query.From = &from
	}
	if raw := strings.TrimSpace(input.ToDate); raw != "" {
		to, dateOnly, err := parseFilterDate(raw)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid to_date", map[string]any{"to_date": raw})
		}
		if dateOnly {
			// a bare date upper bound covers the whole day
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		query.To = &to
	}

	return s.tickets.Filter(query), nil
}

// UpdateStatus replaces the status of one ticket.
func (s *TriageService) UpdateStatus(ctx context.Context, id int64, input StatusUpdateInput) (domain.Ticket, error) {
	status, ok := domain.ParseStatus(input.Status)
	if !ok {
		return domain.Ticket{}, apperrors.NewValidationError("status must be one of Open, Resolved",
			map[string]any{"status": input.Status})
	}

	before, err := s.tickets.Get(id)
	if err != nil {
		return domain.Ticket{}, err
	}

	updated, err := s.tickets.UpdateStatus(id, status, store.StatusUpdate{
		AssignedTo:      input.AssignedTo,
		ResolutionNotes: input.ResolutionNotes,
	})
	if err != nil {
		return domain.Ticket{}, err
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketStatusChanged,
		Payload: events.TicketStatusChangedPayload{
			TicketID:  updated.ID,
			OldStatus: before.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// DeleteTicket removes one ticket by id.
func (s *TriageService) DeleteTicket(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(id); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketDeleted,
		Payload: events.TicketDeletedPayload{TicketID: id},
	})
	return nil
}

func (s *TriageService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// parseFilterDate accepts RFC3339 timestamps or bare ISO dates. The bool
// result reports the bare-date form.
func parseFilterDate(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
