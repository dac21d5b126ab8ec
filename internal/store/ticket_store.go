package store

import (
	"strings"
	"sync"
	"time"

	"github.com/motivity-labs/support-triage/internal/domain"
	apperrors "github.com/motivity-labs/support-triage/pkg/util"
)

// FilterQuery composes optional criteria with logical AND. Status and
// category match case-insensitively; the date bounds are inclusive.
type FilterQuery struct {
	Status   string
	Category string
	From     *time.Time
	To       *time.Time
}

// StatusUpdate carries optional metadata accepted alongside a status change.
type StatusUpdate struct {
	AssignedTo      *string
	ResolutionNotes *string
}

// TicketStore owns all ticket records for the process lifetime. A single
// mutex serializes every mutation; ids come from a monotonic counter that
// is independent of the current size, so deletions never cause reuse and
// concurrent inserts never collide.
type TicketStore struct {
	mu                 sync.RWMutex
	nextID             int64
	tickets            []domain.Ticket
	enforceTransitions bool
}

// NewTicketStore constructs an empty store. When enforceTransitions is set,
// only Open→Resolved and Resolved→Open (explicit reopen) are accepted.
func NewTicketStore(enforceTransitions bool) *TicketStore {
	return &TicketStore{enforceTransitions: enforceTransitions}
}

// Insert assigns the next id, stamps CreatedAt when unset and appends the
// ticket in insertion order.
func (s *TicketStore) Insert(t domain.Ticket) domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	t.ID = s.nextID
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	s.tickets = append(s.tickets, t)
	return t
}

// Get returns the ticket by id.
func (s *TicketStore) Get(id int64) (domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.tickets {
		if s.tickets[i].ID == id {
			return s.tickets[i], nil
		}
	}
	return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

// UpdateStatus replaces only the status field (plus optional assignment
// metadata). The transition to Resolved captures ResolvedAt when it is not
// already set; reopening clears it.
func (s *TicketStore) UpdateStatus(id int64, status domain.TicketStatus, update StatusUpdate) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tickets {
		if s.tickets[i].ID != id {
			continue
		}
		if s.enforceTransitions && s.tickets[i].Status == status {
			return domain.Ticket{}, apperrors.NewValidationError("status transition not allowed",
				map[string]any{"from": s.tickets[i].Status, "to": status})
		}
		switch status {
		case domain.TicketStatusResolved:
			if s.tickets[i].ResolvedAt == nil {
				now := time.Now()
				s.tickets[i].ResolvedAt = &now
			}
		case domain.TicketStatusOpen:
			s.tickets[i].ResolvedAt = nil
		}
		s.tickets[i].Status = status
		if update.AssignedTo != nil {
			s.tickets[i].AssignedTo = update.AssignedTo
		}
		if update.ResolutionNotes != nil {
			s.tickets[i].ResolutionNotes = update.ResolutionNotes
		}
		return s.tickets[i], nil
	}
	return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

// Delete removes the ticket by id. Remaining entries keep their ids and the
// freed id is never reassigned.
func (s *TicketStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tickets {
		if s.tickets[i].ID == id {
			s.tickets = append(s.tickets[:i], s.tickets[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

// List returns a snapshot of all tickets in insertion order.
func (s *TicketStore) List() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// Filter returns tickets matching every supplied criterion, in insertion
// order. Absent criteria impose no constraint.
func (s *TicketStore) Filter(q FilterQuery) []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Ticket, 0)
	for i := range s.tickets {
		t := &s.tickets[i]
		if q.Status != "" && !strings.EqualFold(string(t.Status), q.Status) {
			continue
		}
		if q.Category != "" && !strings.EqualFold(string(t.Category), q.Category) {
			continue
		}
		if q.From != nil && t.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && t.CreatedAt.After(*q.To) {
			continue
		}
		out = append(out, *t)
	}
	return out
}
