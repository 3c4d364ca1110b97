// Package memory holds the in-process stores backing the ticket ledger and,
// by default, the event directory. Ticket state is deliberately not
// persisted: reservations are short-lived holds and do not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sumeru02/Ticketmaster/internal/domain"
)

// TicketRepository keeps the ticket store and idempotency index in memory.
// Single-key reads and writes are guarded by an RWMutex; the compound
// admission decision in the ticket service runs under a per-event lock
// acquired through WithEventLock.
type TicketRepository struct {
	mu          sync.RWMutex
	tickets     map[string]domain.Ticket
	idempotency map[string]string // scoped idempotency key -> ticket ID

	lockMu     sync.Mutex
	eventLocks map[string]*sync.Mutex
}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{
		tickets:     make(map[string]domain.Ticket),
		idempotency: make(map[string]string),
		eventLocks:  make(map[string]*sync.Mutex),
	}
}

// WithEventLock runs fn while holding the lock owned by eventID. Locks are
// created on first use and kept for the life of the repository.
func (r *TicketRepository) WithEventLock(ctx context.Context, eventID string, fn func(ctx context.Context) error) error {
	lock := r.eventLock(eventID)
	lock.Lock()
	defer lock.Unlock()
	return fn(ctx)
}

func (r *TicketRepository) eventLock(eventID string) *sync.Mutex {
	r.lockMu.Lock()
	defer r.lockMu.Unlock()
	lock, ok := r.eventLocks[eventID]
	if !ok {
		lock = &sync.Mutex{}
		r.eventLocks[eventID] = lock
	}
	return lock
}

// Get returns a copy of the ticket stored under ticketID, or nil when absent.
func (r *TicketRepository) Get(_ context.Context, ticketID string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return nil, nil
	}
	return &ticket, nil
}

// FindByIdempotencyKey returns the ticket bound to key, or nil when the key
// was never used. Bindings are never removed; expiry is the caller's concern.
func (r *TicketRepository) FindByIdempotencyKey(_ context.Context, key string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ticketID, ok := r.idempotency[key]
	if !ok {
		return nil, nil
	}
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return nil, nil
	}
	return &ticket, nil
}

// CountActive counts the event's tickets that consume capacity: every ticket
// that is not cancelled and not expired as of now.
func (r *TicketRepository) CountActive(_ context.Context, eventID string, now time.Time, ttl time.Duration) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, ticket := range r.tickets {
		if ticket.EventID != eventID {
			continue
		}
		if ticket.Status == domain.TicketStatusCancelled {
			continue
		}
		if ticket.Expired(now, ttl) {
			continue
		}
		count++
	}
	return count, nil
}

// HasActiveReservation reports whether userID holds a live reservation for
// the event.
func (r *TicketRepository) HasActiveReservation(_ context.Context, eventID, userID string, now time.Time, ttl time.Duration) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ticket := range r.tickets {
		if ticket.EventID != eventID || ticket.UserID != userID {
			continue
		}
		if ticket.Status != domain.TicketStatusReserved {
			continue
		}
		if ticket.Expired(now, ttl) {
			continue
		}
		return true, nil
	}
	return false, nil
}

// Create stores the ticket and binds it to idempotencyKey. Rebinding a key
// whose previous ticket expired is allowed and points the key at the new
// ticket.
func (r *TicketRepository) Create(_ context.Context, ticket domain.Ticket, idempotencyKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[ticket.ID] = ticket
	if idempotencyKey != "" {
		r.idempotency[idempotencyKey] = ticket.ID
	}
	return nil
}

// UpdateStatus mutates the stored ticket's status in place.
func (r *TicketRepository) UpdateStatus(_ context.Context, ticketID string, status domain.TicketStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return domain.ErrTicketNotFound
	}
	ticket.Status = status
	r.tickets[ticketID] = ticket
	return nil
}
