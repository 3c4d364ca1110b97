package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sumeru02/Ticketmaster/internal/clock"
	"github.com/sumeru02/Ticketmaster/internal/domain"
)

// EventDirectory is the read-only view of the event directory the ledger
// consults for event existence and capacity.
type EventDirectory interface {
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
}

// TicketRepository is the ticket store and idempotency index owned by the
// ledger. WithEventLock runs fn under a lock exclusive to one event; the
// whole admission decision for a reservation executes inside it so two
// concurrent reservations cannot jointly exceed capacity.
type TicketRepository interface {
	WithEventLock(ctx context.Context, eventID string, fn func(ctx context.Context) error) error
	Get(ctx context.Context, ticketID string) (*domain.Ticket, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Ticket, error)
	CountActive(ctx context.Context, eventID string, now time.Time, ttl time.Duration) (int, error)
	HasActiveReservation(ctx context.Context, eventID, userID string, now time.Time, ttl time.Duration) (bool, error)
	Create(ctx context.Context, ticket domain.Ticket, idempotencyKey string) error
	UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error
}

// TicketService is the reservation ledger: it serializes admission decisions
// against each event's capacity and drives tickets through
// reserved -> purchased/cancelled.
type TicketService struct {
	events  EventDirectory
	repo    TicketRepository
	payment PaymentProcessor
	clock   clock.Clock
	ttl     time.Duration
}

const defaultReservationTTL = 10 * time.Minute

func NewTicketService(events EventDirectory, repo TicketRepository, payment PaymentProcessor, clk clock.Clock, opts ...TicketServiceOption) *TicketService {
	svc := &TicketService{
		events:  events,
		repo:    repo,
		payment: payment,
		clock:   clk,
		ttl:     defaultReservationTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type TicketServiceOption func(*TicketService)

// WithReservationTTL overrides the default hold window for new reservations.
func WithReservationTTL(d time.Duration) TicketServiceOption {
	return func(s *TicketService) {
		if d > 0 {
			s.ttl = d
		}
	}
}

type ReserveTicketInput struct {
	EventID        string
	UserID         string
	IdempotencyKey string
}

// ReservationResult pairs a reserve outcome with the ticket it refers to.
// Ticket is set on success and on an idempotency-key replay; a per-user
// duplicate carries no ticket.
type ReservationResult struct {
	Status domain.ReservationStatus
	Ticket *domain.Ticket
}

// ReserveTicket attempts to hold one unit of the event's capacity for the
// user. An empty idempotency key or user id is a caller bug and is returned
// as an error rather than a business status.
func (s *TicketService) ReserveTicket(ctx context.Context, in ReserveTicketInput) (ReservationResult, error) {
	if in.IdempotencyKey == "" {
		return ReservationResult{}, domain.ErrIdempotencyKeyRequired
	}
	if in.UserID == "" {
		return ReservationResult{}, domain.ErrUserIDRequired
	}

	key := reserveKey(in.IdempotencyKey)
	now := s.clock.Now()
	var result ReservationResult

	err := s.repo.WithEventLock(ctx, in.EventID, func(ctx context.Context) error {
		existing, err := s.repo.FindByIdempotencyKey(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil && !existing.Expired(now, s.ttl) {
			result = ReservationResult{Status: domain.ReservationDuplicateRequest, Ticket: existing}
			return nil
		}

		event, err := s.events.GetEvent(ctx, in.EventID)
		if err != nil {
			return err
		}
		if event == nil {
			result = ReservationResult{Status: domain.ReservationEventNotFound}
			return nil
		}

		active, err := s.repo.CountActive(ctx, in.EventID, now, s.ttl)
		if err != nil {
			return err
		}
		if active >= event.Capacity {
			result = ReservationResult{Status: domain.ReservationCapacityFull}
			return nil
		}

		held, err := s.repo.HasActiveReservation(ctx, in.EventID, in.UserID, now, s.ttl)
		if err != nil {
			return err
		}
		if held {
			result = ReservationResult{Status: domain.ReservationDuplicateRequest}
			return nil
		}

		ticket := domain.Ticket{
			ID:         uuid.NewString(),
			EventID:    in.EventID,
			UserID:     in.UserID,
			Status:     domain.TicketStatusReserved,
			ReservedAt: now,
		}
		if err := s.repo.Create(ctx, ticket, key); err != nil {
			return err
		}
		result = ReservationResult{Status: domain.ReservationSuccess, Ticket: &ticket}
		return nil
	})
	if err != nil {
		return ReservationResult{}, err
	}

	reservationsTotal.WithLabelValues(string(result.Status)).Inc()
	return result, nil
}

// PurchaseResult pairs a purchase outcome with the ticket it refers to.
// Ticket is set on success and on an idempotent repeat purchase.
type PurchaseResult struct {
	Status domain.PurchaseStatus
	Ticket *domain.Ticket
}

// PurchaseTicket completes a reservation. Ownership is checked before state,
// so a caller who does not own the ticket learns nothing about its status.
func (s *TicketService) PurchaseTicket(ctx context.Context, ticketID, userID string) (PurchaseResult, error) {
	if userID == "" {
		return PurchaseResult{}, domain.ErrUserIDRequired
	}

	result := PurchaseResult{Status: domain.PurchaseTicketNotFound}

	ticket, err := s.repo.Get(ctx, ticketID)
	if err != nil {
		return PurchaseResult{}, err
	}
	if ticket != nil {
		err = s.repo.WithEventLock(ctx, ticket.EventID, func(ctx context.Context) error {
			current, err := s.repo.Get(ctx, ticketID)
			if err != nil {
				return err
			}
			now := s.clock.Now()
			switch {
			case current == nil || current.Expired(now, s.ttl):
				result = PurchaseResult{Status: domain.PurchaseTicketNotFound}
			case current.UserID != userID:
				result = PurchaseResult{Status: domain.PurchaseNotAuthorized}
			case current.Status == domain.TicketStatusPurchased:
				result = PurchaseResult{Status: domain.PurchaseAlreadyPurchased, Ticket: current}
			case current.Status != domain.TicketStatusReserved:
				result = PurchaseResult{Status: domain.PurchaseNotReserved}
			default:
				if err := s.payment.Authorize(ctx, *current); err != nil {
					result = PurchaseResult{Status: domain.PurchasePaymentFailed}
					return nil
				}
				if err := s.repo.UpdateStatus(ctx, ticketID, domain.TicketStatusPurchased); err != nil {
					return err
				}
				updated := *current
				updated.Status = domain.TicketStatusPurchased
				result = PurchaseResult{Status: domain.PurchaseSuccess, Ticket: &updated}
			}
			return nil
		})
		if err != nil {
			return PurchaseResult{}, err
		}
	}

	purchasesTotal.WithLabelValues(string(result.Status)).Inc()
	return result, nil
}

// CancelTicket releases a reservation. Every ineligible case (absent,
// expired, not reserved, not owned by userID) returns ErrTicketNotFound so
// callers cannot probe for existence or ownership.
func (s *TicketService) CancelTicket(ctx context.Context, ticketID, userID string) (*domain.Ticket, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}

	ticket, err := s.repo.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrTicketNotFound
	}

	var cancelled *domain.Ticket
	err = s.repo.WithEventLock(ctx, ticket.EventID, func(ctx context.Context) error {
		current, err := s.repo.Get(ctx, ticketID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if current == nil ||
			current.Status != domain.TicketStatusReserved ||
			current.Expired(now, s.ttl) ||
			current.UserID != userID {
			return domain.ErrTicketNotFound
		}
		if err := s.repo.UpdateStatus(ctx, ticketID, domain.TicketStatusCancelled); err != nil {
			return err
		}
		updated := *current
		updated.Status = domain.TicketStatusCancelled
		cancelled = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	cancellationsTotal.Inc()
	return cancelled, nil
}

// GetAvailableTickets returns the event's remaining capacity, counting every
// non-cancelled, non-expired ticket as taken. Unknown events report zero.
func (s *TicketService) GetAvailableTickets(ctx context.Context, eventID string) (int, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}
	if event == nil {
		return 0, nil
	}

	active, err := s.repo.CountActive(ctx, eventID, s.clock.Now(), s.ttl)
	if err != nil {
		return 0, err
	}
	return event.Capacity - active, nil
}

// reserveKey scopes an idempotency key to the reserve operation.
func reserveKey(key string) string {
	return "reserve:" + key
}
