package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sumeru02/Ticketmaster/internal/domain"
)

// EventRepository is the keyed storage backing the event directory.
type EventRepository interface {
	Upsert(ctx context.Context, event domain.Event) error
	Get(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
}

// EventService is the event directory: plain keyed storage for event records.
// It enforces no capacity rules; those live in TicketService.
type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

type UpsertEventInput struct {
	ID          string
	Name        string
	Venue       string
	StartsAt    time.Time
	Capacity    int
	TicketTypes map[string]float64
}

// UpsertEvent creates the event, assigning an identifier when none is given,
// or overwrites the record stored under the supplied identifier.
func (s *EventService) UpsertEvent(ctx context.Context, in UpsertEventInput) (domain.Event, error) {
	if in.Name == "" {
		return domain.Event{}, domain.ErrEventNameRequired
	}
	if in.Venue == "" {
		return domain.Event{}, domain.ErrVenueRequired
	}
	if in.StartsAt.IsZero() {
		return domain.Event{}, domain.ErrEventDateRequired
	}
	if in.Capacity <= 0 {
		return domain.Event{}, domain.ErrInvalidCapacity
	}

	event := domain.Event{
		ID:          in.ID,
		Name:        in.Name,
		Venue:       in.Venue,
		StartsAt:    in.StartsAt,
		Capacity:    in.Capacity,
		TicketTypes: in.TicketTypes,
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.TicketTypes == nil {
		event.TicketTypes = map[string]float64{}
	}

	if err := s.repo.Upsert(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// PatchEvent applies the non-nil fields of patch to an existing event.
func (s *EventService) PatchEvent(ctx context.Context, id string, patch domain.EventPatch) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	if existing == nil {
		return domain.Event{}, domain.ErrEventNotFound
	}

	event := *existing
	if patch.Name != nil {
		event.Name = *patch.Name
	}
	if patch.Venue != nil {
		event.Venue = *patch.Venue
	}
	if patch.StartsAt != nil {
		event.StartsAt = *patch.StartsAt
	}
	if patch.Capacity != nil {
		if *patch.Capacity <= 0 {
			return domain.Event{}, domain.ErrInvalidCapacity
		}
		event.Capacity = *patch.Capacity
	}
	if patch.TicketTypes != nil {
		event.TicketTypes = patch.TicketTypes
	}

	if err := s.repo.Upsert(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// GetEvent returns the event stored under id, or nil when absent.
func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, nil
	}
	return s.repo.Get(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx)
}
