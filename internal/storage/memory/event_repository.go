package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/sumeru02/Ticketmaster/internal/domain"
)

// EventRepository is the in-memory event directory store: a mutex-guarded
// map keyed by event ID.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]domain.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]domain.Event)}
}

func (r *EventRepository) Upsert(_ context.Context, event domain.Event) error {
	// Copy the price map so callers cannot mutate the stored record.
	event.TicketTypes = maps.Clone(event.TicketTypes)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = event
	return nil
}

func (r *EventRepository) Get(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	event, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	event.TicketTypes = maps.Clone(event.TicketTypes)
	return &event, nil
}

func (r *EventRepository) List(_ context.Context) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]domain.Event, 0, len(r.events))
	for _, event := range r.events {
		event.TicketTypes = maps.Clone(event.TicketTypes)
		events = append(events, event)
	}
	return events, nil
}
