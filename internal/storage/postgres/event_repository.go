// Package postgres backs the event directory with a database when the API is
// configured with one. Ticket state never lives here; reservations are
// process-local holds.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sumeru02/Ticketmaster/internal/domain"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Upsert(ctx context.Context, event domain.Event) error {
	ticketTypes, err := json.Marshal(event.TicketTypes)
	if err != nil {
		return fmt.Errorf("encode ticket types: %w", err)
	}

	const stmt = `
INSERT INTO events (id, name, venue, starts_at, capacity, ticket_types)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	venue = EXCLUDED.venue,
	starts_at = EXCLUDED.starts_at,
	capacity = EXCLUDED.capacity,
	ticket_types = EXCLUDED.ticket_types`
	if _, err := r.pool.Exec(ctx, stmt,
		event.ID, event.Name, event.Venue, event.StartsAt, event.Capacity, ticketTypes,
	); err != nil {
		return fmt.Errorf("upsert event: %w", err)
	}
	return nil
}

func (r *EventRepository) Get(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
SELECT id, name, venue, starts_at, capacity, ticket_types
FROM events
WHERE id = $1`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `
SELECT id, name, venue, starts_at, capacity, ticket_types
FROM events
ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var event domain.Event
	var ticketTypes []byte
	if err := row.Scan(
		&event.ID, &event.Name, &event.Venue, &event.StartsAt, &event.Capacity, &ticketTypes,
	); err != nil {
		return domain.Event{}, err
	}
	if err := json.Unmarshal(ticketTypes, &event.TicketTypes); err != nil {
		return domain.Event{}, fmt.Errorf("decode ticket types: %w", err)
	}
	return event, nil
}
