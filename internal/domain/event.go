package domain

import "time"

// Event represents a concert event with a fixed ticket capacity.
type Event struct {
	ID       string
	Name     string
	Venue    string
	StartsAt time.Time
	Capacity int
	// TicketTypes maps a ticket tier name to its price (e.g. "VIP": 120.00).
	TicketTypes map[string]float64
}

// EventPatch carries the optional fields of a partial event update.
// Nil fields are left untouched.
type EventPatch struct {
	Name        *string
	Venue       *string
	StartsAt    *time.Time
	Capacity    *int
	TicketTypes map[string]float64
}
