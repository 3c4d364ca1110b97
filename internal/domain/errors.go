package domain

import "errors"

var (
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrUserIDRequired         = errors.New("user id required")
	ErrEventNameRequired      = errors.New("event name required")
	ErrVenueRequired          = errors.New("venue required")
	ErrEventDateRequired      = errors.New("event date required")
	ErrInvalidCapacity        = errors.New("invalid capacity")
	ErrInvalidID              = errors.New("invalid id")
	ErrEventNotFound          = errors.New("event not found")

	// ErrTicketNotFound covers every ineligible cancellation: absent ticket,
	// expired or non-reserved ticket, and a ticket owned by someone else.
	// Callers cannot tell these apart.
	ErrTicketNotFound = errors.New("ticket not found")
)
