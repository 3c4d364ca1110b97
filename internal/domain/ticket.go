package domain

import "time"

type TicketStatus string

const (
	TicketStatusReserved  TicketStatus = "reserved"
	TicketStatusPurchased TicketStatus = "purchased"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// Ticket represents one unit of event capacity held or owned by a user.
// ID, EventID, and UserID never change after creation; only Status does.
type Ticket struct {
	ID         string
	EventID    string
	UserID     string
	Status     TicketStatus
	ReservedAt time.Time
}

// Expired reports whether an unpurchased reservation has outlived its hold
// window. Purchased and cancelled tickets never expire.
func (t Ticket) Expired(now time.Time, ttl time.Duration) bool {
	return t.Status == TicketStatusReserved && now.Sub(t.ReservedAt) > ttl
}
