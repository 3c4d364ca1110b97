package app

import (
	"context"

	"github.com/sumeru02/Ticketmaster/internal/domain"
)

// PaymentProcessor authorizes payment for a ticket purchase. A failed
// authorization leaves the ticket reserved.
type PaymentProcessor interface {
	Authorize(ctx context.Context, ticket domain.Ticket) error
}

// AutoApprovePayments approves every charge. It stands in until a real
// payment integration exists.
type AutoApprovePayments struct{}

func (AutoApprovePayments) Authorize(context.Context, domain.Ticket) error {
	return nil
}
