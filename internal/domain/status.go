package domain

// ReservationStatus is the closed set of outcomes a reservation attempt can
// produce. Business failures are statuses, not errors.
type ReservationStatus string

const (
	ReservationSuccess          ReservationStatus = "success"
	ReservationEventNotFound    ReservationStatus = "event_not_found"
	ReservationCapacityFull     ReservationStatus = "capacity_full"
	ReservationDuplicateRequest ReservationStatus = "duplicate_request"
)

// PurchaseStatus is the closed set of outcomes a purchase attempt can produce.
type PurchaseStatus string

const (
	PurchaseSuccess          PurchaseStatus = "success"
	PurchaseTicketNotFound   PurchaseStatus = "ticket_not_found"
	PurchaseAlreadyPurchased PurchaseStatus = "already_purchased"
	PurchaseNotReserved      PurchaseStatus = "not_reserved"
	PurchaseNotAuthorized    PurchaseStatus = "not_authorized"
	PurchasePaymentFailed    PurchaseStatus = "payment_failed"
)
