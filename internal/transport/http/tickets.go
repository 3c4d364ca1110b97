package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sumeru02/Ticketmaster/internal/app"
	"github.com/sumeru02/Ticketmaster/internal/domain"
)

const (
	idempotencyHeader = "Idempotency-Key"
	userIDHeader      = "X-User-ID"
)

// TicketLedger is the minimal interface the ticket endpoints need.
type TicketLedger interface {
	ReserveTicket(ctx context.Context, in app.ReserveTicketInput) (app.ReservationResult, error)
	PurchaseTicket(ctx context.Context, ticketID, userID string) (app.PurchaseResult, error)
	CancelTicket(ctx context.Context, ticketID, userID string) (*domain.Ticket, error)
	GetAvailableTickets(ctx context.Context, eventID string) (int, error)
}

// HandleReserveTicket returns an HTTP handler for POST /tickets/{eventID}/reserve.
func HandleReserveTicket(svc TicketLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}
		key := r.Header.Get(idempotencyHeader)
		if key == "" {
			writeError(w, http.StatusBadRequest, codeIdempotencyRequired, domain.ErrIdempotencyKeyRequired.Error())
			return
		}

		res, err := svc.ReserveTicket(r.Context(), app.ReserveTicketInput{
			EventID:        chi.URLParam(r, "eventID"),
			UserID:         userID,
			IdempotencyKey: key,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrIdempotencyKeyRequired):
				writeError(w, http.StatusBadRequest, codeIdempotencyRequired, err.Error())
			case errors.Is(err, domain.ErrUserIDRequired):
				writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		switch res.Status {
		case domain.ReservationSuccess:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newTicketResponse(*res.Ticket))
		case domain.ReservationEventNotFound:
			writeError(w, http.StatusNotFound, codeEventNotFound, "event does not exist")
		case domain.ReservationCapacityFull:
			writeError(w, http.StatusConflict, codeCapacityFull, "event capacity has been reached")
		case domain.ReservationDuplicateRequest:
			writeError(w, http.StatusConflict, codeDuplicateRequest, "duplicate reservation request")
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
	}
}

// HandlePurchaseTicket returns an HTTP handler for POST /tickets/{ticketID}/purchase.
func HandlePurchaseTicket(svc TicketLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		res, err := svc.PurchaseTicket(r.Context(), chi.URLParam(r, "ticketID"), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserIDRequired) {
				writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		switch res.Status {
		case domain.PurchaseSuccess:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newTicketResponse(*res.Ticket))
		case domain.PurchaseTicketNotFound:
			writeError(w, http.StatusNotFound, codeTicketNotFound, "ticket not found")
		case domain.PurchaseAlreadyPurchased:
			writeError(w, http.StatusConflict, codeAlreadyPurchased, "ticket has already been purchased")
		case domain.PurchaseNotReserved:
			writeError(w, http.StatusConflict, codeNotReserved, "ticket is not in reserved state")
		case domain.PurchaseNotAuthorized:
			writeError(w, http.StatusForbidden, codeNotAuthorized, "user is not authorized to purchase this ticket")
		case domain.PurchasePaymentFailed:
			writeError(w, http.StatusPaymentRequired, codePaymentFailed, "payment failed")
		default:
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		}
	}
}

// HandleCancelTicket returns an HTTP handler for POST /tickets/{ticketID}/cancel.
// All cancellation failures share one response so callers cannot probe for
// ticket existence or ownership.
func HandleCancelTicket(svc TicketLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}

		ticket, err := svc.CancelTicket(r.Context(), chi.URLParam(r, "ticketID"), userID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTicketNotFound):
				writeError(w, http.StatusBadRequest, codeCancelFailed,
					"cancellation failed: ticket may not be in reserved state, not belong to the user, or may not exist")
			case errors.Is(err, domain.ErrUserIDRequired):
				writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newTicketResponse(*ticket))
	}
}

// HandleTicketAvailability returns an HTTP handler for GET /tickets/{eventID}/availability.
// Unknown events report zero remaining tickets.
func HandleTicketAvailability(svc TicketLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		available, err := svc.GetAvailableTickets(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(availabilityResponse{Available: available})
	}
}

// callerID extracts the trusted caller identity header, writing a 400 when
// it is missing.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		writeError(w, http.StatusBadRequest, codeUserIDRequired, domain.ErrUserIDRequired.Error())
		return "", false
	}
	return userID, true
}

type ticketResponse struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	ReservedAt time.Time `json:"reserved_at"`
}

func newTicketResponse(t domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:         t.ID,
		EventID:    t.EventID,
		UserID:     t.UserID,
		Status:     string(t.Status),
		ReservedAt: t.ReservedAt,
	}
}

type availabilityResponse struct {
	Available int `json:"available"`
}
