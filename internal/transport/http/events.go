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

// EventDirectory is the minimal interface the event endpoints need.
type EventDirectory interface {
	UpsertEvent(ctx context.Context, in app.UpsertEventInput) (domain.Event, error)
	PatchEvent(ctx context.Context, id string, patch domain.EventPatch) (domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

// AvailabilityReader reports remaining capacity for an event.
type AvailabilityReader interface {
	GetAvailableTickets(ctx context.Context, eventID string) (int, error)
}

// HandleUpsertEvent returns an HTTP handler for POST /events.
func HandleUpsertEvent(svc EventDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		startsAt, ok := parseStartsAt(w, req.StartsAt)
		if !ok {
			return
		}

		event, err := svc.UpsertEvent(r.Context(), app.UpsertEventInput{
			ID:          req.ID,
			Name:        req.Name,
			Venue:       req.Venue,
			StartsAt:    startsAt,
			Capacity:    req.Capacity,
			TicketTypes: req.TicketTypes,
		})
		if err != nil {
			writeEventError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newEventResponse(event))
	}
}

// HandlePatchEvent returns an HTTP handler for PATCH /events/{eventID}.
// Only fields present in the body are applied.
func HandlePatchEvent(svc EventDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventPatchRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		patch := domain.EventPatch{
			Name:        req.Name,
			Venue:       req.Venue,
			Capacity:    req.Capacity,
			TicketTypes: req.TicketTypes,
		}
		if req.StartsAt != nil {
			parsed, ok := parseStartsAt(w, *req.StartsAt)
			if !ok {
				return
			}
			patch.StartsAt = &parsed
		}

		event, err := svc.PatchEvent(r.Context(), chi.URLParam(r, "eventID"), patch)
		if err != nil {
			writeEventError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newEventResponse(event))
	}
}

// HandleListEvents returns an HTTP handler for GET /events.
func HandleListEvents(svc EventDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.ListEvents(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]eventResponse, 0, len(events))
		for _, event := range events {
			resp = append(resp, newEventResponse(event))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// HandleEventAvailability returns an HTTP handler for GET /events/{eventID}/availability.
// Unlike the tickets-side availability route, an unknown event is a 404 here.
func HandleEventAvailability(events EventDirectory, tickets AvailabilityReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		event, err := events.GetEvent(r.Context(), eventID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		if event == nil {
			writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
			return
		}

		available, err := tickets.GetAvailableTickets(r.Context(), eventID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(availabilityResponse{Available: available})
	}
}

func writeEventError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEventNameRequired):
		writeError(w, http.StatusBadRequest, codeEventNameRequired, err.Error())
	case errors.Is(err, domain.ErrVenueRequired):
		writeError(w, http.StatusBadRequest, codeVenueRequired, err.Error())
	case errors.Is(err, domain.ErrEventDateRequired):
		writeError(w, http.StatusBadRequest, codeEventDateRequired, err.Error())
	case errors.Is(err, domain.ErrInvalidCapacity):
		writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func parseStartsAt(w http.ResponseWriter, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidStartsAt, "invalid starts_at format")
		return time.Time{}, false
	}
	return parsed, true
}

type eventRequest struct {
	ID          string             `json:"id,omitempty"`
	Name        string             `json:"name"`
	Venue       string             `json:"venue"`
	StartsAt    string             `json:"starts_at"`
	Capacity    int                `json:"capacity"`
	TicketTypes map[string]float64 `json:"ticket_types,omitempty"`
}

type eventPatchRequest struct {
	Name        *string            `json:"name,omitempty"`
	Venue       *string            `json:"venue,omitempty"`
	StartsAt    *string            `json:"starts_at,omitempty"`
	Capacity    *int               `json:"capacity,omitempty"`
	TicketTypes map[string]float64 `json:"ticket_types,omitempty"`
}

type eventResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Venue       string             `json:"venue"`
	StartsAt    time.Time          `json:"starts_at"`
	Capacity    int                `json:"capacity"`
	TicketTypes map[string]float64 `json:"ticket_types"`
}

func newEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:          event.ID,
		Name:        event.Name,
		Venue:       event.Venue,
		StartsAt:    event.StartsAt,
		Capacity:    event.Capacity,
		TicketTypes: event.TicketTypes,
	}
}
