package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the API routes. CORS and request logging are applied by
// the caller around the returned handler.
func NewRouter(events EventDirectory, tickets TicketLedger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(Metrics)

	r.Get("/health", HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/events", func(r chi.Router) {
		r.Get("/", HandleListEvents(events))
		r.Post("/", HandleUpsertEvent(events))
		r.Patch("/{eventID}", HandlePatchEvent(events))
		r.Get("/{eventID}/availability", HandleEventAvailability(events, tickets))
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Post("/{eventID}/reserve", HandleReserveTicket(tickets))
		r.Post("/{ticketID}/purchase", HandlePurchaseTicket(tickets))
		r.Post("/{ticketID}/cancel", HandleCancelTicket(tickets))
		r.Get("/{eventID}/availability", HandleTicketAvailability(tickets))
	})

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	return r
}
