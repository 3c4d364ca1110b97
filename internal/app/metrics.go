package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reservationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketmaster_reservations_total",
		Help: "Reservation attempts by outcome.",
	}, []string{"status"})

	purchasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketmaster_purchases_total",
		Help: "Purchase attempts by outcome.",
	}, []string{"status"})

	cancellationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ticketmaster_cancellations_total",
		Help: "Tickets transitioned to cancelled.",
	})
)
