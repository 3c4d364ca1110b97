package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sumeru02/Ticketmaster/internal/app"
	"github.com/sumeru02/Ticketmaster/internal/clock"
	"github.com/sumeru02/Ticketmaster/internal/config"
	"github.com/sumeru02/Ticketmaster/internal/storage/memory"
	"github.com/sumeru02/Ticketmaster/internal/storage/postgres"
	transporthttp "github.com/sumeru02/Ticketmaster/internal/transport/http"
	"github.com/sumeru02/Ticketmaster/migrations"
)

func main() {
	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var eventRepo app.EventRepository
	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(startupCtx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(startupCtx); err != nil {
			log.Fatalf("db ping: %v", err)
		}
		if err := migrations.Apply(startupCtx, pool); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
		eventRepo = postgres.NewEventRepository(pool)
		logger.Printf("event directory backed by postgres")
	} else {
		eventRepo = memory.NewEventRepository()
		logger.Printf("event directory in memory")
	}

	eventSvc := app.NewEventService(eventRepo)
	ticketSvc := app.NewTicketService(
		eventSvc,
		memory.NewTicketRepository(),
		app.AutoApprovePayments{},
		clock.NewSystem(),
		app.WithReservationTTL(cfg.Tickets.ReservationTTL),
	)

	if err := app.SeedSampleEvents(startupCtx, eventSvc); err != nil {
		logger.Printf("WARN: seed sample events: %v", err)
	}

	router := transporthttp.NewRouter(eventSvc, ticketSvc)
	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORS.Origins, router), logger)

	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.HTTP.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
