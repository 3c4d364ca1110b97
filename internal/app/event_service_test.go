package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sumeru02/Ticketmaster/internal/domain"
	"github.com/sumeru02/Ticketmaster/internal/storage/memory"
)

func TestEventService_UpsertEvent(t *testing.T) {
	t.Parallel()

	validInput := func() UpsertEventInput {
		return UpsertEventInput{
			Name:     "Jazz Evening",
			Venue:    "Portland Theater",
			StartsAt: time.Date(2025, 7, 10, 19, 30, 0, 0, time.UTC),
			Capacity: 1500,
			TicketTypes: map[string]float64{
				"Balcony": 40,
			},
		}
	}

	t.Run("assigns an id when none is given", func(t *testing.T) {
		svc := NewEventService(memory.NewEventRepository())

		event, err := svc.UpsertEvent(context.Background(), validInput())
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if event.ID == "" {
			t.Fatalf("expected generated id")
		}

		stored, err := svc.GetEvent(context.Background(), event.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if stored == nil || stored.Name != "Jazz Evening" {
			t.Fatalf("expected stored event, got %+v", stored)
		}
	})

	t.Run("overwrites the record under a supplied id", func(t *testing.T) {
		svc := NewEventService(memory.NewEventRepository())

		in := validInput()
		in.ID = "evt-1"
		if _, err := svc.UpsertEvent(context.Background(), in); err != nil {
			t.Fatalf("first upsert: %v", err)
		}

		in.Name = "Jazz Evening (rescheduled)"
		in.Capacity = 900
		event, err := svc.UpsertEvent(context.Background(), in)
		if err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		if event.ID != "evt-1" {
			t.Fatalf("expected id to be kept, got %s", event.ID)
		}

		stored, err := svc.GetEvent(context.Background(), "evt-1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if stored.Name != "Jazz Evening (rescheduled)" || stored.Capacity != 900 {
			t.Fatalf("expected overwrite, got %+v", stored)
		}
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name    string
			mutate  func(*UpsertEventInput)
			wantErr error
		}{
			{name: "missing name", mutate: func(in *UpsertEventInput) { in.Name = "" }, wantErr: domain.ErrEventNameRequired},
			{name: "missing venue", mutate: func(in *UpsertEventInput) { in.Venue = "" }, wantErr: domain.ErrVenueRequired},
			{name: "missing date", mutate: func(in *UpsertEventInput) { in.StartsAt = time.Time{} }, wantErr: domain.ErrEventDateRequired},
			{name: "zero capacity", mutate: func(in *UpsertEventInput) { in.Capacity = 0 }, wantErr: domain.ErrInvalidCapacity},
			{name: "negative capacity", mutate: func(in *UpsertEventInput) { in.Capacity = -3 }, wantErr: domain.ErrInvalidCapacity},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := NewEventService(memory.NewEventRepository())
				in := validInput()
				tc.mutate(&in)

				_, err := svc.UpsertEvent(context.Background(), in)
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			})
		}
	})
}

func TestEventService_PatchEvent(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (*EventService, domain.Event) {
		t.Helper()
		svc := NewEventService(memory.NewEventRepository())
		event, err := svc.UpsertEvent(context.Background(), UpsertEventInput{
			Name:     "Rock Night 2025",
			Venue:    "Seattle Dome",
			StartsAt: time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC),
			Capacity: 5000,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		return svc, event
	}

	t.Run("applies only the provided fields", func(t *testing.T) {
		svc, event := seed(t)

		venue := "Tacoma Arena"
		capacity := 4200
		patched, err := svc.PatchEvent(context.Background(), event.ID, domain.EventPatch{
			Venue:    &venue,
			Capacity: &capacity,
		})
		if err != nil {
			t.Fatalf("patch: %v", err)
		}
		if patched.Venue != "Tacoma Arena" || patched.Capacity != 4200 {
			t.Fatalf("patch not applied: %+v", patched)
		}
		if patched.Name != event.Name || !patched.StartsAt.Equal(event.StartsAt) {
			t.Fatalf("untouched fields changed: %+v", patched)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := seed(t)

		name := "x"
		_, err := svc.PatchEvent(context.Background(), "missing", domain.EventPatch{Name: &name})
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		svc, event := seed(t)

		capacity := 0
		_, err := svc.PatchEvent(context.Background(), event.ID, domain.EventPatch{Capacity: &capacity})
		if !errors.Is(err, domain.ErrInvalidCapacity) {
			t.Fatalf("expected ErrInvalidCapacity, got %v", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		svc, _ := seed(t)

		_, err := svc.PatchEvent(context.Background(), "", domain.EventPatch{})
		if !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})
}

func TestEventService_GetEvent(t *testing.T) {
	t.Parallel()

	svc := NewEventService(memory.NewEventRepository())

	event, err := svc.GetEvent(context.Background(), "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if event != nil {
		t.Fatalf("expected nil for empty id, got %+v", event)
	}

	event, err = svc.GetEvent(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if event != nil {
		t.Fatalf("expected nil for unknown id, got %+v", event)
	}
}

func TestEventService_ListEvents(t *testing.T) {
	t.Parallel()

	svc := NewEventService(memory.NewEventRepository())

	events, err := svc.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty list, got %d", len(events))
	}

	for _, name := range []string{"A", "B", "C"} {
		if _, err := svc.UpsertEvent(context.Background(), UpsertEventInput{
			Name:     name,
			Venue:    "Hall",
			StartsAt: time.Date(2025, 9, 1, 18, 0, 0, 0, time.UTC),
			Capacity: 10,
		}); err != nil {
			t.Fatalf("upsert %s: %v", name, err)
		}
	}

	events, err = svc.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}
