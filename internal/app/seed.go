package app

import (
	"context"
	"fmt"
	"time"
)

// SeedSampleEvents loads the demo events a fresh instance serves. It is a
// no-op when the directory already holds records.
func SeedSampleEvents(ctx context.Context, svc *EventService) error {
	existing, err := svc.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []UpsertEventInput{
		{
			ID:       "00000000-0000-0000-0000-000000000001",
			Name:     "Rock Night 2025",
			Venue:    "Seattle Dome",
			StartsAt: time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC),
			Capacity: 5000,
			TicketTypes: map[string]float64{
				"General": 50.00,
				"VIP":     120.00,
			},
		},
		{
			ID:       "00000000-0000-0000-0000-000000000002",
			Name:     "Jazz Evening",
			Venue:    "Portland Theater",
			StartsAt: time.Date(2025, 7, 10, 19, 30, 0, 0, time.UTC),
			Capacity: 1500,
			TicketTypes: map[string]float64{
				"Balcony":   40.00,
				"Front Row": 80.00,
			},
		},
	}

	for _, sample := range samples {
		if _, err := svc.UpsertEvent(ctx, sample); err != nil {
			return fmt.Errorf("seed event %q: %w", sample.Name, err)
		}
	}
	return nil
}
