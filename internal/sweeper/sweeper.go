// Package sweeper retires past-due bookings in the background.  Once per
// interval it asks the store to complete every active booking dated
// before venue-local today.  The sweep is idempotent, so running it more
// often than once a day is harmless and lets a restarted server catch up
// immediately.
package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/venue-booking-bot/internal/clock"
)

// Store is the slice of the repository the sweeper drives.
type Store interface {
	SweepPastDue(ctx context.Context, asOfDate string) (int64, error)
}

// Sweeper runs the periodic past-due sweep.
type Sweeper struct {
	Repo     Store
	Clock    clock.Clock
	Interval time.Duration // defaults to one hour when zero
}

// Run sweeps immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	today := clock.Today(s.Clock)
	n, err := s.Repo.SweepPastDue(ctx, today)
	if err != nil {
		log.Printf("sweeper: sweep past-due failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("sweeper: completed %d past-due bookings (before %s)", n, today)
	}
}
