// Package availability merges the slot policy's candidate hours with the
// active bookings on record to decide what a holder can actually pick.
//
// Taken slots are reported alongside free ones instead of being omitted:
// the gateway renders them as locked buttons, so a holder who taps one
// gets an immediate "taken" notice rather than a silent no-op.  Hours
// outside the policy's candidates simply do not appear.
package availability

import (
	"context"
	"fmt"

	"github.com/iliyamo/venue-booking-bot/internal/clock"
	"github.com/iliyamo/venue-booking-bot/internal/model"
	"github.com/iliyamo/venue-booking-bot/internal/slot"
)

// BookingSource is the slice of the booking store the index reads from.
type BookingSource interface {
	ListActiveByDate(ctx context.Context, date string) ([]model.Booking, error)
}

// DaySlot is one candidate hour with its availability status.
type DaySlot struct {
	Hour  int  `json:"hour"`
	Taken bool `json:"taken"`
}

// Result is the availability picture for one date.  An empty Slots slice
// is a valid outcome (a past date, or today after closing) and must not
// be confused with a store failure, which Index.Slots reports as an
// error instead.
type Result struct {
	Date  string    `json:"date"`
	Slots []DaySlot `json:"slots"`
}

// HasFree reports whether at least one slot is still offerable.
func (r Result) HasFree() bool {
	for _, s := range r.Slots {
		if !s.Taken {
			return true
		}
	}
	return false
}

// IsFree reports whether the given hour is a candidate and not taken.
func (r Result) IsFree(hour int) bool {
	for _, s := range r.Slots {
		if s.Hour == hour {
			return !s.Taken
		}
	}
	return false
}

// IsTaken reports whether the given hour is a candidate already claimed
// by an active booking.
func (r Result) IsTaken(hour int) bool {
	for _, s := range r.Slots {
		if s.Hour == hour {
			return s.Taken
		}
	}
	return false
}

// Index computes per-date availability from the policy and the store.
type Index struct {
	source BookingSource
	policy slot.Policy
	clock  clock.Clock
}

// NewIndex constructs an Index.  All dependencies must be non-nil.
func NewIndex(source BookingSource, policy slot.Policy, c clock.Clock) *Index {
	if source == nil || c == nil {
		panic("nil dependency passed to NewIndex")
	}
	return &Index{source: source, policy: policy, clock: c}
}

// Slots classifies every candidate hour on date as free or taken.  A
// store failure is propagated so callers can show a transient-failure
// notice instead of mistaking it for "nothing available".
func (i *Index) Slots(ctx context.Context, date string) (Result, error) {
	hours, err := i.policy.Candidates(i.clock, date)
	if err != nil {
		return Result{}, err
	}
	res := Result{Date: date, Slots: make([]DaySlot, 0, len(hours))}
	if len(hours) == 0 {
		return res, nil
	}

	active, err := i.source.ListActiveByDate(ctx, date)
	if err != nil {
		return Result{}, fmt.Errorf("list active bookings for %s: %w", date, err)
	}
	taken := make(map[int]struct{}, len(active))
	for _, b := range active {
		taken[b.Slot] = struct{}{}
	}

	for _, h := range hours {
		_, isTaken := taken[h]
		res.Slots = append(res.Slots, DaySlot{Hour: h, Taken: isTaken})
	}
	return res, nil
}
