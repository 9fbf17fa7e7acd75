// Package slot computes which one-hour slots the venue offers on a given
// calendar date.  The policy is a pure function of the date, the operating
// window and the venue clock; bookings are layered on top by the
// availability index.
package slot

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/venue-booking-bot/internal/clock"
)

// ErrBadDate is returned when a date string is not a valid YYYY-MM-DD
// calendar date.
var ErrBadDate = errors.New("invalid date")

// Policy holds the venue's fixed operating window.  OpenHour and CloseHour
// are inclusive; with the defaults 10 and 22 the venue offers slots
// 10:00 through 22:00.
type Policy struct {
	OpenHour  int
	CloseHour int
}

// NewPolicy validates the operating window.
func NewPolicy(openHour, closeHour int) (Policy, error) {
	if openHour < 0 || closeHour > 23 || openHour > closeHour {
		return Policy{}, fmt.Errorf("invalid operating window %d..%d", openHour, closeHour)
	}
	return Policy{OpenHour: openHour, CloseHour: closeHour}, nil
}

// Candidates returns the ordered hours offerable on date, before any
// bookings are considered.
//
// Past dates yield an empty sequence.  For today, only hours whose slot
// start is strictly after the current venue-local time remain: at 21:30
// the 21:00 slot is gone and only 22:00 is left.  Future dates get the
// full window.
func (p Policy) Candidates(c clock.Clock, date string) ([]int, error) {
	day, err := clock.ParseDate(c, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDate, err)
	}

	now := c.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.Location())

	if day.Before(todayStart) {
		return []int{}, nil
	}
	isToday := day.Equal(todayStart)

	hours := make([]int, 0, p.CloseHour-p.OpenHour+1)
	for h := p.OpenHour; h <= p.CloseHour; h++ {
		if isToday {
			start := day.Add(time.Duration(h) * time.Hour)
			if !start.After(now) {
				continue
			}
		}
		hours = append(hours, h)
	}
	return hours, nil
}
