// Package clock anchors all date and time logic to the venue's fixed
// timezone.  Holders may be anywhere in the world; availability, "today"
// and the nightly sweep boundary are always computed venue-local.
package clock

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Clock supplies the current venue-local time.  Production code uses
// VenueClock; tests substitute a Fixed clock to pin "now".
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// VenueClock is a Clock bound to the venue's IANA timezone.
type VenueClock struct {
	loc *time.Location
}

// NewVenueClock loads the given IANA zone name (e.g. "Asia/Yerevan").
func NewVenueClock(tz string) (*VenueClock, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load venue timezone %q: %w", tz, err)
	}
	return &VenueClock{loc: loc}, nil
}

func (c *VenueClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *VenueClock) Location() *time.Location { return c.loc }

// Fixed is a Clock frozen at a single instant.  Its location is taken from
// the instant itself.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time           { return f.T }
func (f Fixed) Location() *time.Location { return f.T.Location() }

// Today formats the current venue-local date.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// Tomorrow formats the venue-local date one day ahead.  Used as the lower
// bound when listing a holder's upcoming bookings, so same-day bookings
// are deliberately not offered for self-cancellation.
func Tomorrow(c Clock) string {
	return c.Now().AddDate(0, 0, 1).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as a venue-local midnight.
func ParseDate(c Clock, date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, c.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return t, nil
}
