// Package repository defines error types that are reused across the data
// access layer. These sentinel values allow higher layers such as the
// booking engine to distinguish between different failure scenarios
// without inspecting error strings. For example, ErrSlotTaken signals
// that a commit lost the race for a slot, while ErrForbidden indicates
// that the caller tried to act on a booking held by someone else.
package repository

import "errors"

// ErrSlotTaken is returned by Create when another active booking already
// holds the requested (date, slot). The unique index on the bookings
// table raises it even when two commits race past the availability
// check, so it is the authoritative double-booking guard.
var ErrSlotTaken = errors.New("slot already booked")

// ErrBookingNotFound is returned when no booking exists with the
// requested ID.
var ErrBookingNotFound = errors.New("booking not found")

// ErrForbidden is returned when the caller attempts an operation on a
// booking they do not hold.
var ErrForbidden = errors.New("forbidden")
