package model

import "time"

// Status describes where a booking is in its lifecycle.  A booking is
// created active, may be cancelled by its holder, and is marked completed
// by the nightly sweep once its date has passed.  Rows are never deleted;
// cancelled and completed bookings remain for history.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// PartySize is the closed set of party sizes a holder can pick.  The venue
// does not track exact head counts, only these three buckets.
type PartySize string

const (
	PartySmall  PartySize = "1-2"
	PartyMedium PartySize = "2-4"
	PartyLarge  PartySize = "4+"
)

// ParsePartySize validates a raw party-size value coming from the gateway.
func ParsePartySize(s string) (PartySize, bool) {
	switch PartySize(s) {
	case PartySmall, PartyMedium, PartyLarge:
		return PartySize(s), true
	}
	return "", false
}

// Locale is the closed set of languages the presentation layer can render.
// The engine only stores and validates the tag; string tables live in the
// gateway.
type Locale string

const (
	LocaleArmenian Locale = "am"
	LocaleRussian  Locale = "ru"
	LocaleEnglish  Locale = "en"
)

// ParseLocale validates a raw locale tag coming from the gateway.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(s) {
	case LocaleArmenian, LocaleRussian, LocaleEnglish:
		return Locale(s), true
	}
	return "", false
}

// Booking is a confirmed reservation of one slot at the venue.
//
// Date is a venue-local calendar date in YYYY-MM-DD form and Slot is the
// hour of the reserved one-hour window.  At most one active booking may
// exist per (Date, Slot); the bookings table enforces this with a unique
// index so concurrent commits cannot both land.
//
// Fields:
//
//	ID        – primary key identifier.
//	HolderID  – gateway identity of the user holding the booking.
//	Username,
//	FirstName,
//	LastName  – display attributes from the gateway (all optional).
//	Date      – venue-local calendar date, YYYY-MM-DD.
//	Slot      – reserved hour within the operating window.
//	PartySize – one of the PartySize buckets.
//	Locale    – language the booking was made in.
//	Status    – lifecycle state (active, cancelled, completed).
//	CreatedAt – creation timestamp.
//	UpdatedAt – last modification timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	HolderID  int64     // bookings.holder_id
	Username  *string   // bookings.username (nullable)
	FirstName *string   // bookings.first_name (nullable)
	LastName  *string   // bookings.last_name (nullable)
	Date      string    // bookings.date
	Slot      int       // bookings.slot
	PartySize PartySize // bookings.party_size
	Locale    Locale    // bookings.language
	Status    Status    // bookings.status
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}
