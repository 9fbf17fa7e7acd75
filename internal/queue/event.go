// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a holder confirms a booking.
// It carries enough information for the operator channel to announce the
// reservation without querying the primary database.  Notification is
// best-effort: a publish failure never rolls the booking back.
type ReservationCreatedEvent struct {
	EventID   string `json:"event_id"`
	BookingID uint64 `json:"booking_id"`
	HolderID  int64  `json:"holder_id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Date      string `json:"date"`
	Slot      int    `json:"slot"`
	PartySize string `json:"party_size"`
	Locale    string `json:"locale"`
	CreatedAt string `json:"created_at"`
}
