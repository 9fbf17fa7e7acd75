package queue_publisher

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/venue-booking-bot/internal/model"
	q "github.com/iliyamo/venue-booking-bot/internal/queue"
)

// ReservationNotifier adapts the queue publisher to the booking engine's
// Notifier interface.  Each notification gets a fresh event ID so the
// consumer side can deduplicate redeliveries.
type ReservationNotifier struct {
	URL string // broker URL; empty falls back to the local default
}

// ReservationCreated builds and publishes the operator notification for a
// freshly committed booking.
func (n ReservationNotifier) ReservationCreated(ctx context.Context, b model.Booking) error {
	ev := q.ReservationCreatedEvent{
		EventID:   uuid.New().String(),
		BookingID: b.ID,
		HolderID:  b.HolderID,
		Date:      b.Date,
		Slot:      b.Slot,
		PartySize: string(b.PartySize),
		Locale:    string(b.Locale),
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if b.Username != nil {
		ev.Username = *b.Username
	}
	if b.FirstName != nil {
		ev.FirstName = *b.FirstName
	}
	if b.LastName != nil {
		ev.LastName = *b.LastName
	}
	return PublishReservationCreated(ctx, n.URL, ev)
}
