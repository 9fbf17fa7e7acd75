package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/venue-booking-bot/internal/model"
)

// BookingRepo provides CRUD operations for venue bookings.  All dates are
// venue-local YYYY-MM-DD strings; timestamp columns are stored in UTC.
//
// The bookings table carries a unique index over (date, slot) that only
// applies to active rows (via a generated column that is NULL for
// cancelled and completed bookings).  Create therefore fails with
// ErrSlotTaken whenever a second active booking would land on an
// already-claimed slot, regardless of what the availability check saw
// moments earlier.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, holder_id, username, first_name, last_name, date, slot, party_size, language, status, created_at, updated_at`

// Create persists a new active booking.  It populates the generated ID
// and the database-assigned timestamps on the provided value.  A
// duplicate-key violation on the active-slot index (MySQL error 1062) is
// mapped to ErrSlotTaken.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (holder_id, username, first_name, last_name, date, slot, party_size, language, status)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'active')`
	result, err := r.db.ExecContext(ctx, q,
		b.HolderID, b.Username, b.FirstName, b.LastName,
		b.Date, b.Slot, string(b.PartySize), string(b.Locale),
	)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrSlotTaken
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	b.Status = model.StatusActive

	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// ListActiveForHolder returns the holder's active bookings with
// date >= fromDate, ordered by (date, slot) ascending.  Callers
// conventionally pass venue-local "tomorrow" so a holder is never offered
// a same-day booking for self-cancellation.
func (r *BookingRepo) ListActiveForHolder(ctx context.Context, holderID int64, fromDate string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
	           FROM bookings
	           WHERE holder_id = ? AND status = 'active' AND date >= ?
	           ORDER BY date ASC, slot ASC`
	rows, err := r.db.QueryContext(ctx, q, holderID, fromDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListActiveByDate returns every active booking on the given date.  This
// is the single indexed lookup the availability index is built on.
func (r *BookingRepo) ListActiveByDate(ctx context.Context, date string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
	           FROM bookings
	           WHERE date = ? AND status = 'active'
	           ORDER BY slot ASC`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// Cancel transitions a booking to cancelled on behalf of requesterID.
// It returns ErrBookingNotFound when no such booking exists and
// ErrForbidden when the requester is not the holder.  Cancelling an
// already-cancelled booking is a no-op success, so retried cancellations
// are harmless.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID uint64, requesterID int64) error {
	const sel = `SELECT holder_id, status FROM bookings WHERE id = ?`
	var holderID int64
	var status string
	err := r.db.QueryRowContext(ctx, sel, bookingID).Scan(&holderID, &status)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	if holderID != requesterID {
		return ErrForbidden
	}
	if model.Status(status) == model.StatusCancelled {
		return nil
	}
	const upd = `UPDATE bookings SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err = r.db.ExecContext(ctx, upd, bookingID)
	return err
}

// SweepPastDue bulk-transitions every active booking dated strictly
// before asOfDate to completed and returns the number of rows affected.
// Running it twice with no intervening changes affects zero rows the
// second time.
func (r *BookingRepo) SweepPastDue(ctx context.Context, asOfDate string) (int64, error) {
	const q = `UPDATE bookings SET status = 'completed', updated_at = CURRENT_TIMESTAMP
	           WHERE status = 'active' AND date < ?`
	result, err := r.db.ExecContext(ctx, q, asOfDate)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanBookings(rows *sql.Rows) ([]model.Booking, error) {
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		var username, firstName, lastName sql.NullString
		var partySize, language, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&b.ID, &b.HolderID, &username, &firstName, &lastName,
			&b.Date, &b.Slot, &partySize, &language, &status,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		if username.Valid {
			v := username.String
			b.Username = &v
		}
		if firstName.Valid {
			v := firstName.String
			b.FirstName = &v
		}
		if lastName.Valid {
			v := lastName.String
			b.LastName = &v
		}
		b.PartySize = model.PartySize(partySize)
		b.Locale = model.Locale(language)
		b.Status = model.Status(status)
		b.CreatedAt = createdAt
		b.UpdatedAt = updatedAt
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
