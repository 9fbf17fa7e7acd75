package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/venue-booking-bot/internal/model"
)

func newMock(t *testing.T) (*BookingRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return NewBookingRepo(db), mock, func() { db.Close() }
}

func strPtr(s string) *string { return &s }

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	now := time.Date(2024, 6, 10, 17, 30, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(42), "bob", "Bob", nil, "2024-06-11", 18, "2-4", "en").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	b := model.Booking{
		HolderID:  42,
		Username:  strPtr("bob"),
		FirstName: strPtr("Bob"),
		Date:      "2024-06-11",
		Slot:      18,
		PartySize: model.PartyMedium,
		Locale:    model.LocaleEnglish,
	}
	if err := repo.Create(context.Background(), &b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.ID != 7 {
		t.Errorf("expected id 7, got %d", b.ID)
	}
	if b.Status != model.StatusActive {
		t.Errorf("expected status active, got %s", b.Status)
	}
	if !b.CreatedAt.Equal(now) || !b.UpdatedAt.Equal(now) {
		t.Errorf("timestamps not populated: %v / %v", b.CreatedAt, b.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateMapsDuplicateKeyToSlotTaken(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '2024-06-11#18' for key 'bookings.uniq_active_slot'"))

	b := model.Booking{HolderID: 42, Date: "2024-06-11", Slot: 18, PartySize: model.PartySmall, Locale: model.LocaleArmenian}
	err := repo.Create(context.Background(), &b)
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestCancelNotFound(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery("SELECT holder_id, status FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"holder_id", "status"}))

	err := repo.Cancel(context.Background(), 99, 42)
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestCancelForbiddenForForeignBooking(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery("SELECT holder_id, status FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"holder_id", "status"}).AddRow(1, "active"))

	err := repo.Cancel(context.Background(), 7, 42)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCancelActiveBooking(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery("SELECT holder_id, status FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"holder_id", "status"}).AddRow(42, "active"))
	mock.ExpectExec("UPDATE bookings SET status = 'cancelled'").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Cancel(context.Background(), 7, 42); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancelAlreadyCancelledIsNoOp(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	// No UPDATE expected: the second cancel must not touch the row.
	mock.ExpectQuery("SELECT holder_id, status FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"holder_id", "status"}).AddRow(42, "cancelled"))

	if err := repo.Cancel(context.Background(), 7, 42); err != nil {
		t.Fatalf("expected idempotent success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSweepPastDueIdempotent(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("UPDATE bookings SET status = 'completed'").
		WithArgs("2024-06-10").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE bookings SET status = 'completed'").
		WithArgs("2024-06-10").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.SweepPastDue(context.Background(), "2024-06-10")
	if err != nil {
		t.Fatalf("SweepPastDue: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 affected, got %d", n)
	}

	n, err = repo.SweepPastDue(context.Background(), "2024-06-10")
	if err != nil {
		t.Fatalf("second SweepPastDue: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 affected on rerun, got %d", n)
	}
}

func TestListActiveForHolderScansRows(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	now := time.Date(2024, 6, 10, 17, 30, 0, 0, time.UTC)
	cols := []string{"id", "holder_id", "username", "first_name", "last_name", "date", "slot", "party_size", "language", "status", "created_at", "updated_at"}
	mock.ExpectQuery("FROM bookings").
		WithArgs(int64(42), "2024-06-11").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(7, 42, "bob", nil, nil, "2024-06-11", 18, "2-4", "en", "active", now, now).
			AddRow(9, 42, nil, "Ann", nil, "2024-06-12", 10, "4+", "ru", "active", now, now))

	list, err := repo.ListActiveForHolder(context.Background(), 42, "2024-06-11")
	if err != nil {
		t.Fatalf("ListActiveForHolder: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(list))
	}
	if list[0].Username == nil || *list[0].Username != "bob" {
		t.Errorf("first row username not scanned: %+v", list[0])
	}
	if list[0].LastName != nil {
		t.Error("expected nil last name for first row")
	}
	if list[1].PartySize != model.PartyLarge || list[1].Locale != model.LocaleRussian {
		t.Errorf("second row enums not scanned: %+v", list[1])
	}
}
