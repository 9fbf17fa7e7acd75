// Package booking implements the state machine that drives a holder from
// date selection through commit.  The engine reads and writes the session
// store, validates choices against the availability index, and commits
// through the booking store.  The store's unique active-slot constraint is
// the source of truth for double-booking: the engine re-validates
// availability right before Create, but treats the store's ErrSlotTaken
// exactly like a failed re-validation, so two holders racing for one slot
// always end with exactly one confirmation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/iliyamo/venue-booking-bot/internal/availability"
	"github.com/iliyamo/venue-booking-bot/internal/clock"
	"github.com/iliyamo/venue-booking-bot/internal/model"
	"github.com/iliyamo/venue-booking-bot/internal/repository"
	"github.com/iliyamo/venue-booking-bot/internal/session"
	"github.com/iliyamo/venue-booking-bot/internal/slot"
)

// BookingStore is the slice of the repository the engine commits through.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	ListActiveForHolder(ctx context.Context, holderID int64, fromDate string) ([]model.Booking, error)
	Cancel(ctx context.Context, bookingID uint64, requesterID int64) error
}

// Notifier delivers the operator notification for a new booking.  It is
// best-effort: the engine logs a failure and moves on.
type Notifier interface {
	ReservationCreated(ctx context.Context, b model.Booking) error
}

// HolderInfo carries the display attributes the gateway knows about a
// holder.  All fields are optional.
type HolderInfo struct {
	Username  *string
	FirstName *string
	LastName  *string
}

// Engine is the booking orchestrator.  One instance serves all holders;
// per-holder state lives in the session store.
type Engine struct {
	sessions session.Store
	store    BookingStore
	avail    *availability.Index
	clock    clock.Clock
	notifier Notifier  // may be nil
	location *Location // may be nil when coordinates are not configured
}

// NewEngine constructs an Engine.  sessions, store, avail and c must be
// non-nil; notifier and location are optional.
func NewEngine(sessions session.Store, store BookingStore, avail *availability.Index, c clock.Clock, notifier Notifier, location *Location) *Engine {
	if sessions == nil || store == nil || avail == nil || c == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{
		sessions: sessions,
		store:    store,
		avail:    avail,
		clock:    c,
		notifier: notifier,
		location: location,
	}
}

// gate enforces the locale precondition checked first on every inbound
// action.  When the holder has no locale yet, it returns ok=false with
// the AskLocale directive to emit instead of processing the action.
func (e *Engine) gate(ctx context.Context, holderID int64) (model.Locale, Directive, bool, error) {
	loc, ok, err := e.sessions.Locale(ctx, holderID)
	if err != nil {
		return "", Directive{Kind: DirectiveNotice, Notice: NoticeTryAgain}, false, fmt.Errorf("load locale: %w", err)
	}
	if !ok {
		return "", Directive{Kind: DirectiveAskLocale}, false, nil
	}
	return loc, Directive{}, true, nil
}

// SelectLocale records the holder's language choice, discards any
// in-progress draft and moves the flow to date selection.
func (e *Engine) SelectLocale(ctx context.Context, holderID int64, raw string) (Directive, error) {
	loc, ok := model.ParseLocale(raw)
	if !ok {
		return Directive{Kind: DirectiveAskLocale}, fmt.Errorf("unknown locale %q", raw)
	}
	if err := e.sessions.SetLocale(ctx, holderID, loc); err != nil {
		return Directive{Kind: DirectiveNotice, Notice: NoticeTryAgain}, fmt.Errorf("set locale: %w", err)
	}
	if err := e.sessions.ClearDraft(ctx, holderID); err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("clear draft: %w", err)
	}
	return Directive{Kind: DirectiveShowCalendar, Locale: loc}, nil
}

// StartBooking begins a fresh draft, overwriting any prior incomplete one
// for this holder, and prompts the date picker.
func (e *Engine) StartBooking(ctx context.Context, holderID int64) (Directive, error) {
	loc, d, ok, err := e.gate(ctx, holderID)
	if !ok {
		return d, err
	}
	if err := e.sessions.PutDraft(ctx, holderID, model.NewDraft()); err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("put draft: %w", err)
	}
	return Directive{Kind: DirectiveShowCalendar, Locale: loc}, nil
}

// SelectDate handles a date-picker tap.  When the date still has
// candidate slots the draft advances to slot selection; otherwise the
// holder stays on the calendar with a nothing-available notice.
func (e *Engine) SelectDate(ctx context.Context, holderID int64, date string) (Directive, error) {
	loc, d, ok, err := e.gate(ctx, holderID)
	if !ok {
		return d, err
	}

	res, err := e.avail.Slots(ctx, date)
	if err != nil {
		if errors.Is(err, slot.ErrBadDate) {
			return Directive{Kind: DirectiveShowCalendar, Locale: loc, Notice: NoticeStaleSelection}, err
		}
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, err
	}
	if len(res.Slots) == 0 {
		// Past date, or today with no hours left.  Stay on the calendar.
		return Directive{Kind: DirectiveShowCalendar, Locale: loc, Notice: NoticeNothingAvailable}, nil
	}

	if err := e.sessions.PutDraft(ctx, holderID, model.NewDraft().WithDate(date)); err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("put draft: %w", err)
	}
	return Directive{Kind: DirectiveShowSlots, Locale: loc, Date: date, Slots: &res}, nil
}

// SelectSlot handles a slot-picker tap.  A tap on a taken slot leaves the
// draft unchanged and refreshes the picker with a slot-taken notice; a
// free slot advances the draft to party-size selection.
func (e *Engine) SelectSlot(ctx context.Context, holderID int64, date string, hour int) (Directive, error) {
	loc, d, ok, err := e.gate(ctx, holderID)
	if !ok {
		return d, err
	}

	draft, found, err := e.sessions.Draft(ctx, holderID)
	if err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("load draft: %w", err)
	}
	draftDate, hasDate := draft.SelectedDate()
	if !found || !hasDate || draftDate != date {
		// The tap belongs to an abandoned or replaced draft.
		return Directive{Kind: DirectiveShowCalendar, Locale: loc, Notice: NoticeStaleSelection}, nil
	}

	res, err := e.avail.Slots(ctx, date)
	if err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, err
	}
	if !res.IsFree(hour) {
		// Taken, or no longer a candidate.  Draft unchanged; refreshed picker.
		return Directive{Kind: DirectiveShowSlots, Locale: loc, Date: date, Slots: &res, Notice: NoticeSlotTaken}, nil
	}

	if err := e.sessions.PutDraft(ctx, holderID, draft.WithSlot(hour)); err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("put draft: %w", err)
	}
	return Directive{Kind: DirectiveShowPartySizes, Locale: loc, Date: date, Slot: hour}, nil
}

// SelectPartySize completes the draft and commits it.  Availability is
// re-checked immediately before Create because the slot may have been
// claimed since it was shown; the store's unique constraint closes the
// remaining window.  Either failure sends the holder back to a refreshed
// slot picker.
func (e *Engine) SelectPartySize(ctx context.Context, holderID int64, raw string, info HolderInfo) (Directive, error) {
	loc, d, ok, err := e.gate(ctx, holderID)
	if !ok {
		return d, err
	}

	draft, found, err := e.sessions.Draft(ctx, holderID)
	if err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("load draft: %w", err)
	}
	date, hour, complete := draft.SelectedSlot()
	if !found || !complete {
		// Party size without a chosen slot: restart at the calendar.
		return Directive{Kind: DirectiveShowCalendar, Locale: loc, Notice: NoticeStaleSelection}, nil
	}

	size, okSize := model.ParsePartySize(raw)
	if !okSize {
		return Directive{Kind: DirectiveShowPartySizes, Locale: loc, Date: date, Slot: hour},
			fmt.Errorf("unknown party size %q", raw)
	}

	res, err := e.avail.Slots(ctx, date)
	if err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, err
	}
	if !res.IsFree(hour) {
		return e.slotLost(ctx, holderID, loc, date, res)
	}

	b := model.Booking{
		HolderID:  holderID,
		Username:  info.Username,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Date:      date,
		Slot:      hour,
		PartySize: size,
		Locale:    loc,
	}
	if err := e.store.Create(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			// Lost the race after the re-check; same recovery as a failed
			// re-validation.
			refreshed, aerr := e.avail.Slots(ctx, date)
			if aerr != nil {
				return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, aerr
			}
			return e.slotLost(ctx, holderID, loc, date, refreshed)
		}
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("create booking: %w", err)
	}

	if err := e.sessions.ClearDraft(ctx, holderID); err != nil {
		// The booking is committed; a dangling draft only wastes memory.
		log.Printf("booking-engine: clear draft after commit failed: %v", err)
	}
	e.notify(ctx, b)

	return Directive{Kind: DirectiveConfirmed, Locale: loc, Booking: &b, Location: e.location}, nil
}

// slotLost reverts the draft to slot selection and refreshes the picker
// after the chosen slot was claimed by someone else.
func (e *Engine) slotLost(ctx context.Context, holderID int64, loc model.Locale, date string, res availability.Result) (Directive, error) {
	if err := e.sessions.PutDraft(ctx, holderID, model.NewDraft().WithDate(date)); err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("revert draft: %w", err)
	}
	return Directive{Kind: DirectiveShowSlots, Locale: loc, Date: date, Slots: &res, Notice: NoticeSlotTaken}, nil
}

func (e *Engine) notify(ctx context.Context, b model.Booking) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.ReservationCreated(ctx, b); err != nil {
		// Best-effort by contract; the reservation stands.
		log.Printf("booking-engine: operator notification failed: %v", err)
	}
}

// ListBookings returns the holder's upcoming bookings, from tomorrow
// onward.  Same-day bookings are deliberately excluded so they cannot be
// self-cancelled through this listing.
func (e *Engine) ListBookings(ctx context.Context, holderID int64) (Directive, error) {
	loc, d, ok, err := e.gate(ctx, holderID)
	if !ok {
		return d, err
	}
	list, err := e.store.ListActiveForHolder(ctx, holderID, clock.Tomorrow(e.clock))
	if err != nil {
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("list bookings: %w", err)
	}
	return Directive{Kind: DirectiveShowBookings, Locale: loc, Bookings: list}, nil
}

// RequestCancel asks the holder to confirm cancelling a booking.  The
// cancellation sub-flow never touches the booking draft.
func (e *Engine) RequestCancel(ctx context.Context, holderID int64, bookingID uint64) (Directive, error) {
	loc, d, ok, err := e.gate(ctx, holderID)
	if !ok {
		return d, err
	}
	return Directive{Kind: DirectiveConfirmCancel, Locale: loc, BookingID: bookingID}, nil
}

// ConfirmCancel cancels the booking after the holder's confirmation.
// Cancelling someone else's booking, or a booking that no longer exists,
// is denied rather than retried.
func (e *Engine) ConfirmCancel(ctx context.Context, holderID int64, bookingID uint64) (Directive, error) {
	loc, d, ok, err := e.gate(ctx, holderID)
	if !ok {
		return d, err
	}
	err = e.store.Cancel(ctx, bookingID, holderID)
	switch {
	case err == nil:
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeCancelled}, nil
	case errors.Is(err, repository.ErrBookingNotFound), errors.Is(err, repository.ErrForbidden):
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeCancelDenied}, err
	default:
		return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeTryAgain}, fmt.Errorf("cancel booking: %w", err)
	}
}

// DenyCancel acknowledges that the holder backed out of a cancellation.
func (e *Engine) DenyCancel(ctx context.Context, holderID int64) (Directive, error) {
	loc, d, ok, err := e.gate(ctx, holderID)
	if !ok {
		return d, err
	}
	return Directive{Kind: DirectiveNotice, Locale: loc, Notice: NoticeCancelAborted}, nil
}
