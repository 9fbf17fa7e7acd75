package booking

import (
	"github.com/iliyamo/venue-booking-bot/internal/availability"
	"github.com/iliyamo/venue-booking-bot/internal/model"
)

// DirectiveKind names what the presentation gateway should render next.
// The engine never formats user-facing text; it hands the gateway one of
// these kinds plus the data the corresponding screen needs.
type DirectiveKind string

const (
	// DirectiveAskLocale prompts the language picker.  Emitted for any
	// action arriving before the holder has chosen a locale.
	DirectiveAskLocale DirectiveKind = "ask_locale"
	// DirectiveShowCalendar prompts the date picker.
	DirectiveShowCalendar DirectiveKind = "show_calendar"
	// DirectiveShowSlots prompts the slot picker for Date using Slots.
	DirectiveShowSlots DirectiveKind = "show_slots"
	// DirectiveShowPartySizes prompts the party-size picker for Date/Slot.
	DirectiveShowPartySizes DirectiveKind = "show_party_sizes"
	// DirectiveConfirmed announces a committed booking, with the venue
	// location when configured.
	DirectiveConfirmed DirectiveKind = "confirmed"
	// DirectiveShowBookings lists the holder's upcoming bookings.
	DirectiveShowBookings DirectiveKind = "show_bookings"
	// DirectiveConfirmCancel asks the holder to confirm a cancellation.
	DirectiveConfirmCancel DirectiveKind = "confirm_cancel"
	// DirectiveNotice carries a standalone notice with no screen change.
	DirectiveNotice DirectiveKind = "notice"
)

// NoticeKind distinguishes the transient notices a directive can carry
// alongside its screen.
type NoticeKind string

const (
	// NoticeNothingAvailable: the chosen date has no offerable slots left.
	NoticeNothingAvailable NoticeKind = "nothing_available"
	// NoticeSlotTaken: the tapped slot is (or has just become) claimed.
	NoticeSlotTaken NoticeKind = "slot_taken"
	// NoticeStaleSelection: the action no longer matches the draft; the
	// flow restarts at the accompanying screen.
	NoticeStaleSelection NoticeKind = "stale_selection"
	// NoticeTryAgain: a transient infrastructure failure; the draft is
	// untouched and the holder can simply retry.
	NoticeTryAgain NoticeKind = "try_again"
	// NoticeCancelled: the booking was cancelled.
	NoticeCancelled NoticeKind = "cancelled"
	// NoticeCancelDenied: the booking does not exist or is not the
	// holder's to cancel.
	NoticeCancelDenied NoticeKind = "cancel_denied"
	// NoticeCancelAborted: the holder backed out of a cancellation.
	NoticeCancelAborted NoticeKind = "cancel_aborted"
)

// Location is the venue's map position, included with confirmations when
// the configured coordinates are valid.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Directive is the engine's answer to one inbound action: which screen to
// render, in which locale, with which data.  Unused fields are zero.
type Directive struct {
	Kind   DirectiveKind `json:"kind"`
	Locale model.Locale  `json:"locale,omitempty"`
	Notice NoticeKind    `json:"notice,omitempty"`

	Date      string               `json:"date,omitempty"`
	Slot      int                  `json:"slot,omitempty"`
	Slots     *availability.Result `json:"slots,omitempty"`
	Booking   *model.Booking       `json:"booking,omitempty"`
	BookingID uint64               `json:"booking_id,omitempty"`
	Bookings  []model.Booking      `json:"bookings,omitempty"`
	Location  *Location            `json:"location,omitempty"`
}
