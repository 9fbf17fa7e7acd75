package model

// Stage identifies how far a holder has progressed through the booking
// flow.  Each stage carries exactly the fields collected so far, so a
// draft can never hold a party size without a slot or a slot without a
// date.
type Stage string

const (
	// StageDate means nothing has been selected yet; the next input is a
	// calendar date.
	StageDate Stage = "date"
	// StageSlot means a date is chosen and the next input is a slot.
	StageSlot Stage = "slot"
	// StagePartySize means date and slot are chosen and the next input is
	// the party size, after which the draft is committed.
	StagePartySize Stage = "party_size"
)

// Draft is a holder's in-progress reservation.  It is built through the
// constructors below rather than by mutating fields, so the stage tag and
// the populated fields always agree.  Fields are exported only so session
// stores can serialize the value.
type Draft struct {
	Stage Stage  `json:"stage"`
	Date  string `json:"date,omitempty"`
	Slot  int    `json:"slot,omitempty"`
}

// NewDraft returns an empty draft awaiting a date selection.
func NewDraft() Draft {
	return Draft{Stage: StageDate}
}

// WithDate advances the draft to slot selection for the given date.  Any
// previously chosen slot is discarded.
func (d Draft) WithDate(date string) Draft {
	return Draft{Stage: StageSlot, Date: date}
}

// WithSlot advances the draft to party-size selection.  The draft must
// already carry a date; callers are expected to check SelectedDate first.
func (d Draft) WithSlot(hour int) Draft {
	return Draft{Stage: StagePartySize, Date: d.Date, Slot: hour}
}

// SelectedDate returns the chosen date when the draft has progressed past
// date selection.
func (d Draft) SelectedDate() (string, bool) {
	if d.Stage == StageSlot || d.Stage == StagePartySize {
		return d.Date, true
	}
	return "", false
}

// SelectedSlot returns the chosen date and slot when the draft is awaiting
// a party size.
func (d Draft) SelectedSlot() (string, int, bool) {
	if d.Stage != StagePartySize {
		return "", 0, false
	}
	return d.Date, d.Slot, true
}
