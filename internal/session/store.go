// Package session owns the per-holder conversational state: the single
// in-progress booking draft and the holder's locale preference.  Drafts
// are keyed strictly by holder identity with no cross-holder visibility;
// the locale outlives drafts and governs rendering until changed.
//
// Two implementations exist.  MemoryStore keeps everything in-process and
// bounds growth with an idle-expiry janitor.  RedisStore keeps drafts in
// Redis with a TTL so state survives restarts and can be shared between
// replicas.  Both are safe for concurrent access from independent
// holders.
package session

import (
	"context"
	"time"

	"github.com/iliyamo/venue-booking-bot/internal/model"
)

// DefaultDraftTTL bounds how long an untouched draft survives.  A holder
// who walks away mid-booking loses only the draft; their locale is kept.
const DefaultDraftTTL = 30 * time.Minute

// Store is the session manager's contract.  Lookup methods return a
// second boolean reporting whether a value was present, mirroring map
// access; the error is reserved for infrastructure failures (Redis).
type Store interface {
	// Draft returns the holder's in-progress draft, if any.
	Draft(ctx context.Context, holderID int64) (model.Draft, bool, error)
	// PutDraft stores or replaces the holder's draft and refreshes its
	// idle-expiry deadline.
	PutDraft(ctx context.Context, holderID int64, d model.Draft) error
	// ClearDraft removes the holder's draft.  Clearing a missing draft is
	// a no-op.
	ClearDraft(ctx context.Context, holderID int64) error
	// Locale returns the holder's locale preference, if set.
	Locale(ctx context.Context, holderID int64) (model.Locale, bool, error)
	// SetLocale records the holder's locale preference.  It does not
	// expire.
	SetLocale(ctx context.Context, holderID int64, loc model.Locale) error
}
