package session

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/venue-booking-bot/internal/model"
)

type draftEntry struct {
	draft   model.Draft
	touched time.Time
}

// MemoryStore is the in-process Store.  A single RWMutex guards both maps;
// per-holder operations are cheap enough that finer locking buys nothing.
// A janitor goroutine drops drafts idle for longer than the TTL so the
// map cannot grow without bound.
type MemoryStore struct {
	mu      sync.RWMutex
	drafts  map[int64]draftEntry
	locales map[int64]model.Locale

	ttl  time.Duration
	done chan struct{}
}

// NewMemoryStore builds a MemoryStore and starts its janitor.  A ttl of
// zero falls back to DefaultDraftTTL.  Call Close to stop the janitor.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	s := &MemoryStore{
		drafts:  make(map[int64]draftEntry),
		locales: make(map[int64]model.Locale),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() {
	close(s.done)
}

func (s *MemoryStore) janitor() {
	t := time.NewTicker(s.ttl / 2)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-t.C:
			s.expire(now)
		}
	}
}

func (s *MemoryStore) expire(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.drafts {
		if now.Sub(e.touched) > s.ttl {
			delete(s.drafts, id)
		}
	}
}

func (s *MemoryStore) Draft(_ context.Context, holderID int64) (model.Draft, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.drafts[holderID]
	if !ok {
		return model.Draft{}, false, nil
	}
	return e.draft, true, nil
}

func (s *MemoryStore) PutDraft(_ context.Context, holderID int64, d model.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[holderID] = draftEntry{draft: d, touched: time.Now()}
	return nil
}

func (s *MemoryStore) ClearDraft(_ context.Context, holderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, holderID)
	return nil
}

func (s *MemoryStore) Locale(_ context.Context, holderID int64) (model.Locale, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.locales[holderID]
	return loc, ok, nil
}

func (s *MemoryStore) SetLocale(_ context.Context, holderID int64, loc model.Locale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locales[holderID] = loc
	return nil
}
