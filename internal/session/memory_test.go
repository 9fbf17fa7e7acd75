package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/venue-booking-bot/internal/model"
)

func TestMemoryStoreDraftLifecycle(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	if _, ok, _ := s.Draft(ctx, 1); ok {
		t.Fatal("expected no draft initially")
	}

	d := model.NewDraft().WithDate("2024-06-11")
	if err := s.PutDraft(ctx, 1, d); err != nil {
		t.Fatalf("PutDraft: %v", err)
	}
	got, ok, _ := s.Draft(ctx, 1)
	if !ok || got.Stage != model.StageSlot || got.Date != "2024-06-11" {
		t.Fatalf("unexpected draft: %+v (ok=%v)", got, ok)
	}

	if err := s.ClearDraft(ctx, 1); err != nil {
		t.Fatalf("ClearDraft: %v", err)
	}
	if _, ok, _ := s.Draft(ctx, 1); ok {
		t.Fatal("expected draft cleared")
	}
	// Clearing again is a no-op.
	if err := s.ClearDraft(ctx, 1); err != nil {
		t.Fatalf("second ClearDraft: %v", err)
	}
}

func TestMemoryStoreHolderIsolation(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	_ = s.PutDraft(ctx, 1, model.NewDraft().WithDate("2024-06-11"))
	_ = s.PutDraft(ctx, 2, model.NewDraft().WithDate("2024-06-12"))

	d1, _, _ := s.Draft(ctx, 1)
	d2, _, _ := s.Draft(ctx, 2)
	if d1.Date == d2.Date {
		t.Fatal("drafts leaked between holders")
	}

	_ = s.ClearDraft(ctx, 1)
	if _, ok, _ := s.Draft(ctx, 2); !ok {
		t.Fatal("clearing holder 1 must not touch holder 2")
	}
}

func TestMemoryStoreLocaleSurvivesDraftClear(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	if _, ok, _ := s.Locale(ctx, 7); ok {
		t.Fatal("expected locale unset initially")
	}
	_ = s.SetLocale(ctx, 7, model.LocaleRussian)
	_ = s.PutDraft(ctx, 7, model.NewDraft())
	_ = s.ClearDraft(ctx, 7)

	loc, ok, _ := s.Locale(ctx, 7)
	if !ok || loc != model.LocaleRussian {
		t.Fatalf("expected locale ru to survive draft clear, got %q (ok=%v)", loc, ok)
	}
}

func TestMemoryStoreIdleExpiry(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	_ = s.PutDraft(ctx, 1, model.NewDraft())
	_ = s.SetLocale(ctx, 1, model.LocaleEnglish)

	// Drive the janitor's sweep directly with a time past the TTL.
	s.expire(time.Now().Add(2 * time.Minute))

	if _, ok, _ := s.Draft(ctx, 1); ok {
		t.Fatal("expected idle draft to expire")
	}
	if _, ok, _ := s.Locale(ctx, 1); !ok {
		t.Fatal("locale preference must not expire")
	}
}

func TestMemoryStoreConcurrentHolders(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	defer s.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		holder := int64(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.PutDraft(ctx, holder, model.NewDraft().WithDate("2024-06-11"))
				_, _, _ = s.Draft(ctx, holder)
				_ = s.SetLocale(ctx, holder, model.LocaleArmenian)
				_, _, _ = s.Locale(ctx, holder)
				_ = s.ClearDraft(ctx, holder)
			}
		}()
	}
	wg.Wait()
}
