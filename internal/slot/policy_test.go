package slot

import (
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/venue-booking-bot/internal/clock"
)

// yerevan matches the venue's UTC+4 offset without depending on the
// host's tzdata.
var yerevan = time.FixedZone("Asia/Yerevan", 4*60*60)

func fixedAt(hour, min int) clock.Fixed {
	return clock.Fixed{T: time.Date(2024, 6, 10, hour, min, 0, 0, yerevan)}
}

func TestNewPolicyRejectsBadWindow(t *testing.T) {
	cases := []struct{ open, close int }{
		{-1, 22},
		{10, 24},
		{20, 10},
	}
	for _, c := range cases {
		if _, err := NewPolicy(c.open, c.close); err == nil {
			t.Errorf("NewPolicy(%d, %d): expected error", c.open, c.close)
		}
	}
	if _, err := NewPolicy(10, 22); err != nil {
		t.Fatalf("NewPolicy(10, 22): %v", err)
	}
}

func TestCandidatesFutureDateFullWindow(t *testing.T) {
	p, _ := NewPolicy(10, 22)
	hours, err := p.Candidates(fixedAt(12, 0), "2024-06-11")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(hours) != 13 {
		t.Fatalf("expected 13 hours, got %d", len(hours))
	}
	if hours[0] != 10 || hours[12] != 22 {
		t.Errorf("expected hours 10..22, got %v", hours)
	}
	for i := 1; i < len(hours); i++ {
		if hours[i] <= hours[i-1] {
			t.Fatalf("hours not strictly ascending: %v", hours)
		}
	}
}

func TestCandidatesPastDateEmpty(t *testing.T) {
	p, _ := NewPolicy(10, 22)
	hours, err := p.Candidates(fixedAt(12, 0), "2024-06-09")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(hours) != 0 {
		t.Errorf("expected no hours for a past date, got %v", hours)
	}
}

func TestCandidatesTodayFiltersElapsedHours(t *testing.T) {
	p, _ := NewPolicy(10, 22)

	// At 21:30 only the 22:00 slot remains.
	hours, err := p.Candidates(fixedAt(21, 30), "2024-06-10")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(hours) != 1 || hours[0] != 22 {
		t.Errorf("at 21:30 expected [22], got %v", hours)
	}

	// At exactly 22:00 the 22:00 slot is no longer strictly in the future.
	hours, err = p.Candidates(fixedAt(22, 0), "2024-06-10")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(hours) != 0 {
		t.Errorf("at 22:00 expected no hours, got %v", hours)
	}

	// Early morning leaves the full window.
	hours, err = p.Candidates(fixedAt(8, 0), "2024-06-10")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(hours) != 13 {
		t.Errorf("at 08:00 expected all 13 hours, got %v", hours)
	}
}

func TestCandidatesBadDate(t *testing.T) {
	p, _ := NewPolicy(10, 22)
	for _, raw := range []string{"", "tomorrow", "2024-6-1", "2024-13-40"} {
		if _, err := p.Candidates(fixedAt(12, 0), raw); !errors.Is(err, ErrBadDate) {
			t.Errorf("Candidates(%q): expected ErrBadDate, got %v", raw, err)
		}
	}
}
