package clock

import (
	"testing"
	"time"
)

func TestTodayAndTomorrow(t *testing.T) {
	zone := time.FixedZone("Asia/Yerevan", 4*60*60)
	c := Fixed{T: time.Date(2024, 6, 10, 23, 45, 0, 0, zone)}

	if got := Today(c); got != "2024-06-10" {
		t.Errorf("Today: expected 2024-06-10, got %s", got)
	}
	if got := Tomorrow(c); got != "2024-06-11" {
		t.Errorf("Tomorrow: expected 2024-06-11, got %s", got)
	}
}

func TestTomorrowAcrossMonthEnd(t *testing.T) {
	zone := time.FixedZone("Asia/Yerevan", 4*60*60)
	c := Fixed{T: time.Date(2024, 6, 30, 10, 0, 0, 0, zone)}

	if got := Tomorrow(c); got != "2024-07-01" {
		t.Errorf("Tomorrow: expected 2024-07-01, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	zone := time.FixedZone("Asia/Yerevan", 4*60*60)
	c := Fixed{T: time.Date(2024, 6, 10, 12, 0, 0, 0, zone)}

	day, err := ParseDate(c, "2024-06-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if day.Hour() != 0 || day.Location() != zone {
		t.Errorf("expected venue-local midnight, got %v", day)
	}

	if _, err := ParseDate(c, "15-06-2024"); err == nil {
		t.Error("expected error for malformed date")
	}
}
