package timezone

import (
	"testing"
	"time"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	if got := Location("Not/AZone").String(); got != DefaultTimezone {
		t.Errorf("expected %s, got %s", DefaultTimezone, got)
	}
	if got := Location("").String(); got != DefaultTimezone {
		t.Errorf("expected %s, got %s", DefaultTimezone, got)
	}
}

func TestParseDateTime(t *testing.T) {
	loc := time.FixedZone("shop", -3*3600)

	rfc, err := ParseDateTime("2026-03-10T14:30:00Z", loc)
	if err != nil {
		t.Fatalf("rfc3339: unexpected error %v", err)
	}
	if !rfc.Equal(time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("rfc3339: got %v", rfc)
	}

	local, err := ParseDateTime("2026-03-10 14:30", loc)
	if err != nil {
		t.Fatalf("local: unexpected error %v", err)
	}
	if !local.Equal(time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)) {
		t.Errorf("local: got %v", local.UTC())
	}

	if _, err := ParseDateTime("tomorrow at noon", loc); err != ErrInvalidDateTime {
		t.Errorf("expected ErrInvalidDateTime, got %v", err)
	}
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("shop", 2*3600)
	start, end := DayWindow(time.Date(2026, 1, 31, 23, 59, 0, 0, loc))

	if !start.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, loc)) {
		t.Errorf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("unexpected end %v", end)
	}
}
