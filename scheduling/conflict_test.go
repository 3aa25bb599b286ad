package scheduling

import (
	"errors"
	"testing"
	"time"

	"educonnect/models"
)

var day = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

func session(id uint, startMin, endMin int) models.Session {
	s := models.Session{
		StartTime: At(day, startMin),
		EndTime:   At(day, endMin),
	}
	s.ID = id
	return s
}

func TestCheckConflict_DetectsOverlap(t *testing.T) {
	existing := []models.Session{session(1, 10*60, 11*60)}

	// [10:59, 11:01) overlaps by a single minute.
	res, err := CheckConflict(existing, day, 10*60+59, 11*60+1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Conflict {
		t.Fatalf("expected conflict")
	}
	if res.Session == nil || res.Session.ID != 1 {
		t.Fatalf("expected conflicting session 1, got %+v", res.Session)
	}
}

func TestCheckConflict_TouchingEndpointsDoNotConflict(t *testing.T) {
	existing := []models.Session{session(1, 10*60, 11*60)}

	// Back to back: [10:00, 11:00) then [11:00, 12:00).
	res, err := CheckConflict(existing, day, 11*60, 12*60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Conflict {
		t.Fatalf("touching sessions must not conflict")
	}

	// And the slot ending exactly at an existing start.
	res, err = CheckConflict(existing, day, 9*60, 10*60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Conflict {
		t.Fatalf("slot ending at an existing start must not conflict")
	}
}

func TestCheckConflict_ContainmentConflicts(t *testing.T) {
	existing := []models.Session{session(1, 10*60, 12*60)}

	// Proposal entirely inside an existing session.
	res, err := CheckConflict(existing, day, 10*60+30, 11*60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Conflict {
		t.Fatalf("contained slot must conflict")
	}

	// Proposal entirely covering an existing session.
	res, err = CheckConflict(existing, day, 9*60, 13*60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Conflict {
		t.Fatalf("covering slot must conflict")
	}
}

func TestCheckConflict_InvalidRangeBeforeScan(t *testing.T) {
	// Even against an empty calendar the range check fires first.
	_, err := CheckConflict(nil, day, 11*60, 10*60)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}

	_, err = CheckConflict(nil, day, 10*60, 10*60)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("zero length slot must be invalid, got %v", err)
	}
}

func TestCheckConflict_ReturnsFirstInSuppliedOrder(t *testing.T) {
	existing := []models.Session{
		session(3, 9*60, 10*60),
		session(7, 9*60+30, 10*60+30),
	}

	res, err := CheckConflict(existing, day, 9*60, 11*60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Conflict || res.Session == nil || res.Session.ID != 3 {
		t.Fatalf("expected first overlapping session 3, got %+v", res.Session)
	}
}

func TestCheckConflict_DifferentDaysDoNotConflict(t *testing.T) {
	existing := []models.Session{session(1, 10*60, 11*60)}

	nextDay := day.Add(24 * time.Hour)
	res, err := CheckConflict(existing, nextDay, 10*60, 11*60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Conflict {
		t.Fatalf("same wall clock on another day must not conflict")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 9*60 + 30, false},
		{"23:59", 23*60 + 59, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"930", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAt_CombinesDateAndMinutesInUTC(t *testing.T) {
	// A date expressed in another zone still resolves to the UTC calendar day.
	est := time.FixedZone("EST", -5*3600)
	localDay := time.Date(2026, 4, 10, 8, 0, 0, 0, est) // 13:00 UTC

	got := At(localDay, 90)
	want := time.Date(2026, 4, 10, 1, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("At() = %v, want %v", got, want)
	}
}
