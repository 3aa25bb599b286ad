package scheduling

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"educonnect/models"
)

// ErrInvalidTimeRange is returned when a proposal's end is not strictly after
// its start. The conflict scan never runs in that case.
var ErrInvalidTimeRange = errors.New("session end must be after start")

// Result reports the outcome of a conflict check. Session is the first
// overlapping session in the order the caller supplied, nil when clear.
type Result struct {
	Conflict bool            `json:"conflict"`
	Session  *models.Session `json:"conflicting_session,omitempty"`
}

// CheckConflict tests a proposed session slot against a tutor's existing
// sessions. The proposal is a calendar date plus start/end in minutes since
// midnight; both are interpreted in UTC, matching how stored session instants
// are kept. This is an advisory pre-flight only: the persistence layer must
// re-check inside its transaction, since two concurrent proposals can both
// pass here.
func CheckConflict(existing []models.Session, date time.Time, startMin, endMin int) (Result, error) {
	if endMin <= startMin {
		return Result{}, ErrInvalidTimeRange
	}

	start := At(date, startMin)
	end := At(date, endMin)

	// Half-open intervals: [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
	// Touching endpoints do not conflict.
	for i := range existing {
		s := existing[i]
		if start.Before(s.EndTime) && s.StartTime.Before(end) {
			return Result{Conflict: true, Session: &existing[i]}, nil
		}
	}
	return Result{}, nil
}

// At combines a calendar date with minutes since midnight into a UTC instant.
func At(date time.Time, minutes int) time.Time {
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, time.UTC)
}

// ParseTimeOfDay parses "HH:MM" into minutes since midnight.
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
