// Package timeslot generates the candidate appointment start times of a
// workday. It is pure wall-clock arithmetic: no dates, no timezones, no I/O.
package timeslot

import (
	"fmt"
	"time"
)

// Clock is a minute-of-day value: "14:30" parses to 870.
type Clock int

// Parse converts a zero-padded 24-hour "HH:MM" string to a Clock.
// time.Parse alone would admit "9:30"; the length guard keeps the
// accepted format aligned with what String produces.
func Parse(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock value %q: want zero-padded HH:MM", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c/60, c%60)
}

// Sequence returns every slot start between start and end, stepping by
// slotMinutes. A start is emitted only while the whole slot still fits
// before end; a trailing remainder shorter than one slot is dropped.
// Degenerate windows (end at or before start, non-positive step) yield
// no slots rather than an error.
func Sequence(start, end Clock, slotMinutes int) []Clock {
	if slotMinutes <= 0 || end <= start {
		return nil
	}

	var slots []Clock
	step := Clock(slotMinutes)
	for t := start; t+step <= end; t += step {
		slots = append(slots, t)
	}
	return slots
}

// Strings formats a slot sequence the way the API hands it to clients.
func Strings(slots []Clock) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
