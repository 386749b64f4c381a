package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of one calendar day in minutes.
const MinutesPerDay = 24 * 60

// Time is a day-independent wall-clock time, stored as minutes since
// midnight. It carries no date and no timezone; comparing two Times says
// nothing about which calendar day they fall on.
type Time int

// Midnight is the zero clock time, also the fallback for unparseable input.
const Midnight Time = 0

// Parse parses a "HH:mm" string. Missing, partial or malformed values
// normalize to midnight instead of failing: a single bad time on one
// attendance row must not abort processing of the rest of the period.
func Parse(s string) Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return Midnight
	}

	parts := strings.SplitN(s, ":", 2)
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return Midnight
	}

	minute := 0
	if len(parts) == 2 {
		minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || minute < 0 || minute > 59 {
			return Midnight
		}
	}

	return Time(hour*60 + minute)
}

// Minutes returns the offset from midnight in minutes.
func (t Time) Minutes() int {
	return int(t)
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalText implements encoding.TextMarshaler, emitting "HH:mm".
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same
// tolerant semantics as Parse.
func (t *Time) UnmarshalText(b []byte) error {
	*t = Parse(string(b))
	return nil
}

// IsValid reports whether s is a well-formed "HH:mm" value. Parse still
// accepts invalid input (normalizing to midnight); IsValid exists so the
// ingestion boundary can warn about values that will be normalized.
func IsValid(s string) bool {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return false
	}
	return true
}

// Window is a clock-time interval. End numerically earlier than Start
// means the window crosses midnight into the next calendar day.
type Window struct {
	Start Time
	End   Time
}

// Normalized returns the window as minute offsets from an arbitrary
// day-zero midnight, with the end pushed forward one day when the window
// crosses midnight. The returned end is always >= the returned start.
func (w Window) Normalized() (start, end int) {
	start = w.Start.Minutes()
	end = w.End.Minutes()
	if end < start {
		end += MinutesPerDay
	}
	return start, end
}

// Duration returns the elapsed minutes of the window on a 24-hour clock,
// treating a wrapped window as spanning midnight.
func (w Window) Duration() int {
	start, end := w.Normalized()
	return end - start
}
