package timeslot

import (
	"strings"
	"time"
)

const clockFormat = "15:04"

// Interval is a concrete time window on a specific calendar day.
// Invariant: End is strictly after Start.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Parse combines a calendar date with a "HH:MM-HH:MM" slot string into a
// concrete interval. Malformed input (missing separator, unparsable clock
// values, end not after start) yields (Interval{}, false) so callers can
// skip bad data instead of failing the whole operation.
func Parse(date time.Time, slot string) (Interval, bool) {
	from, to, found := strings.Cut(strings.TrimSpace(slot), "-")
	if !found {
		return Interval{}, false
	}

	start, ok := combine(date, strings.TrimSpace(from))
	if !ok {
		return Interval{}, false
	}
	end, ok := combine(date, strings.TrimSpace(to))
	if !ok {
		return Interval{}, false
	}

	if !end.After(start) {
		return Interval{}, false
	}

	return Interval{Start: start, End: end}, true
}

// combine applies a "HH:MM" clock value to the given date, keeping the
// date's location.
func combine(date time.Time, clock string) (time.Time, bool) {
	t, err := time.Parse(clockFormat, clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}

// DurationMinutes returns the interval length in whole minutes.
func (iv Interval) DurationMinutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

// Overlaps reports whether two intervals truly intersect. Touching
// endpoints do not count, so back-to-back bookings are allowed.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// AnyOverlap reports whether any interval in a intersects any interval in b.
func AnyOverlap(a, b []Interval) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Overlaps(y) {
				return true
			}
		}
	}
	return false
}

// FormatSlot renders a concrete interval back into its "HH:MM-HH:MM" form.
func FormatSlot(iv Interval) string {
	return iv.Start.Format(clockFormat) + "-" + iv.End.Format(clockFormat)
}
