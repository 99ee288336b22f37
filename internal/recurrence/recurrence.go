package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/timeslot"
)

// Frequency is the repetition unit of a recurrence rule.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// untilFormat is the iCalendar basic date-time form used in UNTIL fields.
const untilFormat = "20060102T150405Z"

// Rule is a parsed recurrence rule. Count and Until are both optional;
// a zero Count and zero Until mean the expansion horizon alone bounds the
// occurrence set.
type Rule struct {
	Frequency Frequency
	Interval  int
	Count     int
	Until     time.Time
}

// ParseRule parses an iCalendar-style rule string of the form
// "FREQ=WEEKLY;INTERVAL=2;COUNT=5" or with ";UNTIL=20250601T000000Z".
// Parsing is best effort: unknown frequency codes fall back to monthly and
// unparsable fields are skipped, so stored rules never make a check fail.
func ParseRule(s string) Rule {
	rule := Rule{Frequency: Monthly, Interval: 1}

	for _, part := range strings.Split(s, ";") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "FREQ":
			switch strings.ToUpper(strings.TrimSpace(value)) {
			case "DAILY":
				rule.Frequency = Daily
			case "WEEKLY":
				rule.Frequency = Weekly
			case "MONTHLY":
				rule.Frequency = Monthly
			}
		case "INTERVAL":
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
				rule.Interval = n
			}
		case "COUNT":
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
				rule.Count = n
			}
		case "UNTIL":
			if t, err := time.Parse(untilFormat, strings.TrimSpace(value)); err == nil {
				rule.Until = t
			}
		}
	}

	return rule
}

// FormatRule builds the canonical rule string for the given parameters.
// Count and Until are mutually exclusive; Count wins when both are set so
// the rule always has an unambiguous termination.
func FormatRule(freq Frequency, interval, count int, until time.Time) string {
	if interval < 1 {
		interval = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "FREQ=%s;INTERVAL=%d", strings.ToUpper(string(freq)), interval)

	switch {
	case count > 0:
		fmt.Fprintf(&b, ";COUNT=%d", count)
	case !until.IsZero():
		fmt.Fprintf(&b, ";UNTIL=%s", until.UTC().Format(untilFormat))
	}

	return b.String()
}

// Expand materializes the finite occurrence list for a recurring booking:
// the rule seeds iteration at startDate and the slot's time of day is
// re-applied to every occurrence date up to horizon (inclusive). An
// unparsable slot yields an empty result.
func Expand(startDate time.Time, slot string, rule string, horizon time.Time) []timeslot.Interval {
	if _, ok := timeslot.Parse(startDate, slot); !ok {
		return nil
	}

	r := ParseRule(rule)

	var out []timeslot.Interval
	current := startDate

	for !current.After(horizon) {
		if !r.Until.IsZero() && current.After(r.Until) {
			break
		}
		if r.Count > 0 && len(out) >= r.Count {
			break
		}

		if iv, ok := timeslot.Parse(current, slot); ok {
			out = append(out, iv)
		}

		switch r.Frequency {
		case Daily:
			current = current.AddDate(0, 0, r.Interval)
		case Weekly:
			current = current.AddDate(0, 0, 7*r.Interval)
		default:
			current = current.AddDate(0, r.Interval, 0)
		}
	}

	return out
}

// Describe renders a rule as Norwegian display text, e.g. "Hver uke" or
// "Annenhver måned".
func Describe(freq Frequency, interval int) string {
	var unit, plural string
	switch freq {
	case Daily:
		unit, plural = "dag", "dag"
	case Weekly:
		unit, plural = "uke", "uke"
	default:
		unit, plural = "måned", "måned"
	}

	switch {
	case interval <= 1:
		return "Hver " + unit
	case interval == 2:
		return "Annenhver " + unit
	default:
		return fmt.Sprintf("Hver %d. %s", interval, plural)
	}
}
