package conflict

import (
	"fmt"
	"strings"
	"time"
)

// Window is a suggested alternative time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// maxFacilitySuggestions caps how many alternative facilities are listed by
// name before the rest are folded into an overflow count.
const maxFacilitySuggestions = 3

// AlternativeTimes proposes exactly two alternatives for a conflicting
// booking: one shifted earlier by the booking's own duration and one
// shifted later by the same amount. The suggestions are NOT re-checked for
// conflicts here; that is the caller's job.
func AlternativeTimes(start, end time.Time) []Window {
	duration := end.Sub(start)
	return []Window{
		{Start: start.Add(-duration), End: start},
		{Start: end, End: end.Add(duration)},
	}
}

// Recommendations assembles Norwegian advisory text for a detected
// conflict: how many occurrences collide, a time-shift suggestion, other
// free facilities, and day/time specific advice. Purely informational;
// nothing downstream depends on the exact wording.
func Recommendations(conflictCount int, alternatives []Window, otherFacilities []string, start time.Time, slot string) []string {
	var recs []string

	switch conflictCount {
	case 0:
		// Nothing to advise on.
	case 1:
		recs = append(recs, "Det er 1 eksisterende booking som overlapper med ønsket tidspunkt.")
	default:
		recs = append(recs, fmt.Sprintf("Det er %d eksisterende bookinger som overlapper med ønsket tidspunkt.", conflictCount))
	}

	if len(alternatives) > 0 {
		parts := make([]string, len(alternatives))
		for i, w := range alternatives {
			parts[i] = fmt.Sprintf("%s-%s", w.Start.Format("15:04"), w.End.Format("15:04"))
		}
		recs = append(recs, fmt.Sprintf("Prøv å forskyve tidspunktet, for eksempel til %s.", strings.Join(parts, " eller ")))
	}

	if len(otherFacilities) > 0 {
		shown := otherFacilities
		overflow := 0
		if len(shown) > maxFacilitySuggestions {
			overflow = len(shown) - maxFacilitySuggestions
			shown = shown[:maxFacilitySuggestions]
		}
		msg := "Andre lokaler kan være ledige: " + strings.Join(shown, ", ")
		if overflow > 0 {
			msg += fmt.Sprintf(" og %d til", overflow)
		}
		recs = append(recs, msg+".")
	}

	if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		recs = append(recs, "Helger er ofte fullbooket. Vurder en ukedag i stedet.")
	}

	if isEveningSlot(slot) {
		recs = append(recs, "Kveldstid (17:00-22:00) er mest etterspurt. Det er ofte bedre kapasitet på dagtid.")
	}

	return recs
}

// isEveningSlot reports whether the slot starts in the 17:00-22:00 window.
func isEveningSlot(slot string) bool {
	from, _, found := strings.Cut(slot, "-")
	if !found {
		return false
	}
	t, err := time.Parse("15:04", strings.TrimSpace(from))
	if err != nil {
		return false
	}
	return t.Hour() >= 17 && t.Hour() < 22
}
