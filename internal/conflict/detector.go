package conflict

import (
	"time"

	"github.com/lokalbooking/facility-booking-backend/internal/recurrence"
	"github.com/lokalbooking/facility-booking-backend/internal/timeslot"
)

// Mode tells how a proposal maps onto concrete dates.
type Mode string

const (
	ModeOneTime   Mode = "one-time"
	ModeDateRange Mode = "date-range"
	ModeRecurring Mode = "recurring"
)

// Proposal is the transient input to a conflict check. It only lives for
// the duration of a single call and is never persisted here.
type Proposal struct {
	FacilityID     string
	StartDate      time.Time
	TimeSlot       string
	Mode           Mode
	EndDate        *time.Time
	RecurrenceRule string
}

// BookingSlot is the caller-supplied snapshot of an existing reservation.
// A non-empty RecurrenceRule means Start/End describe the first occurrence
// and the rule generates the rest.
type BookingSlot struct {
	ID             string
	FacilityID     string
	Start          time.Time
	End            time.Time
	RecurrenceRule string
}

// Result is the verdict of a conflict check. InvalidProposal marks a
// recurring proposal that was missing its rule or end date; such a check
// still reports no conflict, but callers can tell it apart from a clean one.
type Result struct {
	HasConflict      bool
	InvalidProposal  bool
	ConflictingDates []time.Time
}

// CheckBookingConflict expands the proposal into concrete intervals and
// scans the existing bookings for the same facility until the first one
// that overlaps. Only that booking's occurrence starts are reported; the
// scan does not build a full cross product of every conflicting pair.
//
// The whole check is a pure function of its inputs: calling it twice with
// the same arguments returns the same result.
func CheckBookingConflict(p Proposal, existing []BookingSlot) Result {
	sameFacility := filterByFacility(existing, p.FacilityID)
	if len(sameFacility) == 0 {
		return Result{}
	}

	proposed, invalid := expandProposal(p)
	if invalid {
		return Result{InvalidProposal: true}
	}
	if len(proposed) == 0 {
		return Result{}
	}

	// An existing recurring booking is only expanded as far as the window
	// the new proposal covers; anything beyond it cannot affect the verdict.
	// The window bound is a plain date while occurrences carry the booking's
	// time of day, so stretch it to the end of its day or the occurrence on
	// the last day itself would be cut off.
	horizon := endOfDay(p.StartDate)
	if p.EndDate != nil {
		horizon = endOfDay(*p.EndDate)
	}

	for _, b := range sameFacility {
		slots := expandExisting(b, horizon)
		if timeslot.AnyOverlap(proposed, slots) {
			dates := make([]time.Time, len(slots))
			for i, s := range slots {
				dates[i] = s.Start
			}
			return Result{HasConflict: true, ConflictingDates: dates}
		}
	}

	return Result{}
}

func filterByFacility(existing []BookingSlot, facilityID string) []BookingSlot {
	var out []BookingSlot
	for _, b := range existing {
		if b.FacilityID == facilityID {
			out = append(out, b)
		}
	}
	return out
}

// expandProposal turns a proposal into its concrete intervals. Slots that
// fail to parse are dropped, not reported: the engine fails soft on
// malformed input throughout.
func expandProposal(p Proposal) (intervals []timeslot.Interval, invalid bool) {
	switch p.Mode {
	case ModeDateRange:
		end := p.StartDate
		if p.EndDate != nil {
			end = *p.EndDate
		}
		for day := p.StartDate; !day.After(end); day = day.AddDate(0, 0, 1) {
			if iv, ok := timeslot.Parse(day, p.TimeSlot); ok {
				intervals = append(intervals, iv)
			}
		}
		return intervals, false

	case ModeRecurring:
		if p.RecurrenceRule == "" || p.EndDate == nil {
			return nil, true
		}
		return recurrence.Expand(p.StartDate, p.TimeSlot, p.RecurrenceRule, *p.EndDate), false

	default: // one-time
		if iv, ok := timeslot.Parse(p.StartDate, p.TimeSlot); ok {
			intervals = append(intervals, iv)
		}
		return intervals, false
	}
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

func expandExisting(b BookingSlot, horizon time.Time) []timeslot.Interval {
	if b.RecurrenceRule == "" {
		return []timeslot.Interval{{Start: b.Start, End: b.End}}
	}
	slot := timeslot.FormatSlot(timeslot.Interval{Start: b.Start, End: b.End})
	return recurrence.Expand(b.Start, slot, b.RecurrenceRule, horizon)
}
