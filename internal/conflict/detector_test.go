package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestCheckBookingConflictOneTime(t *testing.T) {
	existing := []BookingSlot{
		{
			ID:         "b1",
			FacilityID: "facility-1",
			Start:      at(2025, 6, 2, 15, 0),
			End:        at(2025, 6, 2, 17, 0),
		},
	}

	t.Run("overlapping booking conflicts", func(t *testing.T) {
		res := CheckBookingConflict(Proposal{
			FacilityID: "facility-1",
			StartDate:  date(2025, 6, 2),
			TimeSlot:   "14:00-16:00",
			Mode:       ModeOneTime,
		}, existing)

		require.True(t, res.HasConflict)
		require.False(t, res.InvalidProposal)
		require.Equal(t, []time.Time{at(2025, 6, 2, 15, 0)}, res.ConflictingDates)
	})

	t.Run("back to back booking does not conflict", func(t *testing.T) {
		back := []BookingSlot{
			{
				ID:         "b2",
				FacilityID: "facility-1",
				Start:      at(2025, 6, 2, 16, 0),
				End:        at(2025, 6, 2, 18, 0),
			},
		}

		res := CheckBookingConflict(Proposal{
			FacilityID: "facility-1",
			StartDate:  date(2025, 6, 2),
			TimeSlot:   "14:00-16:00",
			Mode:       ModeOneTime,
		}, back)

		require.False(t, res.HasConflict)
	})

	t.Run("other facility is ignored", func(t *testing.T) {
		res := CheckBookingConflict(Proposal{
			FacilityID: "facility-2",
			StartDate:  date(2025, 6, 2),
			TimeSlot:   "14:00-16:00",
			Mode:       ModeOneTime,
		}, existing)

		require.False(t, res.HasConflict)
	})

	t.Run("no existing bookings short circuits", func(t *testing.T) {
		res := CheckBookingConflict(Proposal{
			FacilityID: "facility-1",
			StartDate:  date(2025, 6, 2),
			TimeSlot:   "garbage slot",
			Mode:       ModeOneTime,
		}, nil)

		// The malformed slot is never even parsed.
		require.False(t, res.HasConflict)
	})

	t.Run("malformed slot degrades to no conflict", func(t *testing.T) {
		res := CheckBookingConflict(Proposal{
			FacilityID: "facility-1",
			StartDate:  date(2025, 6, 2),
			TimeSlot:   "not-a-slot",
			Mode:       ModeOneTime,
		}, existing)

		require.False(t, res.HasConflict)
	})
}

func TestCheckBookingConflictDateRange(t *testing.T) {
	existing := []BookingSlot{
		{
			ID:         "b1",
			FacilityID: "facility-1",
			Start:      at(2025, 6, 4, 9, 30),
			End:        at(2025, 6, 4, 11, 0),
		},
	}

	end := date(2025, 6, 6)
	res := CheckBookingConflict(Proposal{
		FacilityID: "facility-1",
		StartDate:  date(2025, 6, 2),
		TimeSlot:   "09:00-10:00",
		Mode:       ModeDateRange,
		EndDate:    &end,
	}, existing)

	require.True(t, res.HasConflict)
}

func TestCheckBookingConflictRecurring(t *testing.T) {
	t.Run("weekly proposal hits one-time booking", func(t *testing.T) {
		existing := []BookingSlot{
			{
				ID:         "b1",
				FacilityID: "facility-1",
				Start:      at(2025, 1, 20, 19, 0),
				End:        at(2025, 1, 20, 21, 0),
			},
		}

		end := date(2025, 2, 1)
		res := CheckBookingConflict(Proposal{
			FacilityID:     "facility-1",
			StartDate:      date(2025, 1, 6),
			TimeSlot:       "18:00-20:00",
			Mode:           ModeRecurring,
			EndDate:        &end,
			RecurrenceRule: "FREQ=WEEKLY;INTERVAL=1;COUNT=3",
		}, existing)

		require.True(t, res.HasConflict)
	})

	t.Run("one-time proposal hits stored recurring booking", func(t *testing.T) {
		existing := []BookingSlot{
			{
				ID:             "b1",
				FacilityID:     "facility-1",
				Start:          at(2025, 1, 6, 18, 0),
				End:            at(2025, 1, 6, 20, 0),
				RecurrenceRule: "FREQ=WEEKLY;INTERVAL=1",
			},
		}

		end := date(2025, 1, 31)
		res := CheckBookingConflict(Proposal{
			FacilityID: "facility-1",
			StartDate:  date(2025, 1, 20),
			TimeSlot:   "19:00-20:30",
			Mode:       ModeOneTime,
			EndDate:    &end,
		}, existing)

		require.True(t, res.HasConflict)
		// All expanded occurrence starts of the conflicting booking are reported.
		require.NotEmpty(t, res.ConflictingDates)
	})

	t.Run("recurring occurrence on the proposal day itself conflicts", func(t *testing.T) {
		// Weekly Monday booking 18:00-20:00; a one-time proposal lands on a
		// later Monday with no end date, so the expansion window is just
		// that one day and must still include the occurrence on it.
		existing := []BookingSlot{
			{
				ID:             "b1",
				FacilityID:     "facility-1",
				Start:          at(2025, 1, 6, 18, 0),
				End:            at(2025, 1, 6, 20, 0),
				RecurrenceRule: "FREQ=WEEKLY;INTERVAL=1",
			},
		}

		res := CheckBookingConflict(Proposal{
			FacilityID: "facility-1",
			StartDate:  date(2025, 1, 20),
			TimeSlot:   "19:00-20:30",
			Mode:       ModeOneTime,
		}, existing)

		require.True(t, res.HasConflict)
		require.Contains(t, res.ConflictingDates, at(2025, 1, 20, 18, 0))
	})

	t.Run("recurring occurrence on the range's last day conflicts", func(t *testing.T) {
		// Monthly booking occurring on the 30th at 14:00; the only overlap
		// sits exactly on the date range's end day.
		existing := []BookingSlot{
			{
				ID:             "b1",
				FacilityID:     "facility-1",
				Start:          at(2025, 4, 30, 14, 0),
				End:            at(2025, 4, 30, 16, 0),
				RecurrenceRule: "FREQ=MONTHLY;INTERVAL=1",
			},
		}

		end := date(2025, 6, 30)
		res := CheckBookingConflict(Proposal{
			FacilityID: "facility-1",
			StartDate:  date(2025, 6, 28),
			TimeSlot:   "15:00-17:00",
			Mode:       ModeDateRange,
			EndDate:    &end,
		}, existing)

		require.True(t, res.HasConflict)
		require.Contains(t, res.ConflictingDates, at(2025, 6, 30, 14, 0))
	})

	t.Run("missing rule marks proposal invalid", func(t *testing.T) {
		end := date(2025, 2, 1)
		res := CheckBookingConflict(Proposal{
			FacilityID: "facility-1",
			StartDate:  date(2025, 1, 6),
			TimeSlot:   "18:00-20:00",
			Mode:       ModeRecurring,
			EndDate:    &end,
		}, []BookingSlot{{ID: "b1", FacilityID: "facility-1", Start: at(2025, 1, 6, 18, 0), End: at(2025, 1, 6, 20, 0)}})

		require.False(t, res.HasConflict)
		require.True(t, res.InvalidProposal)
	})

	t.Run("missing end date marks proposal invalid", func(t *testing.T) {
		res := CheckBookingConflict(Proposal{
			FacilityID:     "facility-1",
			StartDate:      date(2025, 1, 6),
			TimeSlot:       "18:00-20:00",
			Mode:           ModeRecurring,
			RecurrenceRule: "FREQ=WEEKLY;INTERVAL=1",
		}, []BookingSlot{{ID: "b1", FacilityID: "facility-1", Start: at(2025, 1, 6, 18, 0), End: at(2025, 1, 6, 20, 0)}})

		require.False(t, res.HasConflict)
		require.True(t, res.InvalidProposal)
	})
}

func TestCheckBookingConflictIdempotent(t *testing.T) {
	existing := []BookingSlot{
		{
			ID:         "b1",
			FacilityID: "facility-1",
			Start:      at(2025, 6, 2, 15, 0),
			End:        at(2025, 6, 2, 17, 0),
		},
	}
	p := Proposal{
		FacilityID: "facility-1",
		StartDate:  date(2025, 6, 2),
		TimeSlot:   "14:00-16:00",
		Mode:       ModeOneTime,
	}

	first := CheckBookingConflict(p, existing)
	second := CheckBookingConflict(p, existing)
	require.Equal(t, first, second)
}

func TestCheckBookingConflictFirstMatchWins(t *testing.T) {
	existing := []BookingSlot{
		{ID: "b1", FacilityID: "facility-1", Start: at(2025, 6, 2, 15, 0), End: at(2025, 6, 2, 17, 0)},
		{ID: "b2", FacilityID: "facility-1", Start: at(2025, 6, 2, 14, 30), End: at(2025, 6, 2, 15, 30)},
	}

	res := CheckBookingConflict(Proposal{
		FacilityID: "facility-1",
		StartDate:  date(2025, 6, 2),
		TimeSlot:   "14:00-16:00",
		Mode:       ModeOneTime,
	}, existing)

	// Only the first conflicting booking's occurrences are reported, not
	// every conflicting pair.
	require.True(t, res.HasConflict)
	require.Equal(t, []time.Time{at(2025, 6, 2, 15, 0)}, res.ConflictingDates)
}
