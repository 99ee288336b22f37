package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		slot     string
		wantOK   bool
		wantFrom string
		wantTo   string
	}{
		{name: "valid one hour slot", slot: "09:00-10:00", wantOK: true, wantFrom: "09:00", wantTo: "10:00"},
		{name: "valid evening slot", slot: "18:00-20:00", wantOK: true, wantFrom: "18:00", wantTo: "20:00"},
		{name: "spaces around separator", slot: "09:00 - 10:00", wantOK: true, wantFrom: "09:00", wantTo: "10:00"},
		{name: "missing separator", slot: "09:00 10:00", wantOK: false},
		{name: "unparsable start", slot: "9am-10:00", wantOK: false},
		{name: "unparsable end", slot: "09:00-ten", wantOK: false},
		{name: "empty string", slot: "", wantOK: false},
		{name: "end before start", slot: "20:00-18:00", wantOK: false},
		{name: "zero length slot", slot: "10:00-10:00", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, ok := Parse(testDate, tt.slot)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			require.Equal(t, tt.wantFrom, iv.Start.Format("15:04"))
			require.Equal(t, tt.wantTo, iv.End.Format("15:04"))
			require.Equal(t, testDate.Day(), iv.Start.Day())
			require.Equal(t, testDate.Day(), iv.End.Day())
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	iv, ok := Parse(testDate, "09:00-10:00")
	require.True(t, ok)
	require.Equal(t, 60, iv.DurationMinutes())

	iv, ok = Parse(testDate, "18:00-20:30")
	require.True(t, ok)
	require.Equal(t, 150, iv.DurationMinutes())
}

func TestOverlaps(t *testing.T) {
	mk := func(slot string) Interval {
		iv, ok := Parse(testDate, slot)
		require.True(t, ok)
		return iv
	}

	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "partial overlap", a: "14:00-16:00", b: "15:00-17:00", want: true},
		{name: "contained", a: "14:00-18:00", b: "15:00-16:00", want: true},
		{name: "identical", a: "14:00-16:00", b: "14:00-16:00", want: true},
		{name: "back to back after", a: "14:00-16:00", b: "16:00-18:00", want: false},
		{name: "back to back before", a: "14:00-16:00", b: "12:00-14:00", want: false},
		{name: "disjoint", a: "08:00-09:00", b: "12:00-13:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, mk(tt.a).Overlaps(mk(tt.b)))
			// Overlap is symmetric.
			require.Equal(t, tt.want, mk(tt.b).Overlaps(mk(tt.a)))
		})
	}
}

func TestAnyOverlap(t *testing.T) {
	mk := func(slot string) Interval {
		iv, ok := Parse(testDate, slot)
		require.True(t, ok)
		return iv
	}

	a := []Interval{mk("08:00-09:00"), mk("14:00-16:00")}
	b := []Interval{mk("09:00-10:00"), mk("15:30-17:00")}
	require.True(t, AnyOverlap(a, b))

	c := []Interval{mk("09:00-10:00"), mk("16:00-17:00")}
	require.False(t, AnyOverlap(a, c))

	require.False(t, AnyOverlap(nil, b))
	require.False(t, AnyOverlap(a, nil))
}

func TestFormatSlot(t *testing.T) {
	iv, ok := Parse(testDate, "09:00-10:00")
	require.True(t, ok)
	require.Equal(t, "09:00-10:00", FormatSlot(iv))
}
