package onair

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Program.Name
	}
	return out
}

func TestUpcomingExcludesFillerAndOrders(t *testing.T) {
	slots := []Slot{
		slot("Tuesday", "B", "9:00 AM", "10:00 AM"),
		allDayFiller(),
		slot("Monday", "A", "10:00 AM", "11:00 AM"),
	}
	now := at(time.Monday, 9, 0)

	got := Upcoming(now, slots, 2)
	assert.Equal(t, []string{"A", "B"}, names(got))
	assert.Equal(t, "Starting in 1 hour", FormatTimeUntil(now, got[0]))

	for _, s := range Upcoming(now, slots, 50) {
		assert.False(t, s.IsFiller())
	}
}

func TestUpcomingShowsMinutes(t *testing.T) {
	slots := []Slot{
		slot("Monday", "A", "10:00 AM", "11:00 AM"),
		slot("Tuesday", "B", "9:00 AM", "10:00 AM"),
	}
	shows := UpcomingShows(at(time.Monday, 9, 0), slots, 3)
	require.Len(t, shows, 3)
	assert.Equal(t, 60, shows[0].MinutesUntil)
	assert.Equal(t, 1440, shows[1].MinutesUntil)
	// Next week's A is the upper bound of the look-ahead.
	assert.Equal(t, "A", shows[2].Slot.Program.Name)
	assert.Equal(t, 900+6*1440+600, shows[2].MinutesUntil)
}

func TestUpcomingSkipsShowStartingNow(t *testing.T) {
	slots := []Slot{slot("Monday", "Now", "9:00 AM", "10:00 AM"), slot("Monday", "Later", "9:01 AM", "10:00 AM")}

	got := Upcoming(at(time.Monday, 9, 0), slots, 1)
	assert.Equal(t, []string{"Later"}, names(got))
}

func TestUpcomingWrapsAcrossWeek(t *testing.T) {
	slots := []Slot{slot("Sunday", "Sunday Service", "8:00 AM", "9:00 AM")}

	shows := UpcomingShows(at(time.Saturday, 22, 0), slots, 1)
	require.Len(t, shows, 1)
	assert.Equal(t, 120+480, shows[0].MinutesUntil)
}

func TestUpcomingStableTieBreak(t *testing.T) {
	slots := []Slot{
		slot("Wednesday", "First", "8:00 AM", "9:00 AM"),
		slot("Weekdays", "Second", "8:00 AM", "9:00 AM"),
	}
	got := Upcoming(at(time.Wednesday, 7, 0), slots, 2)
	assert.Equal(t, []string{"First", "Second"}, names(got))
}

func TestUpcomingEdgeCases(t *testing.T) {
	slots := []Slot{slot("Monday", "A", "broken", "11:00 AM")}
	assert.Empty(t, Upcoming(at(time.Monday, 9, 0), slots, 5))
	assert.Nil(t, UpcomingShows(at(time.Monday, 9, 0), slots, 0))
}

func TestFormatTimeUntil(t *testing.T) {
	now := at(time.Monday, 9, 0)
	cases := []struct {
		slot Slot
		want string
	}{
		{slot("Monday", "x", "9:01 AM", ""), "Starting in 1 minute"},
		{slot("Monday", "x", "9:45 AM", ""), "Starting in 45 minutes"},
		{slot("Monday", "x", "11:00 AM", ""), "Starting in 2 hours"},
		{slot("Weekdays", "x", "10:30 AM", ""), "Starting in 1h 30m"},
		{slot("Daily", "x", "8:00 AM", ""), "Coming up soon"},
		{slot("Any", "x", "8:00 AM", ""), "Coming up soon"},
		{slot("Tuesdays", "x", "8:00 AM", ""), "Coming up Tuesdays"},
		{slot("Monday", "x", "9:00 AM", ""), "Coming up Monday"},
		{slot("Monday", "x", "nine", ""), ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTimeUntil(now, tc.slot), tc.slot.Program.StartTime)
	}
}

func TestUpcomingShowLabel(t *testing.T) {
	now := at(time.Monday, 9, 0)
	slots := []Slot{
		slot("Monday", "A", "10:00 AM", "11:00 AM"),
		slot("Daily", "B", "8:00 AM", "9:00 AM"),
	}
	shows := UpcomingShows(now, slots, 3)
	require.Len(t, shows, 3)
	assert.Equal(t, "Starting in 1 hour", shows[0].Label(now))
	assert.Equal(t, "Coming up soon", shows[1].Label(now))
	// Next Monday's A must not claim to start in an hour.
	next := UpcomingShows(now, slots[:1], 2)
	require.Len(t, next, 2)
	assert.Equal(t, "Coming up Monday", next[1].Label(now))
}
