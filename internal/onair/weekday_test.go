package onair

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func matchingDays(spec string) []time.Weekday {
	var days []time.Weekday
	for _, day := range WeekDays {
		if DayMatches(spec, day) {
			days = append(days, day)
		}
	}
	return days
}

func TestDayMatchesKeywords(t *testing.T) {
	all := WeekDays[:]
	cases := []struct {
		spec string
		want []time.Weekday
	}{
		{"Daily", all},
		{"Any", all},
		{"daily", all},
		{"Weekdays", []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}},
		{"Weekends", []time.Weekday{time.Sunday, time.Saturday}},
		{"WEEKENDS", []time.Weekday{time.Sunday, time.Saturday}},
		{"", nil},
		{"   ", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchingDays(tc.spec), tc.spec)
	}
}

func TestDayMatchesRanges(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, matchingDays("Monday-Friday"))
	assert.Equal(t, []time.Weekday{time.Sunday, time.Monday, time.Saturday}, matchingDays("Saturday-Monday"))
	assert.Equal(t, []time.Weekday{time.Wednesday}, matchingDays("Wednesday-Wednesday"))
	assert.Equal(t, []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday}, matchingDays("tuesdays - thursdays"))
}

func TestDayMatchesUnknownRangeNeverMatches(t *testing.T) {
	assert.Empty(t, matchingDays("Monday-Funday"))
	assert.Empty(t, matchingDays("Someday-Friday"))
	assert.Empty(t, matchingDays("-"))
}

func TestDayMatchesSingleDayAndPlural(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Sunday}, matchingDays("Sunday"))
	assert.Equal(t, []time.Weekday{time.Sunday}, matchingDays("Sundays"))
	assert.Equal(t, []time.Weekday{time.Thursday}, matchingDays("thursday"))
	assert.Empty(t, matchingDays("Funday"))
}

func TestPreviousWeekday(t *testing.T) {
	assert.Equal(t, time.Saturday, PreviousWeekday(time.Sunday))
	assert.Equal(t, time.Sunday, PreviousWeekday(time.Monday))
	assert.Equal(t, time.Friday, PreviousWeekday(time.Saturday))
}

func TestValidateDaySpecifier(t *testing.T) {
	for _, ok := range []string{"Daily", "Any", "Weekdays", "Weekends", "Monday", "Fridays", "Saturday-Monday"} {
		assert.NoError(t, ValidateDaySpecifier(ok), ok)
	}
	for _, bad := range []string{"", "Funday", "Monday-Funday", "Mon"} {
		err := ValidateDaySpecifier(bad)
		assert.True(t, errors.Is(err, ErrInvalidDay), bad)
	}
}

func TestDayOrder(t *testing.T) {
	assert.Equal(t, 0, DayOrder("Daily"))
	assert.Equal(t, 0, DayOrder("Weekends"))
	assert.Equal(t, 1, DayOrder("Weekdays"))
	assert.Equal(t, 5, DayOrder("Fridays"))
	assert.Equal(t, 0, DayOrder("Saturday-Monday"))
	assert.Equal(t, 7, DayOrder("Funday"))
}
