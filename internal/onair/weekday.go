package onair

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// WeekDays is the canonical day ordering used for range and wraparound arithmetic.
// It is fixed and never depends on locale.
var WeekDays = [7]time.Weekday{
	time.Sunday,
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}

// ErrInvalidDay is returned by ValidateDaySpecifier for specifiers that can never match.
var ErrInvalidDay = errors.New("invalid day specifier")

const (
	keywordDaily    = "daily"
	keywordAny      = "any"
	keywordWeekdays = "weekdays"
	keywordWeekends = "weekends"
)

// DayIndex resolves a day name (case-insensitive, optionally plural) to its
// index in WeekDays, or -1 when the name is unknown.
func DayIndex(name string) int {
	needle := singular(name)
	if needle == "" {
		return -1
	}
	for i, day := range WeekDays {
		if singular(day.String()) == needle {
			return i
		}
	}
	return -1
}

// PreviousWeekday returns the day before day, wrapping Sunday back to Saturday.
func PreviousWeekday(day time.Weekday) time.Weekday {
	return WeekDays[(int(day)+len(WeekDays)-1)%len(WeekDays)]
}

// DayMatches reports whether the day specifier covers day.
//
// Precedence: empty never matches; "Daily"/"Any" always match; "Weekdays" is
// Monday through Friday; "Weekends" is Saturday and Sunday; a "Start-End"
// range matches the closed interval in WeekDays order and wraps when Start
// comes after End; anything else is compared as a single day name with an
// optional plural "s". Unknown names inside a range never match.
func DayMatches(spec string, day time.Weekday) bool {
	d := strings.TrimSpace(spec)
	if d == "" {
		return false
	}

	switch strings.ToLower(d) {
	case keywordDaily, keywordAny:
		return true
	case keywordWeekdays:
		return day >= time.Monday && day <= time.Friday
	case keywordWeekends:
		return day == time.Saturday || day == time.Sunday
	}

	if strings.Contains(d, "-") {
		parts := strings.SplitN(d, "-", 2)
		start, end := DayIndex(parts[0]), DayIndex(parts[1])
		if start < 0 || end < 0 {
			return false
		}
		current := int(day)
		if start <= end {
			return current >= start && current <= end
		}
		return current >= start || current <= end
	}

	return singular(d) == singular(day.String())
}

// IsEveryDay reports whether the specifier is one of the "Daily"/"Any" keywords.
func IsEveryDay(spec string) bool {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case keywordDaily, keywordAny:
		return true
	}
	return false
}

// ValidateDaySpecifier rejects specifiers that DayMatches would never match,
// such as "Funday" or "Monday-Someday".
func ValidateDaySpecifier(spec string) error {
	d := strings.TrimSpace(spec)
	if d == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDay)
	}
	switch strings.ToLower(d) {
	case keywordDaily, keywordAny, keywordWeekdays, keywordWeekends:
		return nil
	}
	if strings.Contains(d, "-") {
		parts := strings.SplitN(d, "-", 2)
		if DayIndex(parts[0]) < 0 || DayIndex(parts[1]) < 0 {
			return fmt.Errorf("%w: unknown day in range %q", ErrInvalidDay, d)
		}
		return nil
	}
	if DayIndex(d) < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidDay, d)
	}
	return nil
}

// DayOrder ranks a specifier by the first weekday it covers, for listing.
// Specifiers that match nothing sort last.
func DayOrder(spec string) int {
	for i, day := range WeekDays {
		if DayMatches(spec, day) {
			return i
		}
	}
	return len(WeekDays)
}

func singular(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "s")
}
