package onair

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the exclusive upper bound of a TimeOfDay.
const MinutesPerDay = 24 * 60

// TimeOfDay is a wall-clock minute offset from midnight in [0, MinutesPerDay).
type TimeOfDay int

var (
	timezonePattern = regexp.MustCompile(`(?i)\s+(CST|EST|PST|MST|EDT|CDT|PDT|MDT)\s*$`)
	clockPattern    = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(AM|PM)$`)
)

// ParseTimeOfDay converts free text such as "2:00 PM" or "7:00 PM CST" into a
// TimeOfDay. A trailing zone abbreviation is dropped; what remains must be
// exactly H:MM AM|PM. The second return value is false otherwise or when the
// value is out of range; callers treat that as "unparseable" rather than as an error.
func ParseTimeOfDay(raw string) (TimeOfDay, bool) {
	cleaned := strings.TrimSpace(timezonePattern.ReplaceAllString(raw, ""))
	match := clockPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return 0, false
	}
	return fromClockMatch(match[1], match[2], match[3])
}

func fromClockMatch(hourStr, minuteStr, period string) (TimeOfDay, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return 0, false
	}

	switch strings.ToUpper(period) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour >= 1 && hour <= 11 {
			hour += 12
		}
	}

	if hour > 23 || minute > 59 {
		return 0, false
	}
	return TimeOfDay(hour*60 + minute), true
}

// MinuteOfDay returns the TimeOfDay of t in t's own location.
func MinuteOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Hour returns the 24h hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String renders the value as a 24h clock, e.g. "23:05".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Clock renders the value in the 12h form accepted by ParseTimeOfDay, e.g. "3:00 PM".
func (t TimeOfDay) Clock() string {
	hour := t.Hour()
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), period)
}

func crossesMidnight(start, end TimeOfDay) bool {
	return end == 0 || end < start
}
