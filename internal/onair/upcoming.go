package onair

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// UpcomingShow pairs a slot with the minutes left until it starts.
type UpcomingShow struct {
	Slot         Slot
	MinutesUntil int
}

// UpcomingShows projects the next live slots starting after now, looking ahead
// up to seven days. The filler program is never included. Results are ordered
// by MinutesUntil; ties keep the input order. max <= 0 returns nil.
func UpcomingShows(now time.Time, slots []Slot, max int) []UpcomingShow {
	if max <= 0 {
		return nil
	}

	today := int(now.Weekday())
	current := int(MinuteOfDay(now))

	candidates := make([]UpcomingShow, 0, len(slots))
	for offset := 0; offset <= len(WeekDays); offset++ {
		weekday := WeekDays[(today+offset)%len(WeekDays)]
		for _, slot := range slots {
			if slot.IsFiller() || !DayMatches(slot.Day, weekday) {
				continue
			}
			start, ok := ParseTimeOfDay(slot.Program.StartTime)
			if !ok {
				continue
			}

			var minutes int
			if offset == 0 {
				minutes = int(start) - current
				if minutes <= 0 {
					continue
				}
			} else {
				minutes = (MinutesPerDay - current) + (offset-1)*MinutesPerDay + int(start)
			}
			candidates = append(candidates, UpcomingShow{Slot: slot, MinutesUntil: minutes})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MinutesUntil < candidates[j].MinutesUntil
	})
	if len(candidates) > max {
		candidates = candidates[:max]
	}
	return candidates
}

// Label renders the "starts in" text for a projected show. Shows that start on
// a later day use the day-based wording.
func (u UpcomingShow) Label(now time.Time) string {
	if u.MinutesUntil < MinutesPerDay-int(MinuteOfDay(now)) {
		return FormatTimeUntil(now, u.Slot)
	}
	if IsEveryDay(u.Slot.Day) {
		return "Coming up soon"
	}
	return "Coming up " + strings.TrimSpace(u.Slot.Day)
}

// Upcoming is UpcomingShows without the minute counts.
func Upcoming(now time.Time, slots []Slot, max int) []Slot {
	shows := UpcomingShows(now, slots, max)
	out := make([]Slot, len(shows))
	for i, show := range shows {
		out[i] = show.Slot
	}
	return out
}

// FormatTimeUntil renders the "starts in" label for a slot. It returns an
// empty string when the start time is unparseable.
func FormatTimeUntil(now time.Time, slot Slot) string {
	start, ok := ParseTimeOfDay(slot.Program.StartTime)
	if !ok {
		return ""
	}

	if DayMatches(slot.Day, now.Weekday()) {
		minutes := int(start) - int(MinuteOfDay(now))
		switch {
		case minutes > 0 && minutes < 60:
			return fmt.Sprintf("Starting in %d %s", minutes, plural(minutes, "minute"))
		case minutes >= 60:
			hours, rest := minutes/60, minutes%60
			if rest == 0 {
				return fmt.Sprintf("Starting in %d %s", hours, plural(hours, "hour"))
			}
			return fmt.Sprintf("Starting in %dh %dm", hours, rest)
		}
	}

	if IsEveryDay(slot.Day) {
		return "Coming up soon"
	}
	return "Coming up " + strings.TrimSpace(slot.Day)
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
