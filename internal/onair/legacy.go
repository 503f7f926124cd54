package onair

import (
	"regexp"
	"strings"
)

// LegacyProgram is the older record shape where the day is embedded in the
// time strings, e.g. StartTime "Sundays 3:00 PM CST".
type LegacyProgram struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Bio         string `json:"bio" yaml:"bio"`
	StartTime   string `json:"start_time" yaml:"start_time"`
	EndTime     string `json:"end_time" yaml:"end_time"`
}

// defaultLegacyDay applies when a legacy time carries no day token.
const defaultLegacyDay = "Any"

var legacyPattern = regexp.MustCompile(`(?i)^([a-z]+(?:-[a-z]+)?)\s+(\d{1,2}):(\d{2})\s*(AM|PM)$`)

// ParseLegacyTime splits "Weekdays 6:00 AM" into its day token and time.
// Strings without a day token yield day "Any".
func ParseLegacyTime(raw string) (day string, t TimeOfDay, ok bool) {
	cleaned := strings.TrimSpace(timezonePattern.ReplaceAllString(raw, ""))
	if match := legacyPattern.FindStringSubmatch(cleaned); match != nil {
		t, ok = fromClockMatch(match[2], match[3], match[4])
		if !ok {
			return "", 0, false
		}
		return match[1], t, true
	}
	t, ok = ParseTimeOfDay(cleaned)
	if !ok {
		return "", 0, false
	}
	return defaultLegacyDay, t, true
}

// SlotFromLegacy converts a legacy record into a canonical slot. The day comes
// from the start time; ok is false when either time is unparseable.
func SlotFromLegacy(p LegacyProgram) (Slot, bool) {
	day, start, ok := ParseLegacyTime(p.StartTime)
	if !ok {
		return Slot{}, false
	}
	_, end, ok := ParseLegacyTime(p.EndTime)
	if !ok {
		return Slot{}, false
	}
	return Slot{
		Day: day,
		Program: Program{
			Name:        p.Name,
			Description: p.Description,
			Bio:         p.Bio,
			StartTime:   start.Clock(),
			EndTime:     end.Clock(),
		},
	}, true
}

// SlotsFromLegacy converts every parseable legacy record and returns the
// names of the ones it had to skip.
func SlotsFromLegacy(programs []LegacyProgram) (slots []Slot, skipped []string) {
	slots = make([]Slot, 0, len(programs))
	for _, p := range programs {
		slot, ok := SlotFromLegacy(p)
		if !ok {
			skipped = append(skipped, p.Name)
			continue
		}
		slots = append(slots, slot)
	}
	return slots, skipped
}
