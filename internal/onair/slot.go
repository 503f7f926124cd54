// Package onair decides what a station is broadcasting from its weekly
// program table and an optional manual override.
package onair

import "time"

// FillerProgramName identifies the continuous music bed that airs when no live show does.
const FillerProgramName = "Auto DJ"

// Program describes a show with raw, admin-entered start and end times.
type Program struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Bio         string `json:"bio" yaml:"bio"`
	StartTime   string `json:"start_time" yaml:"start_time"`
	EndTime     string `json:"end_time" yaml:"end_time"`
}

// Slot binds a program to one day specifier. A program airing on several days
// is represented by several slots.
type Slot struct {
	Day     string  `json:"day" yaml:"day"`
	Program Program `json:"program" yaml:"program"`
}

// IsFiller reports whether the slot carries the filler program.
func (s Slot) IsFiller() bool {
	return s.Program.Name == FillerProgramName
}

// Window parses the program start and end times. ok is false when either is unparseable.
func (s Slot) Window() (start, end TimeOfDay, ok bool) {
	start, ok = ParseTimeOfDay(s.Program.StartTime)
	if !ok {
		return 0, 0, false
	}
	end, ok = ParseTimeOfDay(s.Program.EndTime)
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

// Override is a manual, time-boxed replacement of the computed on-air program.
type Override struct {
	ProgramName string    `json:"override_program"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// ActiveAt reports whether the override window is still open at now.
func (o *Override) ActiveAt(now time.Time) bool {
	return o != nil && o.EndTime.After(now)
}

// Overlaps reports whether two slots can be resolved as airing at the same
// minute of the week. Slots with unparseable times never overlap anything.
func Overlaps(a, b Slot) bool {
	left, right := weekIntervals(a), weekIntervals(b)
	for _, x := range left {
		for _, y := range right {
			if x[0] < y[1] && y[0] < x[1] {
				return true
			}
		}
	}
	return false
}

// weekIntervals lists the minutes of the week in which Resolve treats s as
// airing. The early-morning tail of a crossing slot only counts on a day the
// slot covers whose previous day it also covers.
func weekIntervals(s Slot) [][2]int {
	start, end, ok := s.Window()
	if !ok {
		return nil
	}

	var intervals [][2]int
	for _, day := range WeekDays {
		if !DayMatches(s.Day, day) {
			continue
		}
		base := int(day) * MinutesPerDay
		if !crossesMidnight(start, end) {
			if start < end {
				intervals = append(intervals, [2]int{base + int(start), base + int(end)})
			}
			continue
		}
		intervals = append(intervals, [2]int{base + int(start), base + MinutesPerDay})
		if end > 0 && DayMatches(s.Day, PreviousWeekday(day)) {
			intervals = append(intervals, [2]int{base, base + int(end)})
		}
	}
	return intervals
}
