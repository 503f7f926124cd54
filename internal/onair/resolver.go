package onair

import (
	"fmt"
	"time"
)

// Kind classifies the outcome of Resolve.
type Kind int

const (
	// NoProgram means nothing is scheduled; clients show a generic music mix message.
	NoProgram Kind = iota
	// OverrideActive means a manual override currently replaces the schedule.
	OverrideActive
	// LiveSlot means a scheduled live show is airing.
	LiveSlot
	// FillerSlot means only the filler program is airing.
	FillerSlot
)

var kindNames = map[Kind]string{
	NoProgram:      "none",
	OverrideActive: "override",
	LiveSlot:       "live",
	FillerSlot:     "filler",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText lets Kind render as its name in JSON payloads.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Resolution is the single answer to "what is on air now".
type Resolution struct {
	Kind     Kind
	Slot     *Slot
	Override *Override
}

// Resolve determines what is airing at now. Precedence is active override,
// then the first airing live slot in the given order, then the filler program,
// then NoProgram. Minute-of-day and weekday are taken from now's location, so
// callers pass now already converted to the station timezone.
func Resolve(now time.Time, slots []Slot, override *Override) Resolution {
	if override.ActiveAt(now) {
		return Resolution{Kind: OverrideActive, Override: override}
	}

	today := now.Weekday()
	yesterday := PreviousWeekday(today)
	current := MinuteOfDay(now)

	fillers := make([]int, 0, 1)
	for i := range slots {
		slot := slots[i]
		if slot.IsFiller() {
			fillers = append(fillers, i)
			continue
		}
		start, end, ok := slot.Window()
		if !ok {
			continue
		}
		if !DayMatches(slot.Day, today) {
			continue
		}
		if airing(start, end, current, DayMatches(slot.Day, yesterday)) {
			return Resolution{Kind: LiveSlot, Slot: &slot}
		}
	}

	for _, i := range fillers {
		slot := slots[i]
		start, end, ok := slot.Window()
		if !ok {
			continue
		}
		if airing(start, end, current, true) {
			return Resolution{Kind: FillerSlot, Slot: &slot}
		}
	}

	return Resolution{Kind: NoProgram}
}

// airing applies the midnight crossover rule. tail allows the early-morning
// part of a crossing slot that started the day before.
func airing(start, end, now TimeOfDay, tail bool) bool {
	if !crossesMidnight(start, end) {
		return start <= now && now < end
	}
	if now >= start {
		return true
	}
	return end > 0 && now < end && tail
}
