package models

import (
	"time"

	"github.com/noah-isme/radio-cms-api/internal/onair"
)

// ProgramSlot is one row of the weekly program table: a program bound to a day specifier.
type ProgramSlot struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Bio         string    `db:"bio" json:"bio"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Day         string    `db:"day" json:"day"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Slot converts the row into the resolver's representation.
func (p ProgramSlot) Slot() onair.Slot {
	return onair.Slot{
		Day: p.Day,
		Program: onair.Program{
			Name:        p.Name,
			Description: p.Description,
			Bio:         p.Bio,
			StartTime:   p.StartTime,
			EndTime:     p.EndTime,
		},
	}
}

// Slots converts rows preserving their order.
func Slots(rows []ProgramSlot) []onair.Slot {
	out := make([]onair.Slot, len(rows))
	for i, row := range rows {
		out[i] = row.Slot()
	}
	return out
}

// ScheduleDay groups the slots sharing a day specifier.
type ScheduleDay struct {
	Day   string        `json:"day"`
	Slots []ProgramSlot `json:"slots"`
}
