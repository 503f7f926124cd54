package dto

import "github.com/noah-isme/radio-cms-api/internal/onair"

// CreateProgramRequest adds a program on one or more days.
type CreateProgramRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Bio         string   `json:"bio" validate:"max=2000"`
	StartTime   string   `json:"start_time" validate:"required,clocktime"`
	EndTime     string   `json:"end_time" validate:"required,clocktime"`
	Days        []string `json:"days" validate:"required,min=1,dive,dayspec"`
}

// UpdateProgramRequest edits the slot identified by (name, old_day), optionally moving it to new_day.
type UpdateProgramRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Bio         string `json:"bio" validate:"max=2000"`
	StartTime   string `json:"start_time" validate:"required,clocktime"`
	EndTime     string `json:"end_time" validate:"required,clocktime"`
	OldDay      string `json:"old_day" validate:"required"`
	NewDay      string `json:"new_day" validate:"omitempty,dayspec"`
}

// TargetDay returns the day the slot should end up on.
func (r UpdateProgramRequest) TargetDay() string {
	if r.NewDay == "" {
		return r.OldDay
	}
	return r.NewDay
}

// LegacyImportRequest carries programs whose times embed the day, e.g. "Sundays 3:00 PM CST".
type LegacyImportRequest struct {
	Programs []onair.LegacyProgram `json:"programs" validate:"required,min=1"`
}

// LegacyImportResult reports the outcome of a legacy import.
type LegacyImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}
