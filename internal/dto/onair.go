package dto

// SetOverrideRequest replaces the computed program for the next duration_hours.
type SetOverrideRequest struct {
	ProgramName   string  `json:"override_program" validate:"required,max=120"`
	Description   string  `json:"description" validate:"max=500"`
	DurationHours float64 `json:"duration_hours" validate:"gt=0,lte=168"`
}
