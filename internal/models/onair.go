package models

import (
	"time"

	"github.com/noah-isme/radio-cms-api/internal/onair"
)

// OnAirStatus is the rendered resolution served to listeners.
type OnAirStatus struct {
	Kind         onair.Kind      `json:"kind"`
	Program      *onair.Program  `json:"program,omitempty"`
	Day          string          `json:"day,omitempty"`
	Override     *onair.Override `json:"override,omitempty"`
	OverrideEnds *time.Time      `json:"override_ends_at,omitempty"`
	Message      string          `json:"message"`
	EvaluatedAt  time.Time       `json:"evaluated_at"`
	Timezone     string          `json:"timezone"`
}

// UpcomingShow is one entry of the "coming up next" list.
type UpcomingShow struct {
	Day          string        `json:"day"`
	Program      onair.Program `json:"program"`
	MinutesUntil int           `json:"minutes_until"`
	Label        string        `json:"label"`
}

// OverrideView is the stored override as served to clients. Instants are given
// both as RFC3339 and as nanoseconds since the epoch.
type OverrideView struct {
	ProgramName string    `json:"override_program"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	StartTimeNs int64     `json:"start_time_ns"`
	EndTimeNs   int64     `json:"end_time_ns"`
	Active      bool      `json:"active"`
}

// NewOverrideView renders o as seen at now.
func NewOverrideView(o onair.Override, now time.Time) OverrideView {
	return OverrideView{
		ProgramName: o.ProgramName,
		Description: o.Description,
		StartTime:   o.StartTime,
		EndTime:     o.EndTime,
		StartTimeNs: o.StartTime.UnixNano(),
		EndTimeNs:   o.EndTime.UnixNano(),
		Active:      o.ActiveAt(now),
	}
}
