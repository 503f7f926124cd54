package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Keys of the singleton documents kept in the settings table.
const (
	SettingOnAirOverride = "on_air_override"
	SettingTheme         = "theme"
	SettingStation       = "station_information"
	SettingNowPlaying    = "now_playing"
	SettingWeather       = "weather"
	SettingLastUpdate    = "last_update"
)

// Setting stores one JSON document by key.
type Setting struct {
	Key       string         `db:"key" json:"key"`
	Value     types.JSONText `db:"value" json:"value"`
	UpdatedBy *string        `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
