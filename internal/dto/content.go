package dto

import "github.com/noah-isme/radio-cms-api/internal/models"

// DJProfileRequest creates or edits a DJ profile.
type DJProfileRequest struct {
	Name string `json:"name" form:"name" validate:"required,max=120"`
	Bio  string `json:"bio" form:"bio" validate:"max=4000"`
}

// SubmitSongRequest is the public song request form.
type SubmitSongRequest struct {
	Name      string `json:"name" validate:"required,max=80"`
	SongTitle string `json:"song_title" validate:"required,max=200"`
	Message   string `json:"message" validate:"max=500"`
}

// UpdateNowPlayingRequest announces a track.
type UpdateNowPlayingRequest struct {
	Title  string `json:"title" validate:"required,max=200"`
	Artist string `json:"artist" validate:"required,max=200"`
}

// UpdateWeatherRequest replaces the stored forecast.
type UpdateWeatherRequest struct {
	Days []models.WeatherDay `json:"days" validate:"required,max=14,dive"`
}

// RunUpdateRequest asks for a publish over the listed sections; empty means all.
type RunUpdateRequest struct {
	Sections []string `json:"sections" validate:"omitempty,dive,oneof=schedule djs theme station weather now-playing"`
}

// SaveProfileRequest updates the caller's display name.
type SaveProfileRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

// AssignRoleRequest grants a role to a user.
type AssignRoleRequest struct {
	UserID string          `json:"user_id" validate:"required"`
	Role   models.UserRole `json:"role" validate:"required,oneof=admin user guest"`
}

// RoleResponse answers the role oracle endpoints.
type RoleResponse struct {
	Role    models.UserRole `json:"role"`
	IsAdmin bool            `json:"is_admin"`
}
