package models

import "time"

// DJProfile describes an on-air host.
type DJProfile struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Bio              string    `db:"bio" json:"bio"`
	PhotoKey         *string   `db:"photo_key" json:"-"`
	PhotoContentType *string   `db:"photo_content_type" json:"-"`
	PhotoURL         string    `db:"-" json:"photo_url,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// HasPhoto reports whether a photo has been uploaded.
func (d DJProfile) HasPhoto() bool {
	return d.PhotoKey != nil && *d.PhotoKey != ""
}
