package models

import "time"

// SongRequest is a listener's request for the next set.
type SongRequest struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	SongTitle string    `db:"song_title" json:"song_title"`
	Message   string    `db:"message" json:"message"`
	ClientIP  string    `db:"client_ip" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SongRequestFilter pages through requests.
type SongRequestFilter struct {
	Page     int
	PageSize int
}
