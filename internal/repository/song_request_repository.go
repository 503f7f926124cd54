package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/radio-cms-api/internal/models"
)

// SongRequestRepository stores listener song requests.
type SongRequestRepository struct {
	db *sqlx.DB
}

// NewSongRequestRepository constructs the repository.
func NewSongRequestRepository(db *sqlx.DB) *SongRequestRepository {
	return &SongRequestRepository{db: db}
}

// Create inserts a request.
func (r *SongRequestRepository) Create(ctx context.Context, req *models.SongRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO song_requests (id, name, song_title, message, client_ip, created_at)
VALUES (:id, :name, :song_title, :message, :client_ip, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("create song request: %w", err)
	}
	return nil
}

// List returns a page of requests, newest first, with the total count.
func (r *SongRequestRepository) List(ctx context.Context, filter models.SongRequestFilter) ([]models.SongRequest, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const listQuery = `SELECT id, name, song_title, message, client_ip, created_at FROM song_requests
ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	var requests []models.SongRequest
	if err := r.db.SelectContext(ctx, &requests, listQuery, pageSize, offset); err != nil {
		return nil, 0, fmt.Errorf("list song requests: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM song_requests`); err != nil {
		return nil, 0, fmt.Errorf("count song requests: %w", err)
	}
	return requests, total, nil
}

// DeleteAll clears the request queue and returns how many rows were removed.
func (r *SongRequestRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM song_requests`)
	if err != nil {
		return 0, fmt.Errorf("clear song requests: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
