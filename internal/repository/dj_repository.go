package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/radio-cms-api/internal/models"
)

const djColumns = `id, name, bio, photo_key, photo_content_type, created_at, updated_at`

// DJRepository persists DJ profiles.
type DJRepository struct {
	db *sqlx.DB
}

// NewDJRepository constructs the repository.
func NewDJRepository(db *sqlx.DB) *DJRepository {
	return &DJRepository{db: db}
}

// List returns every profile ordered by name.
func (r *DJRepository) List(ctx context.Context) ([]models.DJProfile, error) {
	query := `SELECT ` + djColumns + ` FROM dj_profiles ORDER BY name ASC`
	var profiles []models.DJProfile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("list dj profiles: %w", err)
	}
	return profiles, nil
}

// FindByID loads a profile by primary key.
func (r *DJRepository) FindByID(ctx context.Context, id string) (*models.DJProfile, error) {
	query := `SELECT ` + djColumns + ` FROM dj_profiles WHERE id = $1`
	var profile models.DJProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find dj profile by id: %w", err)
	}
	return &profile, nil
}

// FindByName looks a profile up by its unique name.
func (r *DJRepository) FindByName(ctx context.Context, name string) (*models.DJProfile, error) {
	query := `SELECT ` + djColumns + ` FROM dj_profiles WHERE LOWER(name) = LOWER($1) LIMIT 1`
	var profile models.DJProfile
	if err := r.db.GetContext(ctx, &profile, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find dj profile: %w", err)
	}
	return &profile, nil
}

// Create inserts a new profile.
func (r *DJRepository) Create(ctx context.Context, profile *models.DJProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	const query = `INSERT INTO dj_profiles (id, name, bio, photo_key, photo_content_type, created_at, updated_at)
VALUES (:id, :name, :bio, :photo_key, :photo_content_type, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("create dj profile: %w", err)
	}
	return nil
}

// Update saves the mutable fields of a profile, photo included.
func (r *DJRepository) Update(ctx context.Context, profile *models.DJProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	const query = `UPDATE dj_profiles SET name = :name, bio = :bio, photo_key = :photo_key,
photo_content_type = :photo_content_type, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("update dj profile: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a profile by ID.
func (r *DJRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dj_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dj profile: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
