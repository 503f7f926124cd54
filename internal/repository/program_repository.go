package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/radio-cms-api/internal/models"
)

const programColumns = `id, name, description, bio, start_time, end_time, day, created_at, updated_at`

// ProgramRepository persists the weekly program table.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository constructs the repository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// List returns every slot in insertion order. The order is stable across calls
// so the resolver's first-match rule is deterministic.
func (r *ProgramRepository) List(ctx context.Context) ([]models.ProgramSlot, error) {
	query := `SELECT ` + programColumns + ` FROM program_slots ORDER BY created_at ASC, id ASC`
	var slots []models.ProgramSlot
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list program slots: %w", err)
	}
	return slots, nil
}

// FindByNameAndDay returns the slot identified by its natural key.
func (r *ProgramRepository) FindByNameAndDay(ctx context.Context, name, day string) (*models.ProgramSlot, error) {
	query := `SELECT ` + programColumns + ` FROM program_slots WHERE name = $1 AND LOWER(day) = LOWER($2) LIMIT 1`
	var slot models.ProgramSlot
	if err := r.db.GetContext(ctx, &slot, query, name, day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find program slot: %w", err)
	}
	return &slot, nil
}

// CreateMany inserts the slots atomically.
func (r *ProgramRepository) CreateMany(ctx context.Context, slots []models.ProgramSlot) error {
	if len(slots) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin program tx: %w", err)
	}
	const query = `INSERT INTO program_slots (id, name, description, bio, start_time, end_time, day, created_at, updated_at)
VALUES (:id, :name, :description, :bio, :start_time, :end_time, :day, :created_at, :updated_at)`
	now := time.Now().UTC()
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, slots[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert program slot %s/%s: %w", slots[i].Name, slots[i].Day, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit program tx: %w", err)
	}
	return nil
}

// Update rewrites the slot by ID.
func (r *ProgramRepository) Update(ctx context.Context, slot *models.ProgramSlot) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE program_slots SET name = :name, description = :description, bio = :bio,
start_time = :start_time, end_time = :end_time, day = :day, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, slot)
	if err != nil {
		return fmt.Errorf("update program slot: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the slot identified by (name, day).
func (r *ProgramRepository) Delete(ctx context.Context, name, day string) error {
	const query = `DELETE FROM program_slots WHERE name = $1 AND LOWER(day) = LOWER($2)`
	res, err := r.db.ExecContext(ctx, query, name, day)
	if err != nil {
		return fmt.Errorf("delete program slot: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
