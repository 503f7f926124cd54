package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/radio-cms-api/internal/models"
)

func TestSettingsRepositoryGet(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"key", "value", "updated_by", "updated_at"}).
		AddRow(models.SettingNowPlaying, []byte(`{"title":"Sleigh Ride","artist":"Ronettes"}`), "admin", time.Now())
	mock.ExpectQuery("SELECT key, value").WithArgs(models.SettingNowPlaying).WillReturnRows(rows)

	repo := NewSettingsRepository(db)
	setting, err := repo.Get(context.Background(), models.SettingNowPlaying)
	require.NoError(t, err)

	var np models.NowPlaying
	require.NoError(t, setting.Value.Unmarshal(&np))
	assert.Equal(t, "Sleigh Ride", np.Title)
}

func TestSettingsRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT key, value").WithArgs(models.SettingTheme).WillReturnError(sql.ErrNoRows)

	repo := NewSettingsRepository(db)
	_, err := repo.Get(context.Background(), models.SettingTheme)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSettingsRepositoryListByKeys(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"key", "value", "updated_by", "updated_at"}).
		AddRow(models.SettingTheme, []byte(`{}`), nil, time.Now())
	mock.ExpectQuery("WHERE key IN \\(\\$1,\\$2\\)").
		WithArgs(models.SettingTheme, models.SettingStation).
		WillReturnRows(rows)

	repo := NewSettingsRepository(db)
	settings, err := repo.ListByKeys(context.Background(), []string{models.SettingTheme, models.SettingStation})
	require.NoError(t, err)
	require.Len(t, settings, 1)

	none, err := repo.ListByKeys(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSettingsRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO settings").
		WithArgs(models.SettingWeather, sqlmock.AnyArg(), "admin", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewSettingsRepository(db)
	by := "admin"
	setting := &models.Setting{Key: models.SettingWeather, Value: types.JSONText(`{"days":[]}`), UpdatedBy: &by}
	require.NoError(t, repo.Upsert(context.Background(), setting))
	assert.False(t, setting.UpdatedAt.IsZero())
}

func TestSettingsRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM settings").WithArgs(models.SettingOnAirOverride).WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSettingsRepository(db)
	require.NoError(t, repo.Delete(context.Background(), models.SettingOnAirOverride))
}
