package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "Playing the best holiday music mix", cfg.Station.IdleMessage)
	assert.Equal(t, "@every 10s", cfg.OnAir.PollSpec)
	assert.Equal(t, 2, cfg.OnAir.UpcomingDefault)
	assert.Equal(t, 20, cfg.OnAir.UpcomingMax)
	assert.Equal(t, StorageLocal, cfg.Storage.Provider)
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/webp", "image/gif"}, cfg.Storage.AllowedMIMEs)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxPhotoBytes)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "radio:", cfg.Cache.KeyPrefix)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORAGE_PROVIDER", "MinIO")
	v.Set("UPCOMING_DEFAULT", 50)
	v.Set("CACHE_TTL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := fromViper(v)
	assert.Equal(t, StorageMinio, cfg.Storage.Provider)
	assert.Equal(t, 2, cfg.OnAir.UpcomingDefault)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestStationLocation(t *testing.T) {
	loc := StationConfig{Timezone: "America/Chicago"}.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "America/Chicago", loc.String())

	assert.Equal(t, time.UTC, StationConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, time.UTC, StationConfig{}.Location())
}
