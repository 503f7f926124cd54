package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage providers accepted by STORAGE_PROVIDER.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
	StorageMinio = "minio"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Station   StationConfig
	OnAir     OnAirConfig
	Cache     CacheConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Publish   PublishConfig
	Seed      SeedConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
	Issuer            string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StationConfig describes the broadcaster itself.
type StationConfig struct {
	Name        string
	Timezone    string
	IdleMessage string
}

// Location resolves the station timezone, falling back to UTC when it is unknown.
func (s StationConfig) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// OnAirConfig tunes the on-air watcher and the upcoming list.
type OnAirConfig struct {
	WatcherEnabled  bool
	PollSpec        string
	UpcomingDefault int
	UpcomingMax     int
}

// CacheConfig toggles the Redis-backed read cache.
type CacheConfig struct {
	Enabled   bool
	TTL       time.Duration
	KeyPrefix string
}

// StorageConfig selects where DJ photos are stored.
type StorageConfig struct {
	Provider        string
	LocalDir        string
	Bucket          string
	Endpoint        string
	Region          string
	AccessKey       string
	SecretKey       string
	UseSSL          bool
	SignedURLSecret string
	SignedURLTTL    time.Duration
	MaxPhotoBytes   int64
	AllowedMIMEs    []string
}

// RateLimitConfig bounds public song request submissions per client.
type RateLimitConfig struct {
	SongRequestsPerMinute int
	Burst                 int
	BlockDuration         time.Duration
}

// PublishConfig sizes the background publish worker pool.
type PublishConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
	JobTimeout time.Duration
}

// SeedConfig points to an optional YAML file loaded on boot.
type SeedConfig struct {
	Enabled bool
	File    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
		Issuer:            v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Station = StationConfig{
		Name:        v.GetString("STATION_NAME"),
		Timezone:    v.GetString("STATION_TIMEZONE"),
		IdleMessage: v.GetString("STATION_IDLE_MESSAGE"),
	}

	upcomingMax := v.GetInt("UPCOMING_MAX")
	if upcomingMax <= 0 {
		upcomingMax = 20
	}
	upcomingDefault := v.GetInt("UPCOMING_DEFAULT")
	if upcomingDefault <= 0 || upcomingDefault > upcomingMax {
		upcomingDefault = 2
	}
	cfg.OnAir = OnAirConfig{
		WatcherEnabled:  v.GetBool("ONAIR_WATCHER_ENABLED"),
		PollSpec:        v.GetString("ONAIR_POLL_SPEC"),
		UpcomingDefault: upcomingDefault,
		UpcomingMax:     upcomingMax,
	}

	cfg.Cache = CacheConfig{
		Enabled:   v.GetBool("ENABLE_CACHE"),
		TTL:       parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
		KeyPrefix: v.GetString("CACHE_KEY_PREFIX"),
	}

	maxPhoto := v.GetInt64("STORAGE_MAX_PHOTO_SIZE")
	if maxPhoto <= 0 {
		maxPhoto = 5 * 1024 * 1024
	}
	cfg.Storage = StorageConfig{
		Provider:        strings.ToLower(v.GetString("STORAGE_PROVIDER")),
		LocalDir:        v.GetString("STORAGE_LOCAL_DIR"),
		Bucket:          v.GetString("STORAGE_BUCKET"),
		Endpoint:        v.GetString("STORAGE_ENDPOINT"),
		Region:          v.GetString("STORAGE_REGION"),
		AccessKey:       v.GetString("STORAGE_ACCESS_KEY"),
		SecretKey:       v.GetString("STORAGE_SECRET_KEY"),
		UseSSL:          v.GetBool("STORAGE_USE_SSL"),
		SignedURLSecret: v.GetString("STORAGE_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("STORAGE_SIGNED_URL_TTL"), time.Hour),
		MaxPhotoBytes:   maxPhoto,
		AllowedMIMEs:    splitAndTrim(v.GetString("STORAGE_ALLOWED_MIME_TYPES")),
	}

	cfg.RateLimit = RateLimitConfig{
		SongRequestsPerMinute: v.GetInt("SONG_REQUESTS_PER_MINUTE"),
		Burst:                 v.GetInt("SONG_REQUESTS_BURST"),
		BlockDuration:         parseDuration(v.GetString("SONG_REQUESTS_BLOCK_DURATION"), 5*time.Minute),
	}

	cfg.Publish = PublishConfig{
		Workers:    v.GetInt("PUBLISH_WORKERS"),
		MaxRetries: v.GetInt("PUBLISH_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("PUBLISH_RETRY_DELAY"), 2*time.Second),
		JobTimeout: parseDuration(v.GetString("PUBLISH_JOB_TIMEOUT"), 30*time.Second),
	}

	cfg.Seed = SeedConfig{
		Enabled: v.GetBool("SEED_ENABLED"),
		File:    v.GetString("SEED_FILE"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "radio_cms")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")
	v.SetDefault("JWT_ISSUER", "radio-cms-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STATION_NAME", "Christmas Radio")
	v.SetDefault("STATION_TIMEZONE", "America/Chicago")
	v.SetDefault("STATION_IDLE_MESSAGE", "Playing the best holiday music mix")

	v.SetDefault("ONAIR_WATCHER_ENABLED", true)
	v.SetDefault("ONAIR_POLL_SPEC", "@every 10s")
	v.SetDefault("UPCOMING_DEFAULT", 2)
	v.SetDefault("UPCOMING_MAX", 20)

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CACHE_KEY_PREFIX", "radio:")

	v.SetDefault("STORAGE_PROVIDER", StorageLocal)
	v.SetDefault("STORAGE_LOCAL_DIR", "./media")
	v.SetDefault("STORAGE_BUCKET", "dj-photos")
	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", false)
	v.SetDefault("STORAGE_SIGNED_URL_SECRET", "dev_media_secret")
	v.SetDefault("STORAGE_SIGNED_URL_TTL", "1h")
	v.SetDefault("STORAGE_MAX_PHOTO_SIZE", 5*1024*1024)
	v.SetDefault("STORAGE_ALLOWED_MIME_TYPES", "image/jpeg,image/png,image/webp,image/gif")

	v.SetDefault("SONG_REQUESTS_PER_MINUTE", 3)
	v.SetDefault("SONG_REQUESTS_BURST", 3)
	v.SetDefault("SONG_REQUESTS_BLOCK_DURATION", "5m")

	v.SetDefault("PUBLISH_WORKERS", 1)
	v.SetDefault("PUBLISH_MAX_RETRIES", 3)
	v.SetDefault("PUBLISH_RETRY_DELAY", "2s")

	v.SetDefault("SEED_ENABLED", false)
	v.SetDefault("SEED_FILE", "./seed.yaml")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
