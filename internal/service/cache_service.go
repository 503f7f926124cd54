package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

// Cache keys for read-mostly snapshots. Every key lives under cacheNamespace so a
// section can be dropped with a single pattern.
const (
	cacheNamespace     = "radio:"
	CacheKeySchedule   = cacheNamespace + "schedule"
	CacheKeyDJs        = cacheNamespace + "djs"
	CacheKeyTheme      = cacheNamespace + "settings:" + "theme"
	CacheKeyStation    = cacheNamespace + "settings:" + "station"
	CacheKeyWeather    = cacheNamespace + "settings:" + "weather"
	CacheKeyNowPlaying = cacheNamespace + "settings:" + "now-playing"
	CacheKeyOverride   = cacheNamespace + "settings:" + "override"
	CacheKeyLastUpdate = cacheNamespace + "settings:" + "last-update"
)

// SectionPatterns maps publishable content sections to the cache patterns they own.
var SectionPatterns = map[string]string{
	"schedule":    CacheKeySchedule + "*",
	"djs":         CacheKeyDJs + "*",
	"theme":       CacheKeyTheme,
	"station":     CacheKeyStation,
	"weather":     CacheKeyWeather,
	"now-playing": CacheKeyNowPlaying,
}

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService orchestrates cache operations and related metrics.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordCacheOperation(false, duration)
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	s.metrics.RecordCacheOperation(true, duration)
	return true, nil
}

// Set stores the value in cache.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Invalidate removes cached values for the provided pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

// InvalidateSections drops the cached snapshots of the named content sections.
// Unknown sections are ignored. The first failure is returned after all patterns are tried.
func (s *CacheService) InvalidateSections(ctx context.Context, sections ...string) error {
	var firstErr error
	for _, section := range sections {
		pattern, ok := SectionPatterns[section]
		if !ok {
			continue
		}
		if err := s.Invalidate(ctx, pattern); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
