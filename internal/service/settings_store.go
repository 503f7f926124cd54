package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/models"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

type settingsRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
	Delete(ctx context.Context, key string) error
}

// documentStore reads and writes the JSON singletons kept in the settings table,
// fronted by the read cache.
type documentStore struct {
	repo   settingsRepository
	cache  *CacheService
	logger *zap.Logger
}

func newDocumentStore(repo settingsRepository, cache *CacheService, logger *zap.Logger) documentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return documentStore{repo: repo, cache: cache, logger: logger}
}

// load decodes the document stored under key into dest. found is false when it was never saved.
func (d documentStore) load(ctx context.Context, key, cacheKey string, dest interface{}) (bool, error) {
	if hit, _ := d.cache.Get(ctx, cacheKey, dest); hit {
		return true, nil
	}

	setting, err := d.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+key)
	}
	if err := json.Unmarshal(setting.Value, dest); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stored "+key+" is malformed")
	}

	_ = d.cache.Set(ctx, cacheKey, dest, 0)
	return true, nil
}

func (d documentStore) save(ctx context.Context, key, cacheKey string, value interface{}, actorID string) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode "+key)
	}
	setting := &models.Setting{Key: key, Value: payload}
	if actorID != "" {
		setting.UpdatedBy = &actorID
	}
	if err := d.repo.Upsert(ctx, setting); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save "+key)
	}
	_ = d.cache.Invalidate(ctx, cacheKey)
	d.logger.Info("setting saved", zap.String("key", key), zap.String("actor", actorID))
	return nil
}

func (d documentStore) remove(ctx context.Context, key, cacheKey string) error {
	if err := d.repo.Delete(ctx, key); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear "+key)
	}
	_ = d.cache.Invalidate(ctx, cacheKey)
	return nil
}
