package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

// NowPlayingService keeps the track announced on the site.
type NowPlayingService struct {
	store     documentStore
	clock     Clock
	validator *validator.Validate
}

// NewNowPlayingService constructs the service.
func NewNowPlayingService(settings settingsRepository, cache *CacheService, clock Clock, validate *validator.Validate, logger *zap.Logger) *NowPlayingService {
	if validate == nil {
		validate = NewValidator()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &NowPlayingService{store: newDocumentStore(settings, cache, logger), clock: clock, validator: validate}
}

// Get returns the current track or nil when nothing is announced.
func (s *NowPlayingService) Get(ctx context.Context) (*models.NowPlaying, error) {
	var current models.NowPlaying
	found, err := s.store.load(ctx, models.SettingNowPlaying, CacheKeyNowPlaying, &current)
	if err != nil || !found {
		return nil, err
	}
	return &current, nil
}

// Update announces a track.
func (s *NowPlayingService) Update(ctx context.Context, req dto.UpdateNowPlayingRequest, actorID string) (*models.NowPlaying, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Artist = strings.TrimSpace(req.Artist)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid now playing payload")
	}
	current := models.NowPlaying{Title: req.Title, Artist: req.Artist, UpdatedAt: s.clock.Now().UTC()}
	if err := s.store.save(ctx, models.SettingNowPlaying, CacheKeyNowPlaying, current, actorID); err != nil {
		return nil, err
	}
	return &current, nil
}

// Clear removes the announcement.
func (s *NowPlayingService) Clear(ctx context.Context) error {
	return s.store.remove(ctx, models.SettingNowPlaying, CacheKeyNowPlaying)
}
