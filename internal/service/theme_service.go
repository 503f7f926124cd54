package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/models"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

// ThemeService stores the public site theme.
type ThemeService struct {
	store     documentStore
	validator *validator.Validate
}

// NewThemeService constructs the service.
func NewThemeService(settings settingsRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ThemeService {
	if validate == nil {
		validate = NewValidator()
	}
	return &ThemeService{store: newDocumentStore(settings, cache, logger), validator: validate}
}

// Get returns the saved theme, or the defaults when none was saved.
func (s *ThemeService) Get(ctx context.Context) (*models.ThemeSettings, error) {
	theme := models.DefaultThemeSettings()
	if _, err := s.store.load(ctx, models.SettingTheme, CacheKeyTheme, &theme); err != nil {
		return nil, err
	}
	return &theme, nil
}

// Update replaces the theme.
func (s *ThemeService) Update(ctx context.Context, theme models.ThemeSettings, actorID string) (*models.ThemeSettings, error) {
	if err := s.validator.Struct(theme); err != nil {
		return nil, appErrors.Validation(err, "invalid theme payload")
	}
	if err := s.store.save(ctx, models.SettingTheme, CacheKeyTheme, theme, actorID); err != nil {
		return nil, err
	}
	return &theme, nil
}
