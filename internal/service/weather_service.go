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

// WeatherService keeps the forecast pushed by admins.
type WeatherService struct {
	store     documentStore
	clock     Clock
	validator *validator.Validate
}

// NewWeatherService constructs the service.
func NewWeatherService(settings settingsRepository, cache *CacheService, clock Clock, validate *validator.Validate, logger *zap.Logger) *WeatherService {
	if validate == nil {
		validate = NewValidator()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &WeatherService{store: newDocumentStore(settings, cache, logger), clock: clock, validator: validate}
}

// Get returns the stored forecast or nil.
func (s *WeatherService) Get(ctx context.Context) (*models.WeatherData, error) {
	var data models.WeatherData
	found, err := s.store.load(ctx, models.SettingWeather, CacheKeyWeather, &data)
	if err != nil || !found {
		return nil, err
	}
	return &data, nil
}

// Replace overwrites the forecast.
func (s *WeatherService) Replace(ctx context.Context, req dto.UpdateWeatherRequest, actorID string) (*models.WeatherData, error) {
	for i := range req.Days {
		req.Days[i].Date = strings.TrimSpace(req.Days[i].Date)
		req.Days[i].Summary = strings.TrimSpace(req.Days[i].Summary)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid weather payload")
	}
	data := models.WeatherData{Days: req.Days, UpdatedAt: s.clock.Now().UTC()}
	if err := s.store.save(ctx, models.SettingWeather, CacheKeyWeather, data, actorID); err != nil {
		return nil, err
	}
	return &data, nil
}
