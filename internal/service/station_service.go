package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/models"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

// StationService stores the editable station information page.
type StationService struct {
	store       documentStore
	validator   *validator.Validate
	stationName string
}

// NewStationService constructs the service. stationName titles the page until an admin edits it.
func NewStationService(settings settingsRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, stationName string) *StationService {
	if validate == nil {
		validate = NewValidator()
	}
	return &StationService{store: newDocumentStore(settings, cache, logger), validator: validate, stationName: stationName}
}

// Get returns the stored information.
func (s *StationService) Get(ctx context.Context) (*models.StationInformation, error) {
	info := models.StationInformation{Title: s.stationName}
	if _, err := s.store.load(ctx, models.SettingStation, CacheKeyStation, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Update replaces the information after trimming every field.
func (s *StationService) Update(ctx context.Context, info models.StationInformation, actorID string) (*models.StationInformation, error) {
	info.Title = strings.TrimSpace(info.Title)
	info.Description = strings.TrimSpace(info.Description)
	info.Content = strings.TrimSpace(info.Content)
	if err := s.validator.Struct(info); err != nil {
		return nil, appErrors.Validation(err, "invalid station information")
	}
	if err := s.store.save(ctx, models.SettingStation, CacheKeyStation, info, actorID); err != nil {
		return nil, err
	}
	return &info, nil
}
