package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/repository"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
	"github.com/noah-isme/radio-cms-api/pkg/storage"
)

type djRepository interface {
	List(ctx context.Context) ([]models.DJProfile, error)
	FindByID(ctx context.Context, id string) (*models.DJProfile, error)
	FindByName(ctx context.Context, name string) (*models.DJProfile, error)
	Create(ctx context.Context, profile *models.DJProfile) error
	Update(ctx context.Context, profile *models.DJProfile) error
	Delete(ctx context.Context, id string) error
}

// PhotoUpload is an uploaded DJ photo. Size is the declared length in bytes.
type PhotoUpload struct {
	Body io.ReadSeeker
	Size int64
}

// DJConfig bounds photo uploads.
type DJConfig struct {
	MaxPhotoBytes int64
	AllowedMIMEs  []string
}

// DJService manages the DJ roster and their photos.
type DJService struct {
	repo      djRepository
	storage   storage.Provider
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	config    DJConfig
}

// NewDJService constructs the service.
func NewDJService(repo djRepository, store storage.Provider, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cfg DJConfig) *DJService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if cfg.MaxPhotoBytes <= 0 {
		cfg.MaxPhotoBytes = 5 << 20
	}
	if len(cfg.AllowedMIMEs) == 0 {
		cfg.AllowedMIMEs = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	}
	return &DJService{repo: repo, storage: store, cache: cache, validator: validate, logger: logger, config: cfg}
}

// List returns the roster ordered by name with photo links attached. The cached
// copy carries the links, so the cache TTL must stay below the signed URL TTL.
func (s *DJService) List(ctx context.Context) ([]models.DJProfile, error) {
	var profiles []models.DJProfile
	if hit, _ := s.cache.Get(ctx, CacheKeyDJs, &profiles); hit {
		return profiles, nil
	}
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list dj profiles")
	}
	if profiles == nil {
		profiles = []models.DJProfile{}
	}
	for i := range profiles {
		s.attachPhotoURL(ctx, &profiles[i])
	}
	_ = s.cache.Set(ctx, CacheKeyDJs, profiles, 0)
	return profiles, nil
}

// Get returns one profile.
func (s *DJService) Get(ctx context.Context, id string) (*models.DJProfile, error) {
	profile, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachPhotoURL(ctx, profile)
	return profile, nil
}

// Create adds a profile. Names are unique regardless of case.
func (s *DJService) Create(ctx context.Context, req dto.DJProfileRequest, photo *PhotoUpload) (*models.DJProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid dj payload")
	}
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	profile := &models.DJProfile{ID: uuid.NewString(), Name: name, Bio: strings.TrimSpace(req.Bio)}
	if photo != nil {
		if err := s.storePhoto(ctx, profile, photo); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		s.discardPhoto(ctx, profile.PhotoKey)
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "dj name already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create dj profile")
	}

	s.invalidate(ctx)
	s.attachPhotoURL(ctx, profile)
	return profile, nil
}

// Update edits a profile. A new photo replaces the previous one.
func (s *DJService) Update(ctx context.Context, id string, req dto.DJProfileRequest, photo *PhotoUpload) (*models.DJProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid dj payload")
	}
	profile, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if !strings.EqualFold(name, profile.Name) {
		if err := s.ensureNameFree(ctx, name, profile.ID); err != nil {
			return nil, err
		}
	}
	profile.Name = name
	profile.Bio = strings.TrimSpace(req.Bio)

	previousKey := profile.PhotoKey
	if photo != nil {
		if err := s.storePhoto(ctx, profile, photo); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		if photo != nil {
			s.discardPhoto(ctx, profile.PhotoKey)
		}
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "dj profile not found")
		case repository.IsUniqueViolation(err):
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "dj name already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update dj profile")
	}
	if photo != nil {
		s.discardPhoto(ctx, previousKey)
	}

	s.invalidate(ctx)
	s.attachPhotoURL(ctx, profile)
	return profile, nil
}

// Delete removes a profile and its photo.
func (s *DJService) Delete(ctx context.Context, id string) error {
	profile, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, profile.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "dj profile not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete dj profile")
	}
	s.discardPhoto(ctx, profile.PhotoKey)
	s.invalidate(ctx)
	return nil
}

func (s *DJService) find(ctx context.Context, id string) (*models.DJProfile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "dj profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dj profile")
	}
	return profile, nil
}

func (s *DJService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check dj name")
	}
	if existing.ID != selfID {
		return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("dj %q already exists", name))
	}
	return nil
}

// storePhoto sniffs the upload, checks it against the limits and writes it under a fresh key.
func (s *DJService) storePhoto(ctx context.Context, profile *models.DJProfile, photo *PhotoUpload) error {
	if s.storage == nil {
		return appErrors.Clone(appErrors.ErrUnavailable, "photo storage is not configured")
	}
	if photo.Size > s.config.MaxPhotoBytes {
		return appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("photo exceeds %d bytes", s.config.MaxPhotoBytes))
	}

	detected, err := mimetype.DetectReader(photo.Body)
	if err != nil {
		return appErrors.Validation(err, "unable to read photo")
	}
	if !s.allowed(detected) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("photo type %s is not allowed", detected.String()))
	}
	if _, err := photo.Body.Seek(0, io.SeekStart); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to rewind photo")
	}

	contentType := strings.SplitN(detected.String(), ";", 2)[0]
	key := fmt.Sprintf("djs/%s/%s%s", profile.ID, uuid.NewString(), detected.Extension())
	if err := s.storage.Put(ctx, key, photo.Body, photo.Size, contentType); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store photo")
	}
	profile.PhotoKey = &key
	profile.PhotoContentType = &contentType
	return nil
}

func (s *DJService) allowed(detected *mimetype.MIME) bool {
	for _, mime := range s.config.AllowedMIMEs {
		if detected.Is(mime) {
			return true
		}
	}
	return false
}

func (s *DJService) discardPhoto(ctx context.Context, key *string) {
	if key == nil || *key == "" || s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, *key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		s.logger.Warn("failed to delete dj photo", zap.String("key", *key), zap.Error(err))
	}
}

func (s *DJService) attachPhotoURL(ctx context.Context, profile *models.DJProfile) {
	if !profile.HasPhoto() || s.storage == nil {
		return
	}
	url, err := s.storage.URL(ctx, *profile.PhotoKey)
	if err != nil {
		s.logger.Warn("failed to sign dj photo url", zap.String("dj", profile.ID), zap.Error(err))
		return
	}
	profile.PhotoURL = url
}

func (s *DJService) invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, SectionPatterns["djs"])
}
