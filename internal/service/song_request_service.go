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

type songRequestRepository interface {
	Create(ctx context.Context, req *models.SongRequest) error
	List(ctx context.Context, filter models.SongRequestFilter) ([]models.SongRequest, int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// SongRequestService accepts listener requests and exposes them to admins.
type SongRequestService struct {
	repo      songRequestRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSongRequestService constructs the service.
func NewSongRequestService(repo songRequestRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *SongRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &SongRequestService{repo: repo, metrics: metrics, validator: validate, logger: logger}
}

// Submit stores a request from clientIP.
func (s *SongRequestService) Submit(ctx context.Context, req dto.SubmitSongRequest, clientIP string) (*models.SongRequest, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.SongTitle = strings.TrimSpace(req.SongTitle)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid song request")
	}

	record := &models.SongRequest{
		Name:      req.Name,
		SongTitle: req.SongTitle,
		Message:   req.Message,
		ClientIP:  clientIP,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save song request")
	}
	s.metrics.RecordSongRequest()
	return record, nil
}

// List returns requests newest first.
func (s *SongRequestService) List(ctx context.Context, filter models.SongRequestFilter) ([]models.SongRequest, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list song requests")
	}
	if requests == nil {
		requests = []models.SongRequest{}
	}
	return requests, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Clear deletes every request and reports how many were removed.
func (s *SongRequestService) Clear(ctx context.Context, actorID string) (int64, error) {
	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear song requests")
	}
	s.logger.Info("song requests cleared", zap.Int64("removed", removed), zap.String("actor", actorID))
	return removed, nil
}
