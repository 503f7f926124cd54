package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
	"github.com/noah-isme/radio-cms-api/pkg/jobs"
)

const publishJobType = "publish"

// PublishSections lists every content section a publish run can refresh, in run order.
var PublishSections = []string{"schedule", "djs", "theme", "station", "weather", "now-playing"}

// PublishConfig sizes the worker pool behind manual updates.
type PublishConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
	JobTimeout time.Duration
}

type publishPayload struct {
	Sections []string
	ActorID  string
}

// PublishService runs manual site updates in the background and records the last outcome.
type PublishService struct {
	queue     *jobs.Queue
	cache     *CacheService
	store     documentStore
	metrics   *MetricsService
	clock     Clock
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPublishService builds the service and its queue. Call Start before Run.
func NewPublishService(settings settingsRepository, cache *CacheService, metrics *MetricsService, clock Clock, validate *validator.Validate, logger *zap.Logger, cfg PublishConfig) *PublishService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if clock == nil {
		clock = RealClock{}
	}
	s := &PublishService{
		cache:     cache,
		store:     newDocumentStore(settings, cache, logger),
		metrics:   metrics,
		clock:     clock,
		validator: validate,
		logger:    logger,
	}
	s.queue = jobs.NewQueue(publishJobType, s.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		JobTimeout: cfg.JobTimeout,
		Logger:     logger,
		OnGiveUp:   s.giveUp,
	})
	return s
}

// Start launches the workers.
func (s *PublishService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop halts the workers. Jobs still buffered are dropped.
func (s *PublishService) Stop() {
	s.queue.Stop()
}

// Run queues a publish over the requested sections, all of them when none are given.
// With preview set nothing is queued and the returned result describes what would run.
func (s *PublishService) Run(ctx context.Context, req dto.RunUpdateRequest, actorID string, preview bool) (*models.LastUpdateResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid update payload")
	}
	sections := normalizeSections(req.Sections)

	result := &models.LastUpdateResult{
		UpdateTime: s.clock.Now().UTC(),
		Sections:   sections,
		JobID:      uuid.NewString(),
		Preview:    preview,
	}
	if preview {
		result.ResultText = "Would refresh " + strings.Join(sections, ", ")
		return result, nil
	}

	job := jobs.Job{
		ID:      result.JobID,
		Type:    publishJobType,
		Payload: publishPayload{Sections: sections, ActorID: actorID},
	}
	if err := s.queue.Enqueue(job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "update queue is unavailable")
	}
	result.ResultText = "Update queued"
	s.logger.Info("publish queued", zap.String("job_id", job.ID), zap.Strings("sections", sections), zap.String("actor", actorID))
	return result, nil
}

// Last returns the outcome of the most recent finished run, or nil.
func (s *PublishService) Last(ctx context.Context) (*models.LastUpdateResult, error) {
	var last models.LastUpdateResult
	found, err := s.store.load(ctx, models.SettingLastUpdate, CacheKeyLastUpdate, &last)
	if err != nil || !found {
		return nil, err
	}
	return &last, nil
}

func (s *PublishService) handle(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(publishPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	if err := s.cache.InvalidateSections(ctx, payload.Sections...); err != nil {
		return fmt.Errorf("invalidate sections: %w", err)
	}

	result := models.LastUpdateResult{
		UpdateTime: s.clock.Now().UTC(),
		ResultText: "Published " + strings.Join(payload.Sections, ", "),
		Sections:   payload.Sections,
		JobID:      job.ID,
	}
	if err := s.record(ctx, result, payload.ActorID); err != nil {
		return err
	}
	s.metrics.RecordPublishJob(false)
	return nil
}

func (s *PublishService) giveUp(job jobs.Job, cause error) {
	payload, _ := job.Payload.(publishPayload)
	result := models.LastUpdateResult{
		UpdateTime:   s.clock.Now().UTC(),
		ResultText:   fmt.Sprintf("Update failed after %d attempts: %v", job.Attempt, cause),
		UpdateFailed: true,
		Sections:     payload.Sections,
		JobID:        job.ID,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.record(ctx, result, payload.ActorID); err != nil {
		s.logger.Error("failed to record publish failure", zap.String("job_id", job.ID), zap.Error(err))
	}
	s.metrics.RecordPublishJob(true)
}

func (s *PublishService) record(ctx context.Context, result models.LastUpdateResult, actorID string) error {
	return s.store.save(ctx, models.SettingLastUpdate, CacheKeyLastUpdate, result, actorID)
}

// normalizeSections removes duplicates and orders sections like PublishSections.
func normalizeSections(requested []string) []string {
	if len(requested) == 0 {
		return append([]string(nil), PublishSections...)
	}
	wanted := make(map[string]struct{}, len(requested))
	for _, section := range requested {
		wanted[section] = struct{}{}
	}
	out := make([]string, 0, len(wanted))
	for _, section := range PublishSections {
		if _, ok := wanted[section]; ok {
			out = append(out, section)
		}
	}
	return out
}
