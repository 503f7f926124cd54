package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/onair"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

type scheduleSource interface {
	Slots(ctx context.Context) ([]models.ProgramSlot, error)
}

// OnAirConfig carries the station settings the on-air views depend on.
type OnAirConfig struct {
	Location        *time.Location
	IdleMessage     string
	UpcomingDefault int
	UpcomingMax     int
}

// OnAirService answers "what is on now" and "what is next" against the clock.
// Nothing about a resolution is cached; only the schedule snapshot is.
type OnAirService struct {
	schedule  scheduleSource
	store     documentStore
	clock     Clock
	validator *validator.Validate
	logger    *zap.Logger
	config    OnAirConfig
}

// NewOnAirService wires the service.
func NewOnAirService(schedule scheduleSource, settings settingsRepository, cache *CacheService, clock Clock, validate *validator.Validate, logger *zap.Logger, cfg OnAirConfig) *OnAirService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.IdleMessage == "" {
		cfg.IdleMessage = "Playing the best music mix"
	}
	if cfg.UpcomingDefault <= 0 {
		cfg.UpcomingDefault = 2
	}
	if cfg.UpcomingMax < cfg.UpcomingDefault {
		cfg.UpcomingMax = cfg.UpcomingDefault
	}
	return &OnAirService{
		schedule:  schedule,
		store:     newDocumentStore(settings, cache, logger),
		clock:     clock,
		validator: validate,
		logger:    logger,
		config:    cfg,
	}
}

// Now returns the current instant in the station timezone.
func (s *OnAirService) Now() time.Time {
	return s.clock.Now().In(s.config.Location)
}

// Status resolves the program on air now.
func (s *OnAirService) Status(ctx context.Context) (*models.OnAirStatus, error) {
	now := s.Now()
	slots, err := s.slots(ctx)
	if err != nil {
		return nil, err
	}
	override, err := s.loadOverride(ctx)
	if err != nil {
		return nil, err
	}

	res := onair.Resolve(now, slots, override)
	status := &models.OnAirStatus{
		Kind:        res.Kind,
		EvaluatedAt: now,
		Timezone:    s.config.Location.String(),
	}
	switch res.Kind {
	case onair.OverrideActive:
		status.Override = res.Override
		ends := res.Override.EndTime
		status.OverrideEnds = &ends
		status.Message = res.Override.ProgramName
	case onair.LiveSlot, onair.FillerSlot:
		program := res.Slot.Program
		status.Program = &program
		status.Day = res.Slot.Day
		status.Message = program.Name
	default:
		status.Message = s.config.IdleMessage
	}
	return status, nil
}

// Upcoming lists the next live shows. limit <= 0 uses the configured default;
// larger values are capped at the configured maximum.
func (s *OnAirService) Upcoming(ctx context.Context, limit int) ([]models.UpcomingShow, error) {
	if limit <= 0 {
		limit = s.config.UpcomingDefault
	}
	if limit > s.config.UpcomingMax {
		limit = s.config.UpcomingMax
	}

	now := s.Now()
	slots, err := s.slots(ctx)
	if err != nil {
		return nil, err
	}

	shows := onair.UpcomingShows(now, slots, limit)
	out := make([]models.UpcomingShow, len(shows))
	for i, show := range shows {
		out[i] = models.UpcomingShow{
			Day:          show.Slot.Day,
			Program:      show.Slot.Program,
			MinutesUntil: show.MinutesUntil,
			Label:        show.Label(now),
		}
	}
	return out, nil
}

// GetOverride returns the stored override, expired or not, or nil when none was set.
func (s *OnAirService) GetOverride(ctx context.Context) (*models.OverrideView, error) {
	override, err := s.loadOverride(ctx)
	if err != nil || override == nil {
		return nil, err
	}
	view := models.NewOverrideView(*override, s.Now())
	return &view, nil
}

// SetOverride replaces the computed program for the requested number of hours from now.
// A previous override is replaced.
func (s *OnAirService) SetOverride(ctx context.Context, req dto.SetOverrideRequest, actorID string) (*models.OverrideView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid override payload")
	}

	now := s.Now()
	override := onair.Override{
		ProgramName: req.ProgramName,
		Description: req.Description,
		StartTime:   now,
		EndTime:     now.Add(time.Duration(req.DurationHours * float64(time.Hour))),
	}
	if err := s.store.save(ctx, models.SettingOnAirOverride, CacheKeyOverride, override, actorID); err != nil {
		return nil, err
	}

	s.logger.Info("on-air override set",
		zap.String("program", override.ProgramName),
		zap.Time("ends_at", override.EndTime),
		zap.String("actor", actorID),
	)
	view := models.NewOverrideView(override, now)
	return &view, nil
}

// ClearOverride removes the override. Clearing when none exists succeeds.
func (s *OnAirService) ClearOverride(ctx context.Context) error {
	return s.store.remove(ctx, models.SettingOnAirOverride, CacheKeyOverride)
}

func (s *OnAirService) loadOverride(ctx context.Context) (*onair.Override, error) {
	var override onair.Override
	found, err := s.store.load(ctx, models.SettingOnAirOverride, CacheKeyOverride, &override)
	if err != nil || !found {
		return nil, err
	}
	return &override, nil
}

// slots loads the schedule and logs, once per evaluation, the slots the resolver will skip.
func (s *OnAirService) slots(ctx context.Context) ([]onair.Slot, error) {
	rows, err := s.schedule.Slots(ctx)
	if err != nil {
		return nil, err
	}
	slots := models.Slots(rows)

	var broken, badDays []string
	for _, slot := range slots {
		if _, _, ok := slot.Window(); !ok {
			broken = append(broken, slot.Program.Name)
		}
		if !slot.IsFiller() && onair.ValidateDaySpecifier(slot.Day) != nil {
			badDays = append(badDays, slot.Program.Name)
		}
	}
	if len(broken) > 0 {
		s.logger.Warn("skipping slots with unparseable times", zap.Strings("programs", broken))
	}
	if len(badDays) > 0 {
		s.logger.Warn("slots with unknown day specifiers never air", zap.Strings("programs", badDays))
	}
	return slots, nil
}
