package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/onair"
	"github.com/noah-isme/radio-cms-api/internal/repository"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
	"github.com/noah-isme/radio-cms-api/pkg/export"
)

type programRepository interface {
	List(ctx context.Context) ([]models.ProgramSlot, error)
	FindByNameAndDay(ctx context.Context, name, day string) (*models.ProgramSlot, error)
	CreateMany(ctx context.Context, slots []models.ProgramSlot) error
	Update(ctx context.Context, slot *models.ProgramSlot) error
	Delete(ctx context.Context, name, day string) error
}

// Export formats accepted by ProgramService.Export.
const (
	ExportCSV = "csv"
	ExportPDF = "pdf"
)

// ProgramService manages the weekly program table.
type ProgramService struct {
	repo      programRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewProgramService constructs the service. loc is the station timezone used in export headers.
func NewProgramService(repo programRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, loc *time.Location) *ProgramService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ProgramService{
		repo:      repo,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		location:  loc,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// Slots returns the table in storage order, which is the order the resolver scans.
func (s *ProgramService) Slots(ctx context.Context) ([]models.ProgramSlot, error) {
	var slots []models.ProgramSlot
	if hit, _ := s.cache.Get(ctx, CacheKeySchedule, &slots); hit {
		return slots, nil
	}
	start := time.Now()
	slots, err := s.repo.List(ctx)
	s.metrics.ObserveDBQuery("program_slots_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	if slots == nil {
		slots = []models.ProgramSlot{}
	}
	_ = s.cache.Set(ctx, CacheKeySchedule, slots, 0)
	return slots, nil
}

// List returns every slot sorted by day, start time and name.
func (s *ProgramService) List(ctx context.Context) ([]models.ProgramSlot, error) {
	slots, err := s.Slots(ctx)
	if err != nil {
		return nil, err
	}
	sorted := make([]models.ProgramSlot, len(slots))
	copy(sorted, slots)
	sortSlots(sorted)
	return sorted, nil
}

// GroupByDay buckets the sorted slots by day specifier. Specifiers differing only by case share a bucket.
func (s *ProgramService) GroupByDay(ctx context.Context) ([]models.ScheduleDay, error) {
	slots, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	days := make([]models.ScheduleDay, 0)
	index := make(map[string]int)
	for _, slot := range slots {
		key := strings.ToLower(strings.TrimSpace(slot.Day))
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, models.ScheduleDay{Day: slot.Day})
		}
		days[i].Slots = append(days[i].Slots, slot)
	}
	return days, nil
}

// ForDay returns the slots airing on day. A weekday name ("Monday", "fridays")
// selects every slot whose specifier covers it; any other value is matched
// literally against the stored specifier.
func (s *ProgramService) ForDay(ctx context.Context, day string) ([]models.ProgramSlot, error) {
	day = strings.TrimSpace(day)
	if day == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day is required")
	}
	slots, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.ProgramSlot, 0)
	if idx := onair.DayIndex(day); idx >= 0 {
		weekday := onair.WeekDays[idx]
		for _, slot := range slots {
			if onair.DayMatches(slot.Day, weekday) {
				result = append(result, slot)
			}
		}
		return result, nil
	}
	for _, slot := range slots {
		if strings.EqualFold(strings.TrimSpace(slot.Day), day) {
			result = append(result, slot)
		}
	}
	return result, nil
}

// Add creates one slot per requested day.
func (s *ProgramService) Add(ctx context.Context, req dto.CreateProgramRequest) ([]models.ProgramSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid program payload")
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	name := strings.TrimSpace(req.Name)
	seen := make(map[string]struct{}, len(req.Days))
	created := make([]models.ProgramSlot, 0, len(req.Days))
	for _, day := range req.Days {
		day = strings.TrimSpace(day)
		key := strings.ToLower(day)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		slot := models.ProgramSlot{
			Name:        name,
			Description: strings.TrimSpace(req.Description),
			Bio:         strings.TrimSpace(req.Bio),
			StartTime:   strings.TrimSpace(req.StartTime),
			EndTime:     strings.TrimSpace(req.EndTime),
			Day:         day,
		}
		if err := checkConflicts(slot, append(existing, created...), ""); err != nil {
			return nil, err
		}
		created = append(created, slot)
	}

	if err := s.repo.CreateMany(ctx, created); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "program already scheduled on that day")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create program")
	}

	s.invalidate(ctx)
	s.logger.Info("program added", zap.String("name", name), zap.Int("slots", len(created)))
	return created, nil
}

// Update edits the slot (name, old_day) and optionally moves it to new_day.
func (s *ProgramService) Update(ctx context.Context, req dto.UpdateProgramRequest) (*models.ProgramSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid program payload")
	}

	name := strings.TrimSpace(req.Name)
	slot, err := s.repo.FindByNameAndDay(ctx, name, strings.TrimSpace(req.OldDay))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found for that day")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program")
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	slot.Description = strings.TrimSpace(req.Description)
	slot.Bio = strings.TrimSpace(req.Bio)
	slot.StartTime = strings.TrimSpace(req.StartTime)
	slot.EndTime = strings.TrimSpace(req.EndTime)
	slot.Day = strings.TrimSpace(req.TargetDay())
	if err := checkConflicts(*slot, existing, slot.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found for that day")
		case repository.IsUniqueViolation(err):
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "program already scheduled on that day")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update program")
	}

	s.invalidate(ctx)
	return slot, nil
}

// Delete removes the program from one day.
func (s *ProgramService) Delete(ctx context.Context, name, day string) error {
	name, day = strings.TrimSpace(name), strings.TrimSpace(day)
	if name == "" || day == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name and day are required")
	}
	if err := s.repo.Delete(ctx, name, day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "program not found for that day")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete program")
	}
	s.invalidate(ctx)
	return nil
}

// ImportLegacy converts programs whose times embed the day and stores the ones
// that parse, are not yet scheduled and do not clash with live shows.
func (s *ProgramService) ImportLegacy(ctx context.Context, req dto.LegacyImportRequest) (*dto.LegacyImportResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid import payload")
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	converted, skipped := onair.SlotsFromLegacy(req.Programs)
	result := &dto.LegacyImportResult{Skipped: skipped}
	if result.Skipped == nil {
		result.Skipped = []string{}
	}

	accepted := make([]models.ProgramSlot, 0, len(converted))
	for _, slot := range converted {
		row := models.ProgramSlot{
			Name:        strings.TrimSpace(slot.Program.Name),
			Description: slot.Program.Description,
			Bio:         slot.Program.Bio,
			StartTime:   slot.Program.StartTime,
			EndTime:     slot.Program.EndTime,
			Day:         slot.Day,
		}
		if row.Name == "" || onair.ValidateDaySpecifier(row.Day) != nil {
			result.Skipped = append(result.Skipped, slot.Program.Name)
			continue
		}
		if err := checkConflicts(row, append(existing, accepted...), ""); err != nil {
			s.logger.Warn("legacy program skipped", zap.String("name", row.Name), zap.String("day", row.Day), zap.Error(err))
			result.Skipped = append(result.Skipped, row.Name)
			continue
		}
		accepted = append(accepted, row)
	}

	if err := s.repo.CreateMany(ctx, accepted); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import programs")
	}
	if len(accepted) > 0 {
		s.invalidate(ctx)
	}
	result.Imported = len(accepted)
	return result, nil
}

// Export renders the sorted schedule as CSV or PDF and returns the body with its content type.
func (s *ProgramService) Export(ctx context.Context, format string) ([]byte, string, error) {
	slots, err := s.List(ctx)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Day", "Start", "End", "Program", "Description"},
		Widths:  map[string]float64{"Day": 1.2, "Start": 0.8, "End": 0.8, "Program": 2, "Description": 4},
	}
	for _, slot := range slots {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":         slot.Day,
			"Start":       slot.StartTime,
			"End":         slot.EndTime,
			"Program":     slot.Name,
			"Description": slot.Description,
		})
	}

	switch strings.ToLower(format) {
	case "", ExportCSV:
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return body, "text/csv", nil
	case ExportPDF:
		body, err := s.pdf.Render(dataset, "Weekly Program Schedule", "All times "+s.location.String())
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return body, "application/pdf", nil
	}
	return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
}

func (s *ProgramService) invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, SectionPatterns["schedule"])
}

// checkConflicts rejects a duplicate (name, day) and any overlap between live
// slots. The filler program may overlap anything. skipID excludes the slot being edited.
func checkConflicts(candidate models.ProgramSlot, existing []models.ProgramSlot, skipID string) error {
	next := candidate.Slot()
	for _, other := range existing {
		if skipID != "" && other.ID == skipID {
			continue
		}
		if other.Name == candidate.Name && strings.EqualFold(strings.TrimSpace(other.Day), strings.TrimSpace(candidate.Day)) {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s is already scheduled on %s", candidate.Name, candidate.Day))
		}
		if next.IsFiller() || other.Slot().IsFiller() {
			continue
		}
		if onair.Overlaps(next, other.Slot()) {
			return appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s on %s overlaps %s on %s", candidate.Name, candidate.Day, other.Name, other.Day))
		}
	}
	return nil
}

func sortSlots(slots []models.ProgramSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if da, db := onair.DayOrder(a.Day), onair.DayOrder(b.Day); da != db {
			return da < db
		}
		sa, sb := startMinute(a), startMinute(b)
		if sa != sb {
			return sa < sb
		}
		return a.Name < b.Name
	})
}

// startMinute sorts unparseable start times after every valid one.
func startMinute(slot models.ProgramSlot) int {
	t, ok := onair.ParseTimeOfDay(slot.StartTime)
	if !ok {
		return onair.MinutesPerDay
	}
	return int(t)
}
