// Package seed loads a starter schedule and roster from YAML on boot.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/onair"
	"github.com/noah-isme/radio-cms-api/internal/service"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

// File is the seed document.
//
//	station:
//	  title: Christmas Radio
//	  description: Holiday music all season
//	djs:
//	  - name: Jolly Jo
//	    bio: Mornings with carols
//	programs:
//	  - name: Morning Cheer
//	    start_time: 6:00 AM
//	    end_time: 9:00 AM
//	    days: [Weekdays]
//	legacy_programs:
//	  - name: Sunday Hymns
//	    start_time: Sundays 10:00 AM CST
//	    end_time: 11:00 AM CST
type File struct {
	Station        *models.StationInformation `yaml:"station"`
	DJs            []DJ                       `yaml:"djs"`
	Programs       []Program                  `yaml:"programs"`
	LegacyPrograms []onair.LegacyProgram      `yaml:"legacy_programs"`
}

// DJ is a roster entry without a photo.
type DJ struct {
	Name string `yaml:"name"`
	Bio  string `yaml:"bio"`
}

// Program is one program aired on one or more days.
type Program struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Bio         string   `yaml:"bio"`
	StartTime   string   `yaml:"start_time"`
	EndTime     string   `yaml:"end_time"`
	Days        []string `yaml:"days"`
}

// Load reads and parses a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return &file, nil
}

type programAdder interface {
	Add(ctx context.Context, req dto.CreateProgramRequest) ([]models.ProgramSlot, error)
	ImportLegacy(ctx context.Context, req dto.LegacyImportRequest) (*dto.LegacyImportResult, error)
}

type djCreator interface {
	Create(ctx context.Context, req dto.DJProfileRequest, photo *service.PhotoUpload) (*models.DJProfile, error)
}

type stationUpdater interface {
	Update(ctx context.Context, info models.StationInformation, actorID string) (*models.StationInformation, error)
}

// Seeder applies a seed file through the services, so every entry passes the
// same validation as an API write. Entries that already exist are skipped,
// which makes a reseed on every boot harmless.
type Seeder struct {
	programs programAdder
	djs      djCreator
	station  stationUpdater
	logger   *zap.Logger
}

// Result counts what a run changed.
type Result struct {
	Programs int
	DJs      int
	Skipped  int
}

// NewSeeder creates a seeder.
func NewSeeder(programs programAdder, djs djCreator, station stationUpdater, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{programs: programs, djs: djs, station: station, logger: logger}
}

// Apply writes file. Only unexpected failures abort the run.
func (s *Seeder) Apply(ctx context.Context, file *File) (*Result, error) {
	result := &Result{}

	if file.Station != nil && s.station != nil {
		if _, err := s.station.Update(ctx, *file.Station, "seed"); err != nil {
			return result, fmt.Errorf("seed station: %w", err)
		}
	}

	for _, dj := range file.DJs {
		_, err := s.djs.Create(ctx, dto.DJProfileRequest{Name: dj.Name, Bio: dj.Bio}, nil)
		if skip, err := s.skippable(err, "dj", dj.Name); err != nil {
			return result, err
		} else if skip {
			result.Skipped++
			continue
		}
		result.DJs++
	}

	for _, program := range file.Programs {
		slots, err := s.programs.Add(ctx, dto.CreateProgramRequest{
			Name:        program.Name,
			Description: program.Description,
			Bio:         program.Bio,
			StartTime:   program.StartTime,
			EndTime:     program.EndTime,
			Days:        program.Days,
		})
		if skip, err := s.skippable(err, "program", program.Name); err != nil {
			return result, err
		} else if skip {
			result.Skipped++
			continue
		}
		result.Programs += len(slots)
	}

	if len(file.LegacyPrograms) > 0 {
		imported, err := s.programs.ImportLegacy(ctx, dto.LegacyImportRequest{Programs: file.LegacyPrograms})
		if err != nil {
			return result, fmt.Errorf("seed legacy programs: %w", err)
		}
		result.Programs += imported.Imported
		result.Skipped += len(imported.Skipped)
	}

	s.logger.Info("seed applied",
		zap.Int("programs", result.Programs),
		zap.Int("djs", result.DJs),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// skippable reports conflicts and validation failures as skips.
func (s *Seeder) skippable(err error, kind, name string) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, appErrors.ErrConflict) || errors.Is(err, appErrors.ErrValidation) {
		s.logger.Debug("seed entry skipped", zap.String("kind", kind), zap.String("name", name), zap.Error(err))
		return true, nil
	}
	return false, fmt.Errorf("seed %s %q: %w", kind, name, err)
}
