package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/service"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

const sample = `
station:
  title: Christmas Radio
  description: Holiday music all season
djs:
  - name: Jolly Jo
    bio: Mornings with carols
  - name: Cocoa Kate
programs:
  - name: Morning Cheer
    start_time: 6:00 AM
    end_time: 9:00 AM
    days: [Monday, Tuesday]
  - name: Morning Cheer
    start_time: 6:00 AM
    end_time: 9:00 AM
    days: [Monday]
legacy_programs:
  - name: Sunday Hymns
    start_time: Sundays 10:00 AM CST
    end_time: 11:00 AM CST
`

type recordingPrograms struct {
	seen   map[string]bool
	legacy []string
}

func (r *recordingPrograms) Add(ctx context.Context, req dto.CreateProgramRequest) ([]models.ProgramSlot, error) {
	var slots []models.ProgramSlot
	for _, day := range req.Days {
		key := req.Name + "|" + day
		if r.seen[key] {
			return nil, appErrors.Clone(appErrors.ErrConflict, "program already exists")
		}
		r.seen[key] = true
		slots = append(slots, models.ProgramSlot{Day: day})
	}
	return slots, nil
}

func (r *recordingPrograms) ImportLegacy(ctx context.Context, req dto.LegacyImportRequest) (*dto.LegacyImportResult, error) {
	for _, p := range req.Programs {
		r.legacy = append(r.legacy, p.Name)
	}
	return &dto.LegacyImportResult{Imported: len(req.Programs), Skipped: []string{}}, nil
}

type recordingDJs struct {
	names []string
	err   error
}

func (r *recordingDJs) Create(ctx context.Context, req dto.DJProfileRequest, photo *service.PhotoUpload) (*models.DJProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.names = append(r.names, req.Name)
	return &models.DJProfile{Name: req.Name}, nil
}

type recordingStation struct {
	saved *models.StationInformation
}

func (r *recordingStation) Update(ctx context.Context, info models.StationInformation, actorID string) (*models.StationInformation, error) {
	r.saved = &info
	return &info, nil
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAndApply(t *testing.T) {
	file, err := Load(writeSeed(t, sample))
	require.NoError(t, err)
	require.Len(t, file.Programs, 2)
	assert.Equal(t, []string{"Monday", "Tuesday"}, file.Programs[0].Days)

	programs := &recordingPrograms{seen: map[string]bool{}}
	djs := &recordingDJs{}
	station := &recordingStation{}
	result, err := NewSeeder(programs, djs, station, nil).Apply(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Programs)
	assert.Equal(t, 2, result.DJs)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"Jolly Jo", "Cocoa Kate"}, djs.names)
	assert.Equal(t, []string{"Sunday Hymns"}, programs.legacy)
	require.NotNil(t, station.saved)
	assert.Equal(t, "Christmas Radio", station.saved.Title)
}

func TestApplyStopsOnUnexpectedErrors(t *testing.T) {
	file := &File{DJs: []DJ{{Name: "Jolly Jo"}}}
	djs := &recordingDJs{err: appErrors.Wrap(errors.New("connection reset"), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create dj profile")}

	_, err := NewSeeder(&recordingPrograms{seen: map[string]bool{}}, djs, nil, nil).Apply(context.Background(), file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `seed dj "Jolly Jo"`)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeSeed(t, "djs: [unclosed"))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
