package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/onair"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

type stubProgramRepo struct {
	mu      sync.Mutex
	slots   []models.ProgramSlot
	nextID  int
	listErr error
}

func (s *stubProgramRepo) List(ctx context.Context) ([]models.ProgramSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.ProgramSlot(nil), s.slots...), nil
}

func (s *stubProgramRepo) FindByNameAndDay(ctx context.Context, name, day string) (*models.ProgramSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range s.slots {
		if slot.Name == name && strings.EqualFold(slot.Day, day) {
			found := slot
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubProgramRepo) CreateMany(ctx context.Context, slots []models.ProgramSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range slots {
		s.nextID++
		slot.ID = fmt.Sprintf("slot-%d", s.nextID)
		s.slots = append(s.slots, slot)
	}
	return nil
}

func (s *stubProgramRepo) Update(ctx context.Context, slot *models.ProgramSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].ID == slot.ID {
			s.slots[i] = *slot
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *stubProgramRepo) Delete(ctx context.Context, name, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, slot := range s.slots {
		if slot.Name == name && strings.EqualFold(slot.Day, day) {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func seededProgramRepo() *stubProgramRepo {
	repo := &stubProgramRepo{}
	_ = repo.CreateMany(context.Background(), []models.ProgramSlot{
		{Name: "Evening Carols", StartTime: "7:00 PM", EndTime: "9:00 PM", Day: "Fridays"},
		{Name: "Morning Cheer", StartTime: "6:00 AM", EndTime: "9:00 AM", Day: "Weekdays"},
		{Name: onair.FillerProgramName, StartTime: "12:00 AM", EndTime: "11:59 PM", Day: "Daily"},
		{Name: "Sunday Hymns", StartTime: "10:00 AM", EndTime: "11:00 AM", Day: "Sunday"},
	})
	return repo
}

func newProgramFixture() (*ProgramService, *stubProgramRepo) {
	repo := seededProgramRepo()
	return NewProgramService(repo, nil, nil, nil, zap.NewNop(), nil), repo
}

func errorCode(err error) string {
	return appErrors.FromError(err).Code
}

func TestProgramServiceListSortsByDayThenStart(t *testing.T) {
	svc, _ := newProgramFixture()

	slots, err := svc.List(context.Background())
	require.NoError(t, err)

	names := make([]string, len(slots))
	for i, slot := range slots {
		names[i] = slot.Name
	}
	assert.Equal(t, []string{onair.FillerProgramName, "Sunday Hymns", "Morning Cheer", "Evening Carols"}, names)

	raw, err := svc.Slots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Evening Carols", raw[0].Name)
}

func TestProgramServiceGroupByDay(t *testing.T) {
	svc, repo := newProgramFixture()
	_ = repo.CreateMany(context.Background(), []models.ProgramSlot{
		{Name: "Late Sunday", StartTime: "8:00 PM", EndTime: "9:00 PM", Day: "sunday"},
	})

	days, err := svc.GroupByDay(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Equal(t, "Daily", days[0].Day)
	assert.Equal(t, "Sunday", days[1].Day)
	assert.Len(t, days[1].Slots, 2)
}

func TestProgramServiceForDay(t *testing.T) {
	svc, _ := newProgramFixture()

	friday, err := svc.ForDay(context.Background(), "friday")
	require.NoError(t, err)
	assert.Len(t, friday, 3)

	literal, err := svc.ForDay(context.Background(), "weekdays")
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "Morning Cheer", literal[0].Name)

	none, err := svc.ForDay(context.Background(), "Someday")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.ForDay(context.Background(), "  ")
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))
}

func TestProgramServiceAdd(t *testing.T) {
	svc, repo := newProgramFixture()

	created, err := svc.Add(context.Background(), dto.CreateProgramRequest{
		Name:      "Holiday Requests",
		StartTime: "3:00 PM",
		EndTime:   "5:00 PM CST",
		Days:      []string{"Monday", "monday", "Wednesday"},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Len(t, repo.slots, 6)
}

func TestProgramServiceAddRejectsConflicts(t *testing.T) {
	svc, _ := newProgramFixture()

	tests := []struct {
		name string
		req  dto.CreateProgramRequest
		code string
	}{
		{
			name: "overlaps live slot",
			req:  dto.CreateProgramRequest{Name: "Early Bird", StartTime: "8:00 AM", EndTime: "10:00 AM", Days: []string{"Tuesday"}},
			code: appErrors.ErrConflict.Code,
		},
		{
			name: "duplicate name and day",
			req:  dto.CreateProgramRequest{Name: "Sunday Hymns", StartTime: "1:00 PM", EndTime: "2:00 PM", Days: []string{"sunday"}},
			code: appErrors.ErrConflict.Code,
		},
		{
			name: "bad day specifier",
			req:  dto.CreateProgramRequest{Name: "Mystery", StartTime: "1:00 PM", EndTime: "2:00 PM", Days: []string{"Funday"}},
			code: appErrors.ErrValidation.Code,
		},
		{
			name: "bad clock time",
			req:  dto.CreateProgramRequest{Name: "Mystery", StartTime: "13h", EndTime: "2:00 PM", Days: []string{"Monday"}},
			code: appErrors.ErrValidation.Code,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, errorCode(err))
		})
	}
}

func TestProgramServiceFillerMayOverlap(t *testing.T) {
	svc, _ := newProgramFixture()

	_, err := svc.Add(context.Background(), dto.CreateProgramRequest{
		Name: "Lunch Bells", StartTime: "12:00 PM", EndTime: "1:00 PM", Days: []string{"Daily"},
	})
	require.NoError(t, err)
}

func TestProgramServiceCrossingSlotDoesNotBlockNextDay(t *testing.T) {
	svc, _ := newProgramFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, dto.CreateProgramRequest{
		Name: "Friday Late", StartTime: "11:00 PM", EndTime: "1:00 AM", Days: []string{"Friday"},
	})
	require.NoError(t, err)

	_, err = svc.Add(ctx, dto.CreateProgramRequest{
		Name: "Sat Early", StartTime: "12:00 AM", EndTime: "2:00 AM", Days: []string{"Saturday"},
	})
	require.NoError(t, err)

	_, err = svc.Add(ctx, dto.CreateProgramRequest{
		Name: "Night Owls", StartTime: "11:30 PM", EndTime: "12:30 AM", Days: []string{"Friday"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, errorCode(err))
}

func TestProgramServiceUpdateMovesDay(t *testing.T) {
	svc, repo := newProgramFixture()

	updated, err := svc.Update(context.Background(), dto.UpdateProgramRequest{
		Name:        "Sunday Hymns",
		Description: "Choir favourites",
		StartTime:   "10:00 AM",
		EndTime:     "12:00 PM",
		OldDay:      "Sunday",
		NewDay:      "Saturday",
	})
	require.NoError(t, err)
	assert.Equal(t, "Saturday", updated.Day)

	_, err = repo.FindByNameAndDay(context.Background(), "Sunday Hymns", "Saturday")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), dto.UpdateProgramRequest{
		Name: "Ghost", StartTime: "1:00 PM", EndTime: "2:00 PM", OldDay: "Monday",
	})
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(err))
}

func TestProgramServiceUpdateDetectsOverlap(t *testing.T) {
	svc, _ := newProgramFixture()

	_, err := svc.Update(context.Background(), dto.UpdateProgramRequest{
		Name: "Evening Carols", StartTime: "8:00 AM", EndTime: "10:00 AM", OldDay: "Fridays",
	})
	assert.Equal(t, appErrors.ErrConflict.Code, errorCode(err))
}

func TestProgramServiceDelete(t *testing.T) {
	svc, repo := newProgramFixture()

	require.NoError(t, svc.Delete(context.Background(), "Sunday Hymns", "sunday"))
	assert.Len(t, repo.slots, 3)

	err := svc.Delete(context.Background(), "Sunday Hymns", "Sunday")
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(err))

	err = svc.Delete(context.Background(), "", "Sunday")
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))
}

func TestProgramServiceImportLegacy(t *testing.T) {
	svc, repo := newProgramFixture()

	result, err := svc.ImportLegacy(context.Background(), dto.LegacyImportRequest{Programs: []onair.LegacyProgram{
		{Name: "Fireside Stories", StartTime: "Saturdays 3:00 PM CST", EndTime: "Saturdays 4:00 PM CST"},
		{Name: "Clash", StartTime: "Friday 7:30 PM", EndTime: "Friday 8:30 PM"},
		{Name: "Garbled", StartTime: "sometime", EndTime: "later"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.ElementsMatch(t, []string{"Garbled", "Clash"}, result.Skipped)

	saved, err := repo.FindByNameAndDay(context.Background(), "Fireside Stories", "Saturdays")
	require.NoError(t, err)
	assert.Equal(t, "3:00 PM", saved.StartTime)
}

func TestProgramServiceExport(t *testing.T) {
	svc, _ := newProgramFixture()

	body, contentType, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(body), "Sunday Hymns")

	body, contentType, err = svc.Export(context.Background(), "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	_, _, err = svc.Export(context.Background(), "xlsx")
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))
}
