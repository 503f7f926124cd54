package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/onair"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

type staticSchedule struct {
	slots []models.ProgramSlot
	err   error
}

func (s staticSchedule) Slots(ctx context.Context) ([]models.ProgramSlot, error) {
	return s.slots, s.err
}

// Monday 16 December 2024.
func mondayAt(hour, minute int) time.Time {
	return time.Date(2024, time.December, 16, hour, minute, 0, 0, time.UTC)
}

func newOnAirFixture(at time.Time, slots []models.ProgramSlot) (*OnAirService, *stubSettingsRepo) {
	settings := newStubSettingsRepo()
	svc := NewOnAirService(staticSchedule{slots: slots}, settings, nil, FixedClock{At: at}, nil, zap.NewNop(), OnAirConfig{
		IdleMessage:     "Playing the best holiday music mix",
		UpcomingDefault: 2,
		UpcomingMax:     4,
	})
	return svc, settings
}

var weekSchedule = []models.ProgramSlot{
	{Name: "Morning Cheer", StartTime: "6:00 AM", EndTime: "9:00 AM", Day: "Weekdays"},
	{Name: "Afternoon Requests", StartTime: "3:00 PM", EndTime: "5:00 PM", Day: "Monday"},
	{Name: "Night Owl", StartTime: "11:00 PM", EndTime: "2:00 AM", Day: "Daily"},
	{Name: onair.FillerProgramName, StartTime: "12:00 AM", EndTime: "11:59 PM", Day: "Daily"},
}

func TestOnAirServiceStatus(t *testing.T) {
	tests := []struct {
		name    string
		at      time.Time
		slots   []models.ProgramSlot
		kind    onair.Kind
		message string
	}{
		{name: "live slot", at: mondayAt(7, 15), slots: weekSchedule, kind: onair.LiveSlot, message: "Morning Cheer"},
		{name: "crossover tail", at: mondayAt(1, 30), slots: weekSchedule, kind: onair.LiveSlot, message: "Night Owl"},
		{name: "filler", at: mondayAt(12, 0), slots: weekSchedule, kind: onair.FillerSlot, message: onair.FillerProgramName},
		{name: "idle", at: mondayAt(12, 0), slots: weekSchedule[:2], kind: onair.NoProgram, message: "Playing the best holiday music mix"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newOnAirFixture(tc.at, tc.slots)
			status, err := svc.Status(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.kind, status.Kind)
			assert.Equal(t, tc.message, status.Message)
			assert.Equal(t, "UTC", status.Timezone)
		})
	}
}

func TestOnAirServiceOverrideTakesPrecedence(t *testing.T) {
	svc, _ := newOnAirFixture(mondayAt(7, 15), weekSchedule)

	view, err := svc.SetOverride(context.Background(), dto.SetOverrideRequest{ProgramName: "Storm Coverage", DurationHours: 1.5}, "admin-1")
	require.NoError(t, err)
	assert.True(t, view.Active)
	assert.Equal(t, mondayAt(8, 45), view.EndTime)
	assert.Equal(t, mondayAt(8, 45).UnixNano(), view.EndTimeNs)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onair.OverrideActive, status.Kind)
	assert.Equal(t, "Storm Coverage", status.Message)
	require.NotNil(t, status.OverrideEnds)

	require.NoError(t, svc.ClearOverride(context.Background()))
	require.NoError(t, svc.ClearOverride(context.Background()))

	current, err := svc.GetOverride(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)

	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onair.LiveSlot, status.Kind)
}

func TestOnAirServiceExpiredOverrideIsIgnored(t *testing.T) {
	svc, settings := newOnAirFixture(mondayAt(12, 0), weekSchedule)
	store := newDocumentStore(settings, nil, nil)
	require.NoError(t, store.save(context.Background(), models.SettingOnAirOverride, CacheKeyOverride, onair.Override{
		ProgramName: "Yesterday's Special",
		StartTime:   mondayAt(9, 0),
		EndTime:     mondayAt(11, 0),
	}, ""))

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onair.FillerSlot, status.Kind)

	view, err := svc.GetOverride(context.Background())
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.False(t, view.Active)
}

func TestOnAirServiceSetOverrideValidates(t *testing.T) {
	svc, _ := newOnAirFixture(mondayAt(12, 0), weekSchedule)

	_, err := svc.SetOverride(context.Background(), dto.SetOverrideRequest{ProgramName: "Nothing", DurationHours: 0}, "")
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))

	_, err = svc.SetOverride(context.Background(), dto.SetOverrideRequest{DurationHours: 1}, "")
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(err))
	assert.Equal(t, []appErrors.FieldError{{Field: "override_program", Rule: "required"}}, appErrors.FromError(err).Details)
}

func TestOnAirServiceUpcoming(t *testing.T) {
	svc, _ := newOnAirFixture(mondayAt(14, 30), weekSchedule)

	shows, err := svc.Upcoming(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, shows, 2)
	assert.Equal(t, "Afternoon Requests", shows[0].Program.Name)
	assert.Equal(t, 30, shows[0].MinutesUntil)
	assert.Equal(t, "Starting in 30 minutes", shows[0].Label)
	assert.Equal(t, "Night Owl", shows[1].Program.Name)
	assert.Equal(t, "Starting in 8h 30m", shows[1].Label)

	shows, err = svc.Upcoming(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, shows, 4)
	assert.Equal(t, "Morning Cheer", shows[2].Program.Name)
	assert.Equal(t, "Coming up Weekdays", shows[2].Label)
	for _, show := range shows {
		assert.NotEqual(t, onair.FillerProgramName, show.Program.Name)
	}
}

func TestOnAirServiceScheduleError(t *testing.T) {
	settings := newStubSettingsRepo()
	svc := NewOnAirService(staticSchedule{err: appErrors.Clone(appErrors.ErrInternal, "boom")}, settings, nil, FixedClock{At: mondayAt(9, 0)}, nil, nil, OnAirConfig{})

	_, err := svc.Status(context.Background())
	assert.Equal(t, appErrors.ErrInternal.Code, errorCode(err))

	settings.getErr = errors.New("db down")
	_, err = svc.GetOverride(context.Background())
	assert.Error(t, err)
}
