package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/radio-cms-api/internal/models"
	"github.com/noah-isme/radio-cms-api/internal/onair"
)

type scriptedSource struct {
	mu       sync.Mutex
	statuses []*models.OnAirStatus
	calls    int
	err      error
}

func (s *scriptedSource) Status(ctx context.Context) (*models.OnAirStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	idx := s.calls
	if idx >= len(s.statuses) {
		idx = len(s.statuses) - 1
	}
	s.calls++
	return s.statuses[idx], nil
}

func (s *scriptedSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type kindLog struct {
	mu      sync.Mutex
	kinds   []onair.Kind
	changes int
}

func (k *kindLog) SetOnAirKind(kind onair.Kind, changed bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.kinds = append(k.kinds, kind)
	if changed {
		k.changes++
	}
}

func TestOnAirWatcherCountsTransitions(t *testing.T) {
	source := &scriptedSource{statuses: []*models.OnAirStatus{
		{Kind: onair.LiveSlot, Message: "Morning Cheer"},
		{Kind: onair.LiveSlot, Message: "Morning Cheer"},
		{Kind: onair.FillerSlot, Message: onair.FillerProgramName},
		{Kind: onair.OverrideActive, Message: "Storm Coverage"},
	}}
	recorder := &kindLog{}
	core, logs := observer.New(zap.InfoLevel)
	w := NewOnAirWatcher(source, recorder, zap.New(core), "")

	for i := 0; i < 4; i++ {
		w.RunOnce(context.Background())
	}

	assert.Equal(t, []onair.Kind{onair.LiveSlot, onair.LiveSlot, onair.FillerSlot, onair.OverrideActive}, recorder.kinds)
	assert.Equal(t, 2, recorder.changes)
	assert.Equal(t, 1, logs.FilterMessage("onair.watcher: initial program").Len())
	assert.Equal(t, 2, logs.FilterMessage("onair.watcher: program changed").Len())
}

func TestOnAirWatcherSkipsFailedEvaluations(t *testing.T) {
	source := &scriptedSource{err: errors.New("database is down")}
	recorder := &kindLog{}
	core, logs := observer.New(zap.WarnLevel)
	w := NewOnAirWatcher(source, recorder, zap.New(core), DefaultPollSpec)

	w.RunOnce(context.Background())

	assert.Empty(t, recorder.kinds)
	assert.Equal(t, 1, logs.FilterMessage("onair.watcher: status evaluation failed").Len())
}

func TestOnAirWatcherStartFallsBackOnBadSpec(t *testing.T) {
	source := &scriptedSource{statuses: []*models.OnAirStatus{{Kind: onair.NoProgram}}}
	core, logs := observer.New(zap.WarnLevel)
	w := NewOnAirWatcher(source, nil, zap.New(core), "every now and then")

	w.Start(context.Background())
	t.Cleanup(w.Stop)

	require.Equal(t, 1, source.count())
	assert.Equal(t, 1, logs.FilterMessage("onair.watcher: invalid poll spec; falling back to default").Len())
}

func TestOnAirWatcherPolls(t *testing.T) {
	source := &scriptedSource{statuses: []*models.OnAirStatus{{Kind: onair.FillerSlot, Message: onair.FillerProgramName}}}
	w := NewOnAirWatcher(source, &kindLog{}, nil, "@every 1s")

	w.Start(context.Background())
	t.Cleanup(w.Stop)

	assert.Eventually(t, func() bool { return source.count() >= 2 }, 3*time.Second, 50*time.Millisecond)
}
