package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/radio-cms-api/internal/onair"
)

func TestMetricsServiceOnAirGauge(t *testing.T) {
	m := NewMetricsService()

	m.SetOnAirKind(onair.LiveSlot, false)
	m.SetOnAirKind(onair.OverrideActive, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.onAirKind.WithLabelValues(onair.OverrideActive.String())))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.onAirKind.WithLabelValues(onair.LiveSlot.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.onAirChanges))

	snapshot := m.Snapshot()
	assert.Equal(t, onair.OverrideActive.String(), snapshot.OnAirKind)
	assert.Equal(t, uint64(1), snapshot.OnAirTransitions)
}

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.RecordPublishJob(false)
	m.RecordPublishJob(true)
	m.RecordSongRequest()
	m.RecordRateLimited("song-requests")
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/on-air", http.StatusOK, 20*time.Millisecond)
	m.ObserveDBQuery("program_slots_list", 4*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.publishJobs.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.songRequests))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited.WithLabelValues("song-requests")))

	snapshot := m.Snapshot()
	assert.Equal(t, uint64(1), snapshot.PublishJobsFailed)
	assert.Equal(t, uint64(1), snapshot.RequestsTotal)
	assert.InDelta(t, 20, snapshot.AverageRequestDurationMs, 0.001)
	assert.InDelta(t, 4, snapshot.AverageDBQueryDurationMs, 0.001)
}

func TestMetricsServiceHandler(t *testing.T) {
	m := NewMetricsService()
	m.RecordSongRequest()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "song_requests_total 1")

	var disabled *MetricsService
	rec = httptest.NewRecorder()
	disabled.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotPanics(t, func() { disabled.SetOnAirKind(onair.NoProgram, true) })
}
