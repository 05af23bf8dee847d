package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/calendar", 200, 20*time.Millisecond)
	m.ObserveBackendCall(http.MethodGet, "/api/events", 200, time.Millisecond)
	m.ObserveBackendCall(http.MethodGet, "/api/events", 0, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordStaleFallback()

	snap := m.Snapshot()
	assert.Equal(t, uint64(1), snap.Requests)
	assert.InDelta(t, 20.0, snap.AvgRequestMs, 0.01)
	assert.Equal(t, uint64(2), snap.BackendCalls)
	assert.Equal(t, uint64(1), snap.BackendErrors)
	assert.Equal(t, 0.5, snap.CacheHitRatio)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.staleFallbacks))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "backend_request_duration_seconds")
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
	m.ObserveChatPoll("inbox", "ok")
	m.RecordCacheOperation(true, time.Millisecond)
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
