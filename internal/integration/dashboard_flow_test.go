// Package integration exercises the full request path — HTTP adapter,
// dashboard service, Earth Engine client — against a fake maps API.
package integration

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sea-level-dashboard/internal/adapter/earthengine"
	"github.com/couchcryptid/sea-level-dashboard/internal/adapter/httpadapter"
	"github.com/couchcryptid/sea-level-dashboard/internal/auth"
	"github.com/couchcryptid/sea-level-dashboard/internal/config"
	"github.com/couchcryptid/sea-level-dashboard/internal/dashboard"
	"github.com/couchcryptid/sea-level-dashboard/internal/observability"
)

// fakeEarthEngine records map-creation requests and serves canned names.
type fakeEarthEngine struct {
	mu       sync.Mutex
	requests []string
	fail     bool
}

func newFakeEarthEngine() *fakeEarthEngine {
	return &fakeEarthEngine{}
}

func (f *fakeEarthEngine) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, string(body))
		fail := f.fail
		f.mu.Unlock()
		if fail {
			http.Error(w, `{"error":{"message":"backend unavailable"}}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"name": "projects/integration-test/maps/generated",
		})
	})
}

func newStack(t *testing.T, eeURL string) *httpadapter.Server {
	t.Helper()

	cfg := &config.Config{
		EEBaseURL:   eeURL,
		EETimeout:   5 * time.Second,
		EERateLimit: 100,
	}
	session := &auth.Session{
		ProjectID:  "integration-test",
		HTTPClient: &http.Client{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	mapper := earthengine.NewClient(session, cfg, metrics, logger)
	dash := dashboard.New(mapper, logger, metrics)
	return httpadapter.NewServer(":0", dash, metrics, logger)
}

func TestDashboardFlow(t *testing.T) {
	fake := newFakeEarthEngine()
	eeSrv := httptest.NewServer(fake.handler())
	defer eeSrv.Close()

	srv := newStack(t, eeSrv.URL)

	// Not ready before the first successful overlay.
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Full page render for 2100 goes through the fake maps API.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?year=2100&tuvalu=on", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, "2100년 예상 해수면 상승 위험 지도")
	assert.Contains(t, html, "projects/integration-test/maps/generated/tiles")

	// The expression sent upstream carries the 1.5m cutoff and both assets.
	require.Len(t, fake.requests, 1)
	assert.Contains(t, fake.requests[0], "NASA/NASADEM_HGT/001")
	assert.Contains(t, fake.requests[0], "WorldPop/GP/100m/pop")
	assert.Contains(t, fake.requests[0], "1.5")

	// Ready now.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Checklist export round-trips without touching Earth Engine.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export?item=0&item=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "실천 항목", lines[0])
	require.Len(t, fake.requests, 1)
}

func TestDashboardFlow_RemoteFailureIsVisible(t *testing.T) {
	fake := newFakeEarthEngine()
	fake.fail = true
	eeSrv := httptest.NewServer(fake.handler())
	defer eeSrv.Close()

	srv := newStack(t, eeSrv.URL)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?year=2050&tuvalu=on", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, "지도 데이터를 불러오지 못했습니다")
	assert.Contains(t, html, "503")
	// Chart and checklist still render.
	assert.Contains(t, html, "투발루 해수면 상승 추이")
	assert.Contains(t, html, "청소년 친환경 실천 체크리스트")
}
