package earthengine

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/couchcryptid/sea-level-dashboard/internal/observability"
)

const testProject = "test-project"

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		projectID:  testProject,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestFloodTileLayer_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/projects/test-project/maps", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		payload := string(body)
		assert.Contains(t, payload, "NASA/NASADEM_HGT/001")
		assert.Contains(t, payload, "WorldPop/GP/100m/pop")
		assert.Contains(t, payload, "Image.lte")
		assert.Contains(t, payload, "Image.selfMask")
		assert.Contains(t, payload, "Image.updateMask")
		assert.Contains(t, payload, "#bd0026")
		assert.Contains(t, payload, "0.5")

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{
			"name": "projects/test-project/maps/abc123",
		}))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	layer, err := c.FloodTileLayer(context.Background(), 0.5)
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/v1/projects/test-project/maps/abc123/tiles/{z}/{x}/{y}", layer.URLFormat)
	assert.Equal(t, "Google Earth Engine", layer.Attribution)
}

func TestFloodTileLayer_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Request had invalid authentication credentials."}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FloodTileLayer(context.Background(), 1.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid authentication")
}

func TestFloodTileLayer_MissingMapName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FloodTileLayer(context.Background(), 0.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no map name")
}

func TestFloodTileLayer_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.FloodTileLayer(context.Background(), 0.5)
	require.Error(t, err)
}

func TestFloodExpression_ZeroThreshold(t *testing.T) {
	expr := floodExpression(0)

	data, err := json.Marshal(expr)
	require.NoError(t, err)

	payload := string(data)
	assert.Contains(t, payload, `"result":"visualized"`)
	assert.Contains(t, payload, `"constantValue":0`)
	assert.Contains(t, payload, "2020-01-01")
	assert.Contains(t, payload, "2021-01-01")
}
