// Package earthengine composes the flood overlay against the Google Earth
// Engine REST API.
package earthengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/couchcryptid/sea-level-dashboard/internal/auth"
	"github.com/couchcryptid/sea-level-dashboard/internal/config"
	"github.com/couchcryptid/sea-level-dashboard/internal/domain"
	"github.com/couchcryptid/sea-level-dashboard/internal/observability"
)

// Client implements domain.FloodMapper using the Earth Engine v1 maps API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	projectID  string
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Earth Engine client on top of an authenticated
// session. Requests are throttled to the configured rate; Earth Engine
// enforces per-project QPS quotas.
func NewClient(session *auth.Session, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	httpClient := session.HTTPClient
	httpClient.Timeout = cfg.EETimeout

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.EEBaseURL,
		projectID:  session.ProjectID,
		limiter:    rate.NewLimiter(rate.Limit(cfg.EERateLimit), 1),
		metrics:    metrics,
		logger:     logger,
	}
}

// FloodTileLayer asks Earth Engine for a rendered map of the population
// raster masked by the elevation threshold, and returns its tile template.
// Nothing is cached or retried here: every call issues a fresh request, and
// a failure aborts the render that triggered it.
func (c *Client) FloodTileLayer(ctx context.Context, thresholdM float64) (domain.TileLayer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.TileLayer{}, fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	mapName, err := c.createMap(ctx, floodExpression(thresholdM))
	c.metrics.MapRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.MapRequests.WithLabelValues("error").Inc()
		return domain.TileLayer{}, err
	}
	c.metrics.MapRequests.WithLabelValues("success").Inc()

	c.logger.Debug("flood overlay created",
		"threshold_m", thresholdM,
		"map", mapName,
		"duration", time.Since(start),
	)

	return domain.TileLayer{
		URLFormat:   fmt.Sprintf("%s/v1/%s/tiles/{z}/{x}/{y}", c.baseURL, mapName),
		Attribution: "Google Earth Engine",
	}, nil
}

// createMap posts a serialized expression to the maps endpoint and returns
// the server-assigned map name.
func (c *Client) createMap(ctx context.Context, expression map[string]any) (string, error) {
	body, err := json.Marshal(map[string]any{"expression": expression})
	if err != nil {
		return "", fmt.Errorf("serialize expression: %w", err)
	}

	u := fmt.Sprintf("%s/v1/projects/%s/maps", c.baseURL, c.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create map request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("earth engine API error: status %d: %s", resp.StatusCode, b)
	}

	var created struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if created.Name == "" {
		return "", fmt.Errorf("earth engine API returned no map name")
	}
	return created.Name, nil
}
