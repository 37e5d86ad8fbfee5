// Package httpadapter serves the dashboard page, its JSON endpoints, and
// the health/readiness/metrics routes.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/sea-level-dashboard/internal/dashboard"
	"github.com/couchcryptid/sea-level-dashboard/internal/domain"
	"github.com/couchcryptid/sea-level-dashboard/internal/observability"
)

// Server exposes the dashboard over HTTP.
type Server struct {
	httpServer *http.Server
	dash       *dashboard.Dashboard
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates the dashboard HTTP server.
func NewServer(addr string, dash *dashboard.Dashboard, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:        addr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
			// Page renders block on the Earth Engine maps call, so the
			// write timeout has to outlast the remote request timeout.
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dash:    dash,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /api/map-layer", s.handleMapLayer)
	mux.HandleFunc("GET /api/sea-level-series", s.handleSeries)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	req, err := parseViewRequest(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vm := s.dash.Render(r.Context(), req)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.dash.RenderPage(w, vm); err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	indices, err := parseIndices(r.URL.Query()["item"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	labels, err := dashboard.ResolveChecked(indices)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := domain.ExportChecklistCSV(labels)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrNoActionsChecked) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	s.metrics.ChecklistExports.Inc()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", domain.ChecklistExportFilename))
	_, _ = w.Write(data)
}

func (s *Server) handleMapLayer(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	layer, err := s.dash.MapLayer(r.Context(), year)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, layer)
}

func (s *Server) handleSeries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.TuvaluSeries())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.dash.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// parseViewRequest maps query parameters to a view request. A bare page
// load (no year parameter) gets the defaults: 2050 with the Tuvalu chart
// shown. Once the form is submitted the year is always present and the
// tuvalu checkbox only appears when checked.
func parseViewRequest(q url.Values) (dashboard.ViewRequest, error) {
	req := dashboard.ViewRequest{Year: domain.DefaultYear, ShowTuvalu: true}

	if q.Has("year") {
		year, err := parseYear(q)
		if err != nil {
			return dashboard.ViewRequest{}, err
		}
		req.Year = year
		req.ShowTuvalu = q.Get("tuvalu") == "on"
	}

	indices, err := parseIndices(q["act"])
	if err != nil {
		return dashboard.ViewRequest{}, err
	}
	for _, i := range indices {
		if _, err := domain.ActionByIndex(i); err != nil {
			return dashboard.ViewRequest{}, err
		}
	}
	req.Checked = indices

	return req, nil
}

func parseYear(q url.Values) (int, error) {
	raw := q.Get("year")
	if raw == "" {
		return domain.DefaultYear, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	if err := domain.ValidateYear(year); err != nil {
		return 0, err
	}
	return year, nil
}

func parseIndices(values []string) ([]int, error) {
	if len(values) == 0 {
		return nil, nil
	}
	indices := make([]int, 0, len(values))
	for _, v := range values {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid checklist item %q", v)
		}
		indices = append(indices, i)
	}
	return indices, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
