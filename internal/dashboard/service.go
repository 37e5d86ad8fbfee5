// Package dashboard composes the page view from the flood map, the Tuvalu
// series, and the checklist state. All state a render depends on arrives in
// the request; the only process-wide state (credentials, generated series)
// is write-once and shared read-only.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/sea-level-dashboard/internal/domain"
	"github.com/couchcryptid/sea-level-dashboard/internal/observability"
)

// Dashboard renders view models for the single-page dashboard.
type Dashboard struct {
	mapper  domain.FloodMapper
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Dashboard backed by the given flood mapper.
func New(mapper domain.FloodMapper, logger *slog.Logger, metrics *observability.Metrics) *Dashboard {
	return &Dashboard{
		mapper:  mapper,
		logger:  logger,
		metrics: metrics,
	}
}

// ViewRequest carries the transient UI state for one render: the selected
// year, the Tuvalu chart toggle, and the checked action indices in
// selection order.
type ViewRequest struct {
	Year       int
	ShowTuvalu bool
	Checked    []int
}

// ChecklistItem is one checkbox in the rendered checklist.
type ChecklistItem struct {
	Index   int
	Label   string
	Checked bool
}

// ViewModel is everything the page template needs for one render.
type ViewModel struct {
	Year       int
	Years      []int
	ThresholdM float64

	MapLayer *domain.TileLayer
	MapError string

	ShowTuvalu bool
	Series     []domain.SeaLevelPoint

	Actions      []ChecklistItem
	CheckedCount int
	ExportURL    string

	GeneratedAt time.Time
}

// Render builds the complete view for one interaction. A map-service
// failure does not fail the render; it surfaces in MapError so the page
// shows the cause where the map would be.
func (d *Dashboard) Render(ctx context.Context, req ViewRequest) ViewModel {
	d.metrics.PageRenders.Inc()

	vm := ViewModel{
		Year:        req.Year,
		Years:       domain.SelectableYears(),
		ThresholdM:  domain.SeaLevelRise(req.Year),
		ShowTuvalu:  req.ShowTuvalu,
		GeneratedAt: clock.Now(),
	}

	layer, err := d.MapLayer(ctx, req.Year)
	if err != nil {
		d.logger.Error("flood map render failed", "year", req.Year, "error", err)
		vm.MapError = err.Error()
	} else {
		vm.MapLayer = &layer
	}

	if req.ShowTuvalu {
		vm.Series = domain.TuvaluSeries()
	}

	checked := make(map[int]bool, len(req.Checked))
	for _, i := range req.Checked {
		checked[i] = true
	}
	vm.Actions = make([]ChecklistItem, len(domain.ClimateActions))
	for i, label := range domain.ClimateActions {
		vm.Actions[i] = ChecklistItem{Index: i, Label: label, Checked: checked[i]}
	}
	vm.CheckedCount = len(req.Checked)
	vm.ExportURL = exportURL(req.Checked)

	return vm
}

// MapLayer fetches the flood overlay for a year. Shared by the page render
// and the JSON map-layer endpoint; each call issues a fresh remote query.
func (d *Dashboard) MapLayer(ctx context.Context, year int) (domain.TileLayer, error) {
	layer, err := d.mapper.FloodTileLayer(ctx, domain.SeaLevelRise(year))
	if err != nil {
		return domain.TileLayer{}, fmt.Errorf("flood overlay for %d: %w", year, err)
	}
	layer.Name = fmt.Sprintf("%d년 인구 피해 히트맵", year)
	d.ready.Store(true)
	return layer, nil
}

// ResolveChecked maps checked indices to their labels in selection order.
func ResolveChecked(indices []int) ([]string, error) {
	labels := make([]string, 0, len(indices))
	for _, i := range indices {
		label, err := domain.ActionByIndex(i)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// CheckReadiness returns nil once at least one flood overlay has been
// fetched successfully, proving credentials and the map service work
// end to end.
func (d *Dashboard) CheckReadiness(_ context.Context) error {
	if !d.ready.Load() {
		return errors.New("no flood overlay rendered yet")
	}
	return nil
}

func exportURL(checked []int) string {
	if len(checked) == 0 {
		return ""
	}
	values := url.Values{}
	for _, i := range checked {
		values.Add("item", strconv.Itoa(i))
	}
	return "/export?" + values.Encode()
}
