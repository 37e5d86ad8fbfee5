package domain

import "context"

// Earth Engine assets backing the flood overlay.
const (
	ElevationAsset  = "NASA/NASADEM_HGT/001"
	ElevationBand   = "elevation"
	PopulationAsset = "WorldPop/GP/100m/pop"
	PopulationYear  = 2020
)

// VisParams describes how raster values map to display colors.
type VisParams struct {
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	Palette []string `json:"palette"`
}

// HeatmapVis is the fixed ramp for the affected-population heatmap: light
// yellow through orange and red to dark red, over 0–300 people per cell.
var HeatmapVis = VisParams{
	Min:     0,
	Max:     300,
	Palette: []string{"#ffeda0", "#feb24c", "#f03b20", "#bd0026"},
}

// TileLayer references a rendered overlay hosted by the map service. The
// composed raster stays remote; URLFormat is a {z}/{x}/{y} tile template.
type TileLayer struct {
	URLFormat   string `json:"url_format"`
	Name        string `json:"name"`
	Attribution string `json:"attribution"`
}

// FloodMapper produces a population-flood overlay for a sea-level threshold.
type FloodMapper interface {
	// FloodTileLayer masks the elevation raster at thresholdM meters,
	// restricts the population raster to the mask, and returns a renderable
	// tile layer for the result.
	FloodTileLayer(ctx context.Context, thresholdM float64) (TileLayer, error)
}
