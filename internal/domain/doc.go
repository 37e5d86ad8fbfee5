// Package domain models the sea-level dashboard's data: the year-to-threshold
// mapping behind the flood map, the simulated Tuvalu trend series, the fixed
// climate-action checklist, and the tile-layer description for the rendered
// overlay.
//
// # Data Sources
//
// Elevation comes from the NASADEM digital elevation model, published on
// Earth Engine as NASA/NASADEM_HGT/001 (band "elevation", meters above sea
// level). Population density comes from the WorldPop 100m grids, published
// as the WorldPop/GP/100m/pop collection; the dashboard uses the 2020 mean.
// Both rasters stay remote — the only local representation of the composed
// overlay is a {z}/{x}/{y} tile URL template returned by the map service.
//
// # Scenario Mapping
//
// The selected year maps linearly onto an assumed sea-level rise:
//
//	0.0 m at 2025  →  1.5 m at 2100
//
// The resulting value is used as an elevation cutoff: cells at or below the
// cutoff count as flooded, and the population raster is masked to those
// cells. This is a deliberately simple classroom scenario, not a projection
// from any IPCC pathway.
//
// # Tuvalu Series
//
// The 1990–2050 Tuvalu series is a simulation: a fixed-seed random walk with
// base 0.03 m, trend 0.004 m/year, and normal noise (scale 0.002 m), rounded
// to whole millimeters and clamped at zero. The constants are illustrative
// and are kept verbatim so the series stays reproducible; they carry no
// real-world calibration.
package domain
