package domain

import (
	"math"
	"math/rand"
	"sync"
)

// Simulation constants for the Tuvalu trend series. Illustrative values,
// kept verbatim for reproducibility.
const (
	SeriesStartYear = 1990
	SeriesEndYear   = 2050

	seriesSeed       = 42
	seriesBase       = 0.03  // meters
	seriesTrend      = 0.004 // meters per year
	seriesNoiseScale = 0.002 // meters, stddev of the normal noise term
)

// SeaLevelPoint is one year of the simulated Tuvalu sea-level series.
type SeaLevelPoint struct {
	Year    int     `json:"year"`
	LevelMM float64 `json:"sea_level_mm"`
}

// tuvaluSeries memoizes the generated series for the process lifetime so
// every render reuses the exact same points.
var tuvaluSeries = sync.OnceValue(generateTuvaluSeries)

// TuvaluSeries returns the simulated 1990–2050 Tuvalu sea-level series.
// The series comes from a fixed seed and is generated at most once per
// process; repeated calls return identical data.
func TuvaluSeries() []SeaLevelPoint {
	return tuvaluSeries()
}

func generateTuvaluSeries() []SeaLevelPoint {
	rng := rand.New(rand.NewSource(seriesSeed))
	points := make([]SeaLevelPoint, 0, SeriesEndYear-SeriesStartYear+1)
	for year := SeriesStartYear; year <= SeriesEndYear; year++ {
		level := seriesBase + seriesTrend*float64(year-SeriesStartYear) + rng.NormFloat64()*seriesNoiseScale
		// Round to whole millimeters before clamping; early years can dip
		// below zero once the noise term outweighs the base.
		mm := math.Round(level * 1000)
		points = append(points, SeaLevelPoint{Year: year, LevelMM: math.Max(0, mm)})
	}
	return points
}
