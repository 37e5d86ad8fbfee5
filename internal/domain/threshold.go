package domain

import "fmt"

// Year selector bounds. The map view offers every fifth year from 2025
// through 2100.
const (
	MinYear     = 2025
	MaxYear     = 2100
	YearStep    = 5
	DefaultYear = 2050
)

// SeaLevelRise converts a selected year into the assumed sea-level rise in
// meters: 0.0 at 2025, rising linearly to 1.5 at 2100. The value is used
// downstream as the elevation cutoff for the flood mask.
func SeaLevelRise(year int) float64 {
	return float64(year-MinYear) / float64(MaxYear-MinYear) * 1.5
}

// ValidateYear checks that a year is one the selector can produce: inside
// [MinYear, MaxYear] and on the five-year step.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year %d out of range [%d, %d]", year, MinYear, MaxYear)
	}
	if (year-MinYear)%YearStep != 0 {
		return fmt.Errorf("year %d is not selectable: years advance in steps of %d from %d", year, YearStep, MinYear)
	}
	return nil
}

// SelectableYears lists every valid selector value in ascending order.
func SelectableYears() []int {
	years := make([]int, 0, (MaxYear-MinYear)/YearStep+1)
	for y := MinYear; y <= MaxYear; y += YearStep {
		years = append(years, y)
	}
	return years
}
