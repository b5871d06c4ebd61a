// Package corrosionlife estimates the remaining service life of a pipe wall
// under age-accelerated corrosion, and projects wall thickness over a fixed
// horizon for reporting.
//
// Unlike the traversal model's diameter reduction, the rate here accelerates
// 2% per year of service age. The two policies coexist on purpose and serve
// different tools.
package corrosionlife

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

// ProjectionYears is the horizon for thickness projections.
const ProjectionYears = 50

// Rate returns the age-adjusted corrosion rate in mm/year for a material:
// the base material rate scaled by a 2%-per-year acceleration factor.
func Rate(m hydraulics.Material, ageYears float64) float64 {
	base := hydraulics.Lookup(m).CorrosionRateMmPerYear
	return base * (1 + 0.02*ageYears)
}

// RemainingLife estimates the years until the wall thins from
// initialThicknessMm to minThicknessMm at rateMmPerYear. The second return is
// false when the rate is zero or negative (non-corroding materials), in which
// case life is unlimited and the years value is meaningless. Negative
// estimates clamp to zero: a wall already below minimum has no life left.
func RemainingLife(initialThicknessMm, minThicknessMm, rateMmPerYear float64) (float64, bool) {
	if rateMmPerYear <= 0 {
		return 0, false
	}
	return math.Max((initialThicknessMm-minThicknessMm)/rateMmPerYear, 0), true
}

// ThicknessPoint is one year of a projected wall-thickness series.
type ThicknessPoint struct {
	Year        int     `json:"year"`
	ThicknessMm float64 `json:"thickness_mm"`
}

// ThicknessSeries projects wall thickness from initialThicknessMm at a
// constant rateMmPerYear for each year of the projection horizon, year 0
// included. Thickness may go negative in the projection; the series is for
// display, not for feeding back into the hydraulic model.
func ThicknessSeries(initialThicknessMm, rateMmPerYear float64) []ThicknessPoint {
	series := make([]ThicknessPoint, ProjectionYears+1)
	for y := 0; y <= ProjectionYears; y++ {
		series[y] = ThicknessPoint{
			Year:        y,
			ThicknessMm: initialThicknessMm - rateMmPerYear*float64(y),
		}
	}
	return series
}

// SeriesSummary condenses a thickness series for reporting.
type SeriesSummary struct {
	MeanThicknessMm   float64 `json:"mean_thickness_mm"`
	StdDevThicknessMm float64 `json:"stddev_thickness_mm"`
	FinalThicknessMm  float64 `json:"final_thickness_mm"`
	// YearBelowMin is the first projected year at or below the minimum safe
	// thickness, or -1 when the wall stays above it for the whole horizon.
	YearBelowMin int `json:"year_below_min"`
}

// Summarize computes summary statistics over a thickness series against a
// minimum safe thickness.
func Summarize(series []ThicknessPoint, minThicknessMm float64) SeriesSummary {
	values := make([]float64, len(series))
	yearBelow := -1
	for i, p := range series {
		values[i] = p.ThicknessMm
		if yearBelow == -1 && p.ThicknessMm <= minThicknessMm {
			yearBelow = p.Year
		}
	}

	return SeriesSummary{
		MeanThicknessMm:   stat.Mean(values, nil),
		StdDevThicknessMm: stat.StdDev(values, nil),
		FinalThicknessMm:  values[len(values)-1],
		YearBelowMin:      yearBelow,
	}
}
