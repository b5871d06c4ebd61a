// Package flowrate converts pipe geometry and velocity into volumetric flow
// rates, with an adjustment for fluids denser or lighter than water.
package flowrate

import "math"

// FlowRate returns the volumetric flow rate (m³/s) through a circular pipe of
// the given internal diameter (m) carrying fluid at the given velocity (m/s).
func FlowRate(diameterMeters, velocityMetersPerSec float64) float64 {
	r := diameterMeters / 2
	return math.Pi * r * r * velocityMetersPerSec
}

// AdjustedFlowRate scales a water-equivalent flow rate for a fluid with the
// given specific gravity (1.0 for water). Denser fluids flow slower under the
// same driving head, scaling with the inverse square root of specific gravity.
func AdjustedFlowRate(flowRateM3PerSec, specificGravity float64) float64 {
	return flowRateM3PerSec / math.Sqrt(specificGravity)
}

// TravelTime returns the seconds needed to traverse lengthMeters at the given
// velocity. The second return is false when velocity is zero or negative and
// no finite travel time exists.
func TravelTime(lengthMeters, velocityMetersPerSec float64) (float64, bool) {
	if velocityMetersPerSec <= 0 {
		return 0, false
	}
	return lengthMeters / velocityMetersPerSec, true
}
