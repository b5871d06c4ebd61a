package hydraulics

import (
	"fmt"
	"math"
)

// hazenWilliamsDivisor is the metric-unit constant in the empirical
// Hazen-Williams flow formula Q = (C * D^2.63 * S^0.54) / 278.5.
const hazenWilliamsDivisor = 278.5

// Velocity estimates the flow velocity (m/s) in a pipe of the given internal
// diameter (m) and hydraulic slope (decimal grade, e.g. 0.01 for 1%), using
// the Hazen-Williams relation with roughness coefficient c.
//
// A slope of zero or less means no driving gradient: velocity is defined as 0,
// not an error. A non-positive diameter panics: corrosion clamping upstream
// guarantees a positive diameter, so hitting this is a programming error.
func Velocity(diameterMeters, slopeFraction, c float64) float64 {
	if diameterMeters <= 0 {
		panic(fmt.Sprintf("hydraulics: non-positive diameter %v passed to Velocity", diameterMeters))
	}
	if slopeFraction <= 0 {
		return 0
	}

	flowRate := (c * math.Pow(diameterMeters, 2.63) * math.Pow(slopeFraction, 0.54)) / hazenWilliamsDivisor
	area := CrossSectionArea(diameterMeters)
	return flowRate / area
}

// CrossSectionArea returns the flow area (m²) of a circular pipe bore.
func CrossSectionArea(diameterMeters float64) float64 {
	r := diameterMeters / 2
	return math.Pi * r * r
}

// FrictionLoss estimates head loss (m) over a pipe run using the
// Darcy-Weisbach equation with an approximate friction factor of 0.02.
func FrictionLoss(diameterMeters, lengthMeters, velocityMetersPerSec float64) float64 {
	const f = 0.02
	const g = 9.81
	return (f * lengthMeters / diameterMeters) * (velocityMetersPerSec * velocityMetersPerSec / (2 * g))
}
