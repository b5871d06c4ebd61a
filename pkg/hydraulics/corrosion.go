package hydraulics

import "math"

// MinEffectiveDiameter is the floor applied to corrosion-reduced diameters, in
// meters. The pipe is never modeled as fully closed; without this floor a
// sufficiently old pipe would produce a zero or negative diameter and poison
// the velocity calculation downstream.
const MinEffectiveDiameter = 0.01

// EffectiveDiameter returns the corrosion-reduced internal diameter of a pipe
// after ageYears of service. Wall loss accrues on both sides of the bore, so
// the diameter shrinks at twice the per-wall corrosion rate. The result is
// clamped to MinEffectiveDiameter.
//
// This model treats the corrosion rate as a constant material property and
// compounds loss linearly with age. The remaining-life estimator in
// pkg/corrosionlife uses a different, age-accelerated rate; the two are not
// interchangeable.
func EffectiveDiameter(m Material, ageYears float64, initialDiameterMeters float64) float64 {
	rateMetersPerYear := Lookup(m).CorrosionRateMmPerYear / 1000
	diameterLoss := 2 * rateMetersPerYear * ageYears
	return math.Max(initialDiameterMeters-diameterLoss, MinEffectiveDiameter)
}
