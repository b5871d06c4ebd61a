// Package tank sizes the volumetric capacity of water storage tanks.
package tank

import "math"

// SphericalVolume returns the capacity (m³) of a spherical tank of the given
// diameter (m).
func SphericalVolume(diameterMeters float64) float64 {
	r := diameterMeters / 2
	return (4.0 / 3.0) * math.Pi * r * r * r
}

// CylindricalVolume returns the capacity (m³) of a vertical cylindrical tank
// of the given diameter and height (m).
func CylindricalVolume(diameterMeters, heightMeters float64) float64 {
	r := diameterMeters / 2
	return math.Pi * r * r * heightMeters
}
