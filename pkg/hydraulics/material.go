// Package hydraulics implements the pipeline traversal model: corrosion-driven
// diameter reduction, Hazen-Williams segment velocities, and travel time
// aggregation with in-line pump adjustments.
package hydraulics

// Material identifies a pipe material with known roughness and corrosion
// characteristics.
type Material string

const (
	CastIron        Material = "Cast Iron"
	DuctileIron     Material = "Ductile Iron"
	Steel           Material = "Steel"
	GalvanizedSteel Material = "Galvanized Steel"
	StainlessSteel  Material = "Stainless Steel"
	Copper          Material = "Copper"
	PlasticPVC      Material = "PVC/Plastic"
	Concrete        Material = "Concrete"
)

// MaterialProperties holds the two empirical constants associated with a pipe
// material: the Hazen-Williams roughness coefficient (dimensionless; higher
// means smoother pipe) and the base corrosion rate in mm of wall loss per year.
type MaterialProperties struct {
	RoughnessCoefficient   float64
	CorrosionRateMmPerYear float64
}

var materialProperties = map[Material]MaterialProperties{
	CastIron:        {RoughnessCoefficient: 100, CorrosionRateMmPerYear: 0.1},
	DuctileIron:     {RoughnessCoefficient: 110, CorrosionRateMmPerYear: 0.05},
	Steel:           {RoughnessCoefficient: 120, CorrosionRateMmPerYear: 0.2},
	GalvanizedSteel: {RoughnessCoefficient: 110, CorrosionRateMmPerYear: 0.15},
	StainlessSteel:  {RoughnessCoefficient: 140, CorrosionRateMmPerYear: 0.02},
	Copper:          {RoughnessCoefficient: 150, CorrosionRateMmPerYear: 0.01},
	PlasticPVC:      {RoughnessCoefficient: 155, CorrosionRateMmPerYear: 0.0},
	Concrete:        {RoughnessCoefficient: 120, CorrosionRateMmPerYear: 0.005},
}

// Materials returns all recognized materials in a stable order, suitable for
// prompts and API listings.
func Materials() []Material {
	return []Material{
		CastIron,
		DuctileIron,
		Steel,
		GalvanizedSteel,
		StainlessSteel,
		Copper,
		PlasticPVC,
		Concrete,
	}
}

// ResolveMaterial maps a material name to a recognized Material. Unrecognized
// names resolve to Cast Iron rather than failing; the second return value
// reports whether that default was substituted so callers can log it.
func ResolveMaterial(name string) (Material, bool) {
	m := Material(name)
	if _, ok := materialProperties[m]; ok {
		return m, false
	}
	return CastIron, true
}

// Lookup returns the properties for a material. Unrecognized materials get the
// Cast Iron entry; use ResolveMaterial first if the substitution needs to be
// observed.
func Lookup(m Material) MaterialProperties {
	if p, ok := materialProperties[m]; ok {
		return p
	}
	return materialProperties[CastIron]
}
