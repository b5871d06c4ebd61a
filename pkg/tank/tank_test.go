package tank

import (
	"math"
	"testing"
)

func TestSphericalVolume(t *testing.T) {
	// 2 m diameter sphere: (4/3)π r³ with r = 1.
	got := SphericalVolume(2)
	want := (4.0 / 3.0) * math.Pi
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("SphericalVolume(2) = %v, want %v", got, want)
	}
}

func TestCylindricalVolume(t *testing.T) {
	// 2 m diameter, 3 m tall: π r² h with r = 1.
	got := CylindricalVolume(2, 3)
	want := 3 * math.Pi
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("CylindricalVolume(2, 3) = %v, want %v", got, want)
	}
}
