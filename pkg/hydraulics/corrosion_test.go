package hydraulics

import (
	"math"
	"testing"
)

func TestEffectiveDiameter(t *testing.T) {
	tests := []struct {
		name     string
		material Material
		age      float64
		initial  float64
		want     float64
	}{
		// Steel at 0.2 mm/yr loses 2*0.0002*10 = 0.004 m over ten years.
		{"steel ten years", Steel, 10, 0.5, 0.496},
		{"new pipe unchanged", CastIron, 0, 0.3, 0.3},
		{"plastic never corrodes", PlasticPVC, 100, 0.2, 0.2},
		{"ancient pipe clamps to floor", Steel, 10000, 0.5, MinEffectiveDiameter},
		{"copper barely corrodes", Copper, 50, 0.1, 0.099},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectiveDiameter(tc.material, tc.age, tc.initial)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("EffectiveDiameter(%s, %v, %v) = %v, want %v", tc.material, tc.age, tc.initial, got, tc.want)
			}
		})
	}
}

func TestEffectiveDiameterBounds(t *testing.T) {
	for _, m := range Materials() {
		for _, age := range []float64{0, 1, 10, 50, 200, 5000} {
			got := EffectiveDiameter(m, age, 0.5)
			if got > 0.5 {
				t.Errorf("%s age %v: diameter %v exceeds initial", m, age, got)
			}
			if got < MinEffectiveDiameter {
				t.Errorf("%s age %v: diameter %v below floor", m, age, got)
			}
		}
	}
}

func TestEffectiveDiameterMonotonicInAge(t *testing.T) {
	for _, m := range Materials() {
		prev := math.Inf(1)
		for age := 0.0; age <= 300; age += 5 {
			got := EffectiveDiameter(m, age, 0.4)
			if got > prev {
				t.Fatalf("%s: diameter increased from %v to %v at age %v", m, prev, got, age)
			}
			prev = got
		}
	}
}
