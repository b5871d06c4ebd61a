package flowrate

import (
	"math"
	"testing"
)

func TestFlowRate(t *testing.T) {
	// 0.5 m bore at 2 m/s: A = π * 0.25² ≈ 0.19635 m², Q = A * v.
	got := FlowRate(0.5, 2.0)
	want := math.Pi * 0.0625 * 2.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("FlowRate(0.5, 2.0) = %v, want %v", got, want)
	}
}

func TestAdjustedFlowRate(t *testing.T) {
	if got := AdjustedFlowRate(1.5, 1.0); got != 1.5 {
		t.Errorf("water should be unadjusted, got %v", got)
	}
	got := AdjustedFlowRate(1.0, 4.0)
	if math.Abs(got-0.5) > 1e-12 {
		t.Errorf("AdjustedFlowRate(1.0, 4.0) = %v, want 0.5", got)
	}
}

func TestTravelTime(t *testing.T) {
	got, ok := TravelTime(100, 2.0)
	if !ok || got != 50 {
		t.Errorf("TravelTime(100, 2) = (%v, %v), want (50, true)", got, ok)
	}
	if _, ok := TravelTime(100, 0); ok {
		t.Error("zero velocity should have no finite travel time")
	}
}
