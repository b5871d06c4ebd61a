package hydraulics

import (
	"errors"
	"math"
	"testing"
)

func TestRunTraversalSingleSegment(t *testing.T) {
	req := TraversalRequest{
		Material:              Steel,
		AgeYears:              10,
		InitialDiameterMeters: 0.5,
		Segments:              []SlopeSegment{{SlopeFraction: 0.01, LengthMeters: 1000}},
	}

	res, err := RunTraversal(req)
	if err != nil {
		t.Fatalf("RunTraversal: %v", err)
	}

	if math.Abs(res.EffectiveDiameterMeters-0.496) > 1e-9 {
		t.Errorf("effective diameter = %v, want 0.496", res.EffectiveDiameterMeters)
	}
	if res.TotalDistanceMeters != 1000 {
		t.Errorf("total distance = %v, want 1000", res.TotalDistanceMeters)
	}

	v := Velocity(res.EffectiveDiameterMeters, 0.01, 120)
	want := 1000 / v
	if math.Abs(res.TotalTravelTimeSeconds-want) > 1e-9 {
		t.Errorf("travel time = %v, want %v", res.TotalTravelTimeSeconds, want)
	}
}

func TestRunTraversalZeroSlopeIsInfinite(t *testing.T) {
	req := TraversalRequest{
		Material:              Copper,
		AgeYears:              5,
		InitialDiameterMeters: 0.3,
		Segments: []SlopeSegment{
			{SlopeFraction: 0.02, LengthMeters: 500},
			{SlopeFraction: 0, LengthMeters: 1000},
			{SlopeFraction: 0.01, LengthMeters: 200},
		},
	}

	res, err := RunTraversal(req)
	if err != nil {
		t.Fatalf("RunTraversal: %v", err)
	}
	if !math.IsInf(res.TotalTravelTimeSeconds, 1) {
		t.Errorf("travel time = %v, want +Inf for a zero-slope segment", res.TotalTravelTimeSeconds)
	}
	if res.TotalDistanceMeters != 1700 {
		t.Errorf("total distance = %v, want 1700", res.TotalDistanceMeters)
	}
}

func TestRunTraversalUnknownMaterialDefaults(t *testing.T) {
	req := TraversalRequest{
		Material:              "Mystery Alloy",
		AgeYears:              20,
		InitialDiameterMeters: 0.4,
		Segments:              []SlopeSegment{{SlopeFraction: 0.01, LengthMeters: 100}},
	}

	res, err := RunTraversal(req)
	if err != nil {
		t.Fatalf("unknown material must not be an error, got %v", err)
	}
	if res.Material != CastIron {
		t.Errorf("material = %q, want Cast Iron substitution", res.Material)
	}
	if !res.MaterialDefaulted {
		t.Error("MaterialDefaulted should be set when the material is substituted")
	}
	// Cast Iron corrodes at 0.1 mm/yr: 0.4 - 2*0.0001*20 = 0.396
	if math.Abs(res.EffectiveDiameterMeters-0.396) > 1e-9 {
		t.Errorf("effective diameter = %v, want 0.396 from Cast Iron constants", res.EffectiveDiameterMeters)
	}
}

func TestLiteralPumpPolicySubtraction(t *testing.T) {
	p := LiteralPumpPolicy{}
	got := p.AdjustTotal(120.0, []PumpEvent{{FlowRateBoostM3PerSec: 0.05, PositionMeters: 500}})
	if math.Abs(got-119.95) > 1e-9 {
		t.Errorf("adjusted total = %v, want 119.95", got)
	}
}

func TestRunTraversalLiteralPumpAdjustment(t *testing.T) {
	base := TraversalRequest{
		Material:              Steel,
		AgeYears:              10,
		InitialDiameterMeters: 0.5,
		Segments:              []SlopeSegment{{SlopeFraction: 0.01, LengthMeters: 1000}},
	}
	withPumps := base
	withPumps.Pumps = []PumpEvent{
		{FlowRateBoostM3PerSec: 0.05, PositionMeters: 200},
		{FlowRateBoostM3PerSec: 0.02, PositionMeters: 800},
	}

	plain, err := RunTraversal(base)
	if err != nil {
		t.Fatalf("RunTraversal: %v", err)
	}
	pumped, err := RunTraversal(withPumps)
	if err != nil {
		t.Fatalf("RunTraversal: %v", err)
	}

	want := plain.TotalTravelTimeSeconds - 0.05 - 0.02
	if math.Abs(pumped.TotalTravelTimeSeconds-want) > 1e-9 {
		t.Errorf("pumped travel time = %v, want %v", pumped.TotalTravelTimeSeconds, want)
	}
	if pumped.PumpPolicy != "literal" {
		t.Errorf("pump policy = %q, want literal default", pumped.PumpPolicy)
	}
}

func TestRunTraversalVelocityBoostPolicy(t *testing.T) {
	req := TraversalRequest{
		Material:              Steel,
		AgeYears:              0,
		InitialDiameterMeters: 0.5,
		Segments: []SlopeSegment{
			{SlopeFraction: 0.01, LengthMeters: 500},
			{SlopeFraction: 0.01, LengthMeters: 500},
		},
		Pumps:      []PumpEvent{{FlowRateBoostM3PerSec: 0.05, PositionMeters: 750}},
		PumpPolicy: VelocityBoostPumpPolicy{},
	}

	res, err := RunTraversal(req)
	if err != nil {
		t.Fatalf("RunTraversal: %v", err)
	}

	v := Velocity(0.5, 0.01, 120)
	boosted := v + 0.05/CrossSectionArea(0.5)
	want := 500/v + 500/boosted
	if math.Abs(res.TotalTravelTimeSeconds-want) > 1e-9 {
		t.Errorf("travel time = %v, want %v (boost confined to second segment)", res.TotalTravelTimeSeconds, want)
	}
	if res.PumpPolicy != "velocity-boost" {
		t.Errorf("pump policy = %q, want velocity-boost", res.PumpPolicy)
	}
}

func TestRunTraversalRejectsInvalidGeometry(t *testing.T) {
	tests := []struct {
		name string
		req  TraversalRequest
	}{
		{"zero diameter", TraversalRequest{Material: Steel, InitialDiameterMeters: 0, Segments: []SlopeSegment{{0.01, 100}}}},
		{"negative diameter", TraversalRequest{Material: Steel, InitialDiameterMeters: -1, Segments: []SlopeSegment{{0.01, 100}}}},
		{"no segments", TraversalRequest{Material: Steel, InitialDiameterMeters: 0.5}},
		{"zero-length segment", TraversalRequest{Material: Steel, InitialDiameterMeters: 0.5, Segments: []SlopeSegment{{0.01, 0}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RunTraversal(tc.req); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("error = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}

func TestRunTraversalDeterministic(t *testing.T) {
	req := TraversalRequest{
		Material:              DuctileIron,
		AgeYears:              30,
		InitialDiameterMeters: 0.6,
		Segments: []SlopeSegment{
			{SlopeFraction: 0.005, LengthMeters: 1200},
			{SlopeFraction: 0.02, LengthMeters: 300},
		},
		Pumps: []PumpEvent{{FlowRateBoostM3PerSec: 0.01, PositionMeters: 600}},
	}

	a, err := RunTraversal(req)
	if err != nil {
		t.Fatalf("RunTraversal: %v", err)
	}
	b, err := RunTraversal(req)
	if err != nil {
		t.Fatalf("RunTraversal: %v", err)
	}

	// RunID and Timestamp differ per run; everything derived from inputs must not.
	if a.EffectiveDiameterMeters != b.EffectiveDiameterMeters ||
		a.TotalDistanceMeters != b.TotalDistanceMeters ||
		a.TotalTravelTimeSeconds != b.TotalTravelTimeSeconds ||
		a.Material != b.Material {
		t.Errorf("identical requests produced different results:\n%+v\n%+v", a, b)
	}
}
