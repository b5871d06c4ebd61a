package hydraulics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidGeometry signals that a traversal request carried a non-positive
// diameter, an empty segment list, or a non-positive segment length. These are
// caller contract violations and are rejected before any aggregation starts.
var ErrInvalidGeometry = errors.New("invalid pipeline geometry")

// SlopeSegment is one run of pipeline with a constant grade. Segments are
// traversed in slice order.
type SlopeSegment struct {
	SlopeFraction float64 `json:"slope" yaml:"slope"`
	LengthMeters  float64 `json:"length_meters" yaml:"length_meters"`
}

// PumpEvent is a point effect along the route: an in-line pump at
// PositionMeters from the start contributing FlowRateBoostM3PerSec of
// additional flow. Input order is preserved during accumulation.
type PumpEvent struct {
	FlowRateBoostM3PerSec float64 `json:"flow_rate_boost_m3_per_sec" yaml:"flow_rate_boost_m3_per_sec"`
	PositionMeters        float64 `json:"position_meters" yaml:"position_meters"`
}

// TraversalRequest describes one full pipeline route to estimate.
type TraversalRequest struct {
	Material              Material
	AgeYears              float64
	InitialDiameterMeters float64
	Segments              []SlopeSegment
	Pumps                 []PumpEvent
	PumpPolicy            PumpPolicy // nil selects LiteralPumpPolicy
}

// TraversalResult is the immutable snapshot produced by one traversal run. It
// is created once and handed off to storage and reporting unchanged.
// TotalTravelTimeSeconds is +Inf when any segment has no driving gradient.
type TraversalResult struct {
	RunID                   string    `json:"run_id"`
	Timestamp               time.Time `json:"timestamp"`
	Material                Material  `json:"pipe_material"`
	MaterialDefaulted       bool      `json:"material_defaulted,omitempty"`
	AgeYears                float64   `json:"pipe_age"`
	InitialDiameterMeters   float64   `json:"initial_diameter_meters"`
	EffectiveDiameterMeters float64   `json:"reduced_diameter_meters"`
	TotalDistanceMeters     float64   `json:"total_distance_meters"`
	TotalTravelTimeSeconds  float64   `json:"travel_time_seconds"`
	PumpPolicy              string    `json:"pump_policy,omitempty"`
}

// RunTraversal produces a travel-time estimate for one route.
//
// The effective diameter is computed once from the route's material and age
// and shared by every segment. Each segment contributes length/velocity
// seconds; a zero-velocity segment contributes +Inf, which propagates through
// the sum rather than being skipped. Pump adjustments are applied by the
// request's PumpPolicy after segment accumulation.
//
// The traversal is a single deterministic pass: identical requests produce
// identical results, and the only failure mode is ErrInvalidGeometry.
func RunTraversal(req TraversalRequest) (TraversalResult, error) {
	if req.InitialDiameterMeters <= 0 {
		return TraversalResult{}, fmt.Errorf("%w: initial diameter %v must be positive", ErrInvalidGeometry, req.InitialDiameterMeters)
	}
	if len(req.Segments) == 0 {
		return TraversalResult{}, fmt.Errorf("%w: at least one slope segment is required", ErrInvalidGeometry)
	}
	for i, seg := range req.Segments {
		if seg.LengthMeters <= 0 {
			return TraversalResult{}, fmt.Errorf("%w: segment %d length %v must be positive", ErrInvalidGeometry, i, seg.LengthMeters)
		}
	}

	policy := req.PumpPolicy
	if policy == nil {
		policy = LiteralPumpPolicy{}
	}

	material, defaulted := ResolveMaterial(string(req.Material))
	props := Lookup(material)
	diameter := EffectiveDiameter(material, req.AgeYears, req.InitialDiameterMeters)

	var totalTime, totalDistance, position float64
	for _, seg := range req.Segments {
		v := Velocity(diameter, seg.SlopeFraction, props.RoughnessCoefficient)
		v = policy.SegmentVelocity(v, seg, position, req.Pumps, diameter)
		if v > 0 {
			totalTime += seg.LengthMeters / v
		} else {
			totalTime += math.Inf(1)
		}
		totalDistance += seg.LengthMeters
		position += seg.LengthMeters
	}

	totalTime = policy.AdjustTotal(totalTime, req.Pumps)

	return TraversalResult{
		RunID:                   uuid.New().String(),
		Timestamp:               time.Now(),
		Material:                material,
		MaterialDefaulted:       defaulted,
		AgeYears:                req.AgeYears,
		InitialDiameterMeters:   req.InitialDiameterMeters,
		EffectiveDiameterMeters: diameter,
		TotalDistanceMeters:     totalDistance,
		TotalTravelTimeSeconds:  totalTime,
		PumpPolicy:              policy.Name(),
	}, nil
}
