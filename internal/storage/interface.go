// Package storage defines the interface and shared record shape for traversal
// result storage backends.
package storage

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

// StorageEngineInterface is an interface that provides a few standardized
// methods for various storage backends
type StorageEngineInterface interface {
	StartStorageEngine(context.Context, *sync.WaitGroup) chan<- hydraulics.TraversalResult
}

// ResultReader is implemented by storage backends that can read stored
// results back out, newest first.
type ResultReader interface {
	RecentResults(ctx context.Context, limit int) ([]Record, error)
}

// TravelSeconds wraps a travel time so that the +Inf sentinel (untraversable
// route) survives JSON encoding, which rejects bare infinities.
type TravelSeconds float64

// MarshalJSON encodes finite values as numbers and infinities as the string
// "Infinity".
func (t TravelSeconds) MarshalJSON() ([]byte, error) {
	f := float64(t)
	if math.IsInf(f, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(f, -1) {
		return []byte(`"-Infinity"`), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// UnmarshalJSON accepts both encodings produced by MarshalJSON.
func (t *TravelSeconds) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "Infinity":
			*t = TravelSeconds(math.Inf(1))
		case "-Infinity":
			*t = TravelSeconds(math.Inf(-1))
		default:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			*t = TravelSeconds(f)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*t = TravelSeconds(f)
	return nil
}

// Record is the persisted form of a traversal result, shared by the file and
// SQL backends.
type Record struct {
	Timestamp             time.Time     `json:"timestamp"`
	RunID                 string        `json:"run_id,omitempty"`
	PipeMaterial          string        `json:"pipe_material"`
	PipeAge               float64       `json:"pipe_age"`
	InitialDiameterMeters float64       `json:"initial_diameter_meters"`
	ReducedDiameterMeters float64       `json:"reduced_diameter_meters"`
	TotalDistanceMeters   float64       `json:"total_distance_meters"`
	TravelTimeSeconds     TravelSeconds `json:"travel_time_seconds"`
}

// NewRecord converts a traversal result into its persisted form.
func NewRecord(r hydraulics.TraversalResult) Record {
	return Record{
		Timestamp:             r.Timestamp,
		RunID:                 r.RunID,
		PipeMaterial:          string(r.Material),
		PipeAge:               r.AgeYears,
		InitialDiameterMeters: r.InitialDiameterMeters,
		ReducedDiameterMeters: r.EffectiveDiameterMeters,
		TotalDistanceMeters:   r.TotalDistanceMeters,
		TravelTimeSeconds:     TravelSeconds(r.TotalTravelTimeSeconds),
	}
}
