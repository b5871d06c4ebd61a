// Package timescaledb implements a TimescaleDB storage backend for traversal
// results.
package timescaledb

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/MikeConroy67/hydrology-tools/internal/database"
	"github.com/MikeConroy67/hydrology-tools/internal/log"
	"github.com/MikeConroy67/hydrology-tools/pkg/config"
	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS traversal_results (
	time TIMESTAMPTZ NOT NULL,
	run_id TEXT,
	pipe_material TEXT NOT NULL,
	pipe_age DOUBLE PRECISION NOT NULL,
	initial_diameter_meters DOUBLE PRECISION NOT NULL,
	reduced_diameter_meters DOUBLE PRECISION NOT NULL,
	total_distance_meters DOUBLE PRECISION NOT NULL,
	travel_time_seconds DOUBLE PRECISION,
	pump_policy TEXT
);`

const createHypertableSQL = `SELECT create_hypertable('traversal_results', 'time', if_not_exists => true);`

// ResultRow is the GORM model for one stored traversal result. Postgres
// DOUBLE PRECISION accepts +Inf directly, so infinite travel times need no
// special casing here.
type ResultRow struct {
	Time                  time.Time `gorm:"column:time"`
	RunID                 string    `gorm:"column:run_id"`
	PipeMaterial          string    `gorm:"column:pipe_material"`
	PipeAge               float64   `gorm:"column:pipe_age"`
	InitialDiameterMeters float64   `gorm:"column:initial_diameter_meters"`
	ReducedDiameterMeters float64   `gorm:"column:reduced_diameter_meters"`
	TotalDistanceMeters   float64   `gorm:"column:total_distance_meters"`
	TravelTimeSeconds     float64   `gorm:"column:travel_time_seconds"`
	PumpPolicy            string    `gorm:"column:pump_policy"`
}

// TableName customizes the table name used by GORM
func (ResultRow) TableName() string {
	return "traversal_results"
}

// Storage holds the configuration for a TimescaleDB storage backend
type Storage struct {
	TimescaleDBConn *gorm.DB
}

// New sets up a new TimescaleDB storage backend
func New(ctx context.Context, tc *config.TimescaleDBData) (*Storage, error) {
	var err error
	t := Storage{}

	t.TimescaleDBConn, err = database.CreateConnection(tc.ConnectionString)
	if err != nil {
		return nil, err
	}

	log.Info("creating results table...")
	err = t.TimescaleDBConn.WithContext(ctx).Exec(createTableSQL).Error
	if err != nil {
		log.Warn("warning: could not create table in database")
		return nil, err
	}

	err = t.TimescaleDBConn.WithContext(ctx).Exec(createHypertableSQL).Error
	if err != nil {
		log.Warn("warning: could not create hypertable; is the timescaledb extension installed?")
		return nil, err
	}

	return &t, nil
}

// StartStorageEngine creates a goroutine loop to receive traversal results and
// send them off to TimescaleDB
func (t *Storage) StartStorageEngine(ctx context.Context, wg *sync.WaitGroup) chan<- hydraulics.TraversalResult {
	log.Info("starting TimescaleDB storage engine...")
	resultChan := make(chan hydraulics.TraversalResult, 10)
	go t.processResults(ctx, wg, resultChan)
	return resultChan
}

func (t *Storage) processResults(ctx context.Context, wg *sync.WaitGroup, rchan <-chan hydraulics.TraversalResult) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-rchan:
			if err := t.StoreResult(r); err != nil {
				log.Error("could not store traversal result:", err)
			}
		case <-ctx.Done():
			log.Info("cancellation request received. Cancelling results processor.")
			t.drain(rchan)
			return
		}
	}
}

// drain stores any results still queued at shutdown
func (t *Storage) drain(rchan <-chan hydraulics.TraversalResult) {
	for {
		select {
		case r := <-rchan:
			if err := t.StoreResult(r); err != nil {
				log.Error("could not store traversal result:", err)
			}
		default:
			return
		}
	}
}

// StoreResult stores a traversal result in TimescaleDB
func (t *Storage) StoreResult(r hydraulics.TraversalResult) error {
	row := ResultRow{
		Time:                  r.Timestamp,
		RunID:                 r.RunID,
		PipeMaterial:          string(r.Material),
		PipeAge:               r.AgeYears,
		InitialDiameterMeters: r.InitialDiameterMeters,
		ReducedDiameterMeters: r.EffectiveDiameterMeters,
		TotalDistanceMeters:   r.TotalDistanceMeters,
		TravelTimeSeconds:     r.TotalTravelTimeSeconds,
		PumpPolicy:            r.PumpPolicy,
	}
	if err := t.TimescaleDBConn.Create(&row).Error; err != nil {
		log.Error("could not store traversal result:", err)
		return err
	}
	return nil
}
