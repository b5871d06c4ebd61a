// Package sqlite implements a SQLite storage backend for traversal results,
// suitable for single-host archives without a database server.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/MikeConroy67/hydrology-tools/internal/log"
	"github.com/MikeConroy67/hydrology-tools/internal/storage"
	"github.com/MikeConroy67/hydrology-tools/pkg/config"
	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS traversal_results (
	run_id TEXT PRIMARY KEY,
	time TIMESTAMP NOT NULL,
	pipe_material TEXT NOT NULL,
	pipe_age REAL NOT NULL,
	initial_diameter_meters REAL NOT NULL,
	reduced_diameter_meters REAL NOT NULL,
	total_distance_meters REAL NOT NULL,
	travel_time_seconds REAL,
	pump_policy TEXT
);`

// Storage holds the connection for a SQLite storage backend
type Storage struct {
	db *sql.DB
}

// New sets up a new SQLite storage backend and creates the results table
func New(ctx context.Context, sc *config.SQLiteData) (*Storage, error) {
	if sc.Path == "" {
		return nil, fmt.Errorf("sqlite storage requires a path")
	}

	db, err := sql.Open("sqlite", sc.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("could not create results table: %w", err)
	}

	return &Storage{db: db}, nil
}

// StartStorageEngine creates a goroutine loop to receive traversal results and
// insert them into SQLite
func (s *Storage) StartStorageEngine(ctx context.Context, wg *sync.WaitGroup) chan<- hydraulics.TraversalResult {
	log.Info("starting SQLite storage engine...")
	resultChan := make(chan hydraulics.TraversalResult, 10)
	go s.processResults(ctx, wg, resultChan)
	return resultChan
}

func (s *Storage) processResults(ctx context.Context, wg *sync.WaitGroup, rchan <-chan hydraulics.TraversalResult) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-rchan:
			if err := s.StoreResult(ctx, r); err != nil {
				log.Error("could not store traversal result:", err)
			}
		case <-ctx.Done():
			log.Info("cancellation request received. Cancelling results processor.")
			s.drain(rchan)
			s.db.Close()
			return
		}
	}
}

// drain stores any results still queued at shutdown
func (s *Storage) drain(rchan <-chan hydraulics.TraversalResult) {
	for {
		select {
		case r := <-rchan:
			if err := s.StoreResult(context.Background(), r); err != nil {
				log.Error("could not store traversal result:", err)
			}
		default:
			return
		}
	}
}

// StoreResult inserts one traversal result. Infinite travel times are stored
// as NULL since SQLite REAL has no infinity literal.
func (s *Storage) StoreResult(ctx context.Context, r hydraulics.TraversalResult) error {
	var travelTime any
	if !math.IsInf(r.TotalTravelTimeSeconds, 0) {
		travelTime = r.TotalTravelTimeSeconds
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO traversal_results
			(run_id, time, pipe_material, pipe_age, initial_diameter_meters,
			 reduced_diameter_meters, total_distance_meters, travel_time_seconds, pump_policy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Timestamp, string(r.Material), r.AgeYears, r.InitialDiameterMeters,
		r.EffectiveDiameterMeters, r.TotalDistanceMeters, travelTime, r.PumpPolicy)
	if err != nil {
		return fmt.Errorf("could not insert traversal result: %w", err)
	}
	return nil
}

// RecentResults returns the most recently stored results, newest first. NULL
// travel times read back as +Inf, matching how StoreResult writes them.
func (s *Storage) RecentResults(ctx context.Context, limit int) ([]storage.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT time, run_id, pipe_material, pipe_age, initial_diameter_meters,
		       reduced_diameter_meters, total_distance_meters, travel_time_seconds
		FROM traversal_results
		ORDER BY time DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query traversal results: %w", err)
	}
	defer rows.Close()

	var records []storage.Record
	for rows.Next() {
		var rec storage.Record
		var travelTime sql.NullFloat64
		if err := rows.Scan(&rec.Timestamp, &rec.RunID, &rec.PipeMaterial, &rec.PipeAge,
			&rec.InitialDiameterMeters, &rec.ReducedDiameterMeters,
			&rec.TotalDistanceMeters, &travelTime); err != nil {
			return nil, fmt.Errorf("could not scan traversal result: %w", err)
		}
		if travelTime.Valid {
			rec.TravelTimeSeconds = storage.TravelSeconds(travelTime.Float64)
		} else {
			rec.TravelTimeSeconds = storage.TravelSeconds(math.Inf(1))
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
