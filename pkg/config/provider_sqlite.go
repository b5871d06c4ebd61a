package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	pipelines, err := s.GetPipelines()
	if err != nil {
		return nil, fmt.Errorf("failed to load pipelines: %w", err)
	}
	config.Pipelines = pipelines

	storage, err := s.GetStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	config.Storage = *storage

	controllers, err := s.GetControllers()
	if err != nil {
		return nil, fmt.Errorf("failed to load controllers: %w", err)
	}
	config.Controllers = controllers

	return config, nil
}

// GetPipelines returns pipeline route configurations from the database
func (s *SQLiteProvider) GetPipelines() ([]PipelineData, error) {
	rows, err := s.db.Query(`
		SELECT id, name, material, age_years, initial_diameter_meters,
		       COALESCE(pump_policy, '')
		FROM pipelines
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pipelines: %w", err)
	}
	defer rows.Close()

	var pipelines []PipelineData
	var ids []int64
	for rows.Next() {
		var id int64
		var p PipelineData
		if err := rows.Scan(&id, &p.Name, &p.Material, &p.AgeYears, &p.InitialDiameterMeters, &p.PumpPolicy); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline: %w", err)
		}
		pipelines = append(pipelines, p)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		segments, err := s.getSegments(id)
		if err != nil {
			return nil, err
		}
		pumps, err := s.getPumps(id)
		if err != nil {
			return nil, err
		}
		pipelines[i].Segments = segments
		pipelines[i].Pumps = pumps
	}

	return pipelines, nil
}

// getSegments returns a pipeline's slope segments ordered by traversal position
func (s *SQLiteProvider) getSegments(pipelineID int64) ([]SegmentData, error) {
	rows, err := s.db.Query(`
		SELECT slope, length_meters
		FROM segments
		WHERE pipeline_id = ?
		ORDER BY seq`, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var segments []SegmentData
	for rows.Next() {
		var seg SegmentData
		if err := rows.Scan(&seg.Slope, &seg.LengthMeters); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}

// getPumps returns a pipeline's pump events in input order
func (s *SQLiteProvider) getPumps(pipelineID int64) ([]PumpData, error) {
	rows, err := s.db.Query(`
		SELECT flow_rate_boost_m3_per_sec, position_meters
		FROM pumps
		WHERE pipeline_id = ?
		ORDER BY seq`, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pumps: %w", err)
	}
	defer rows.Close()

	var pumps []PumpData
	for rows.Next() {
		var p PumpData
		if err := rows.Scan(&p.FlowRateBoostM3PerSec, &p.PositionMeters); err != nil {
			return nil, fmt.Errorf("failed to scan pump: %w", err)
		}
		pumps = append(pumps, p)
	}
	return pumps, rows.Err()
}

// GetStorageConfig returns the storage backend configuration from the database
func (s *SQLiteProvider) GetStorageConfig() (*StorageData, error) {
	rows, err := s.db.Query(`
		SELECT backend, COALESCE(path, ''), COALESCE(connection_string, '')
		FROM storage_configs`)
	if err != nil {
		return nil, fmt.Errorf("failed to query storage configs: %w", err)
	}
	defer rows.Close()

	storage := &StorageData{}
	for rows.Next() {
		var backend, path, connString string
		if err := rows.Scan(&backend, &path, &connString); err != nil {
			return nil, fmt.Errorf("failed to scan storage config: %w", err)
		}
		switch backend {
		case "file":
			storage.File = &FileData{Path: path}
		case "sqlite":
			storage.SQLite = &SQLiteData{Path: path}
		case "timescaledb":
			storage.TimescaleDB = &TimescaleDBData{ConnectionString: connString}
		}
	}
	return storage, rows.Err()
}

// GetControllers returns controller configurations from the database
func (s *SQLiteProvider) GetControllers() ([]ControllerData, error) {
	rows, err := s.db.Query(`
		SELECT type, COALESCE(listen_addr, ''), COALESCE(port, 0)
		FROM controllers`)
	if err != nil {
		return nil, fmt.Errorf("failed to query controllers: %w", err)
	}
	defer rows.Close()

	var controllers []ControllerData
	for rows.Next() {
		var con ControllerData
		var listenAddr string
		var port int
		if err := rows.Scan(&con.Type, &listenAddr, &port); err != nil {
			return nil, fmt.Errorf("failed to scan controller: %w", err)
		}
		if con.Type == "rest" {
			con.RESTServer = &RESTServerData{ListenAddr: listenAddr, Port: port}
		}
		controllers = append(controllers, con)
	}
	return controllers, rows.Err()
}

// IsReadOnly returns true: the provider only reads the database. A write
// surface would need to flip this.
func (s *SQLiteProvider) IsReadOnly() bool {
	return true
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
