package config

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

const fixtureSchema = `
CREATE TABLE pipelines (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	material TEXT NOT NULL,
	age_years REAL NOT NULL,
	initial_diameter_meters REAL NOT NULL,
	pump_policy TEXT
);
CREATE TABLE segments (
	pipeline_id INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	slope REAL NOT NULL,
	length_meters REAL NOT NULL
);
CREATE TABLE pumps (
	pipeline_id INTEGER NOT NULL,
	seq INTEGER NOT NULL,
	flow_rate_boost_m3_per_sec REAL NOT NULL,
	position_meters REAL NOT NULL
);
CREATE TABLE storage_configs (
	backend TEXT NOT NULL,
	path TEXT,
	connection_string TEXT
);
CREATE TABLE controllers (
	type TEXT NOT NULL,
	listen_addr TEXT,
	port INTEGER
);`

func newFixtureDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening fixture database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(fixtureSchema); err != nil {
		t.Fatalf("creating fixture schema: %v", err)
	}

	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO pipelines (id, name, material, age_years, initial_diameter_meters, pump_policy)
			VALUES (1, 'main-trunk', 'Steel', 10, 0.5, 'literal')`, nil},
		// segments inserted out of traversal order; seq decides
		{`INSERT INTO segments (pipeline_id, seq, slope, length_meters) VALUES (?, ?, ?, ?)`, []any{1, 2, 0.005, 400}},
		{`INSERT INTO segments (pipeline_id, seq, slope, length_meters) VALUES (?, ?, ?, ?)`, []any{1, 1, 0.01, 1000}},
		{`INSERT INTO pumps (pipeline_id, seq, flow_rate_boost_m3_per_sec, position_meters) VALUES (?, ?, ?, ?)`, []any{1, 2, 0.02, 1200}},
		{`INSERT INTO pumps (pipeline_id, seq, flow_rate_boost_m3_per_sec, position_meters) VALUES (?, ?, ?, ?)`, []any{1, 1, 0.05, 600}},
		{`INSERT INTO storage_configs (backend, path) VALUES ('file', 'water_travel_time.json')`, nil},
		{`INSERT INTO controllers (type, listen_addr, port) VALUES ('rest', '', 8090)`, nil},
	}
	for _, s := range stmts {
		if _, err := db.Exec(s.query, s.args...); err != nil {
			t.Fatalf("inserting fixture row: %v", err)
		}
	}
	return path
}

func TestSQLiteProviderLoadConfig(t *testing.T) {
	provider, err := NewSQLiteProvider(newFixtureDB(t))
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if len(cfg.Pipelines) != 1 {
		t.Fatalf("expected 1 pipeline, got %d", len(cfg.Pipelines))
	}
	p := cfg.Pipelines[0]
	if p.Name != "main-trunk" || p.Material != "Steel" || p.PumpPolicy != "literal" {
		t.Errorf("pipeline = %+v", p)
	}

	if len(p.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(p.Segments))
	}
	if p.Segments[0].Slope != 0.01 || p.Segments[0].LengthMeters != 1000 {
		t.Errorf("segments not in seq order: first = %+v", p.Segments[0])
	}
	if p.Segments[1].Slope != 0.005 || p.Segments[1].LengthMeters != 400 {
		t.Errorf("segments not in seq order: second = %+v", p.Segments[1])
	}

	if len(p.Pumps) != 2 {
		t.Fatalf("expected 2 pumps, got %d", len(p.Pumps))
	}
	if p.Pumps[0].PositionMeters != 600 || p.Pumps[1].PositionMeters != 1200 {
		t.Errorf("pumps not in seq order: %+v", p.Pumps)
	}

	if cfg.Storage.File == nil || cfg.Storage.File.Path != "water_travel_time.json" {
		t.Errorf("file storage = %+v", cfg.Storage.File)
	}
	if cfg.Storage.TimescaleDB != nil {
		t.Error("timescaledb storage should be absent")
	}

	if len(cfg.Controllers) != 1 || cfg.Controllers[0].Type != "rest" {
		t.Fatalf("controllers = %+v", cfg.Controllers)
	}
	if cfg.Controllers[0].RESTServer == nil || cfg.Controllers[0].RESTServer.Port != 8090 {
		t.Errorf("rest server = %+v", cfg.Controllers[0].RESTServer)
	}
}

func TestSQLiteProviderSectionGetters(t *testing.T) {
	provider, err := NewSQLiteProvider(newFixtureDB(t))
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	defer provider.Close()

	pipelines, err := provider.GetPipelines()
	if err != nil || len(pipelines) != 1 {
		t.Fatalf("GetPipelines = (%v, %v)", pipelines, err)
	}
	storage, err := provider.GetStorageConfig()
	if err != nil || storage.File == nil {
		t.Fatalf("GetStorageConfig = (%+v, %v)", storage, err)
	}
	if !provider.IsReadOnly() {
		t.Error("SQLite provider has no write surface and should be read-only")
	}
}
