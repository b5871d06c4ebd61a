// Package config defines the configuration model for hydrology-tools and the
// providers that load it from YAML files or SQLite databases.
package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetPipelines() ([]PipelineData, error)
	GetStorageConfig() (*StorageData, error)
	GetControllers() ([]ControllerData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Pipelines   []PipelineData   `json:"pipelines" yaml:"pipelines"`
	Storage     StorageData      `json:"storage,omitempty" yaml:"storage,omitempty"`
	Controllers []ControllerData `json:"controllers,omitempty" yaml:"controllers,omitempty"`
}

// PipelineData describes one pipeline route to be estimated at startup
type PipelineData struct {
	Name                  string        `json:"name" yaml:"name"`
	Material              string        `json:"material" yaml:"material"`
	AgeYears              float64       `json:"age_years" yaml:"age_years"`
	InitialDiameterMeters float64       `json:"initial_diameter_meters" yaml:"initial_diameter_meters"`
	PumpPolicy            string        `json:"pump_policy,omitempty" yaml:"pump_policy,omitempty"`
	Segments              []SegmentData `json:"segments" yaml:"segments"`
	Pumps                 []PumpData    `json:"pumps,omitempty" yaml:"pumps,omitempty"`
}

// SegmentData is one constant-grade run of pipeline, in route order
type SegmentData struct {
	Slope        float64 `json:"slope" yaml:"slope"`
	LengthMeters float64 `json:"length_meters" yaml:"length_meters"`
}

// PumpData is an in-line pump at a position along the route
type PumpData struct {
	FlowRateBoostM3PerSec float64 `json:"flow_rate_boost_m3_per_sec" yaml:"flow_rate_boost_m3_per_sec"`
	PositionMeters        float64 `json:"position_meters" yaml:"position_meters"`
}

// StorageData holds the configuration for various storage backends
type StorageData struct {
	File        *FileData        `json:"file,omitempty" yaml:"file,omitempty"`
	SQLite      *SQLiteData      `json:"sqlite,omitempty" yaml:"sqlite,omitempty"`
	TimescaleDB *TimescaleDBData `json:"timescaledb,omitempty" yaml:"timescaledb,omitempty"`
}

// FileData holds the configuration for the append-only NDJSON results log
type FileData struct {
	Path string `json:"path" yaml:"path"`
}

// SQLiteData holds the configuration for the SQLite results archive
type SQLiteData struct {
	Path string `json:"path" yaml:"path"`
}

// TimescaleDBData holds the configuration for the TimescaleDB storage backend
type TimescaleDBData struct {
	ConnectionString string `json:"connection_string" yaml:"connection-string"`
}

// ControllerData holds the configuration for a controller backend
type ControllerData struct {
	Type       string          `json:"type" yaml:"type"`
	RESTServer *RESTServerData `json:"rest_server,omitempty" yaml:"rest-server,omitempty"`
}

// RESTServerData holds the configuration for the REST API controller
type RESTServerData struct {
	ListenAddr string `json:"listen_addr,omitempty" yaml:"listen-addr,omitempty"`
	Port       int    `json:"port" yaml:"port"`
}
