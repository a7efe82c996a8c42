// Package config provides configuration management for NED.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Log: level, format, destination
//   - Ingest: data_dir, labels_file
//
// Runtime-only fields (CLI flags only):
//   - Ingest.DryRun (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use NED_ prefix with underscores for nesting:
//
//	NED_DATABASE_HOST=localhost
//	NED_DATABASE_PORT=5432
//	NED_LOG_LEVEL=info
//	NED_INGEST_DATA_DIR=/data/canonical
package config

// Config represents the complete NED configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Ingest contains settings shared by the ingest and export commands.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// IngestConfig contains settings for canonical data synchronization.
type IngestConfig struct {
	// DataDir is the directory that holds the canonical JSON document
	// collections (reference.json, component.json, ...).
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// LabelsFile optionally overrides the embedded NISTIR taxonomy
	// label map. Empty means use the embedded data.
	LabelsFile string `mapstructure:"labels_file" yaml:"labels_file"`

	// DryRun routes all persistence to an in-memory store so canonical
	// files can be validated without touching PostgreSQL.
	// Runtime-only field, set by the --dry-run flag.
	DryRun bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "ned",
			SSLMode:  "disable",
		},
		Ingest: IngestConfig{
			DataDir: "data",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
