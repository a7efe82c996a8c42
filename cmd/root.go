// Package cmd assembles the ned command-line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/usnistgov/NED/internal/iofs"
	"github.com/usnistgov/NED/internal/iologger"
	"github.com/usnistgov/NED/pkg/config"
	"github.com/usnistgov/NED/pkg/ned"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", ned.Version, ned.Build),
	Use:     "ned",
	Short:   "ned synchronizes the NED structural damage catalog",
	Long: `ned maintains the NED catalog of structural damage and fragility
research records in PostgreSQL and keeps it synchronized with the
canonical JSON interchange files.

The tool provides three commands:
  - init:   create the database schema
  - ingest: synchronize the database from canonical JSON collections
  - export: write canonical JSON collections from the database

Configuration precedence (highest to lowest):
  1. CLI flags (--data-dir, --force, etc.)
  2. Environment variables (NED_*)
  3. Config file (~/.config/ned/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (database.host becomes NED_DATABASE_HOST).

  Examples:
    NED_DATABASE_HOST        PostgreSQL host
    NED_DATABASE_PORT        PostgreSQL port
    NED_DATABASE_USER        PostgreSQL user
    NED_DATABASE_PASSWORD    PostgreSQL password
    NED_DATABASE_DATABASE    Database name
    NED_INGEST_DATA_DIR      Canonical data directory
    NED_LOG_LEVEL            Log level (debug/info/warn/error)`,
	PersistentPreRunE: bootstrap,
	RunE:              runRoot,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded.
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, appending to the file
	// the default logger already opened.
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "ned version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.Flags().BoolP("version", "V", false, "version for ned")

	rootCmd.AddCommand(getInitCmd())
	rootCmd.AddCommand(getIngestCmd())
	rootCmd.AddCommand(getExportCmd())
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions(), i.e. persistent configuration that can be
	// stored in config.yaml.
	v.SetEnvPrefix("NED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.database", "DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	// Ingest configuration
	v.BindEnv("ingest.data_dir", "INGEST_DATA_DIR")
	v.BindEnv("ingest.labels_file", "INGEST_LABELS_FILE")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	v.AutomaticEnv()
}
