// =============================================================================
// Transfer Payload Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the main application configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. Main config file (config.yaml, path set with --config)
//   3. Environment variables prefixed with PAYLOAD_, e.g.
//        PAYLOAD_CATALOG_FILE=./catalog.xlsx
//        PAYLOAD_SERVER__ADDR=:9090     ("__" separates nested keys)
//      A .env file in the working directory is loaded automatically.
//
// The error catalog is not part of this file: catalog_file points at a
// separate catalog document (see internal/catalog).
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PAYLOAD_"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// CATALOG
	// =========================================================================

	// CatalogFile is the path to the error catalog (.yaml, .yml, .json, .xlsx).
	// Empty means the built-in catalog.
	CatalogFile string `koanf:"catalog_file"`

	// =========================================================================
	// DIRECTORY SETTINGS (used by 'process')
	// =========================================================================

	// InputDir is scanned for transfer list files.
	// Default: "./input"
	InputDir string `koanf:"input_dir" validate:"required"`

	// OutputDir receives the generated payload files.
	// Default: "./output"
	OutputDir string `koanf:"output_dir" validate:"required"`

	// ArchiveDir receives input files after successful processing.
	// Default: "./input_archive"
	ArchiveDir string `koanf:"archive_dir" validate:"required"`

	// InputPatterns are glob patterns matched against file names in InputDir.
	// Default: ["*.tsv", "*.txt"]
	InputPatterns []string `koanf:"input_patterns" validate:"required,min=1"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the output file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {original}  - Input file name without extension
	//   {status}    - SETTLED or ERROR
	// Default: "{original}_{status}_{uuid}.json"
	OutputNameFormat string `koanf:"output_name_format" validate:"required"`

	// Indent is the JSON indentation string.
	// Default: two spaces
	Indent string `koanf:"indent"`

	// ArchiveOnSuccess moves processed inputs to ArchiveDir.
	// Default: false
	ArchiveOnSuccess bool `koanf:"archive_on_success"`

	// ArchiveDateSubdirs files archived inputs under YYYY/MM/DD.
	// Default: false
	ArchiveDateSubdirs bool `koanf:"archive_date_subdirs"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files processed at once.
	// Default: 4
	MaxConcurrency int `koanf:"max_concurrency" validate:"min=1"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel is one of "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// =========================================================================
	// HTTP SERVER
	// =========================================================================

	Server ServerConfig `koanf:"server"`
}

// ServerConfig holds the settings of the 'serve' command.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: ":8080"
	Addr string `koanf:"addr" validate:"required"`

	// ReadTimeout bounds reading a request.
	// Default: 10s
	ReadTimeout time.Duration `koanf:"read_timeout" validate:"required"`

	// WriteTimeout bounds writing a response.
	// Default: 10s
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 5s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required"`

	// MaxBodyBytes limits the size of a payload request body.
	// Default: 1 MiB
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"min=1"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//   - required: When false, a missing file is not an error and only
//     defaults and environment variables apply.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	k := koanf.New(".")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil || required {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var config MainConfig
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration built from defaults only.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// envKey maps PAYLOAD_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(
		strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
		"__",
		".",
	)
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ArchiveDir == "" {
		config.ArchiveDir = "./input_archive"
	}
	if len(config.InputPatterns) == 0 {
		config.InputPatterns = []string{"*.tsv", "*.txt"}
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_{status}_{uuid}.json"
	}
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	config.LogLevel = strings.ToLower(config.LogLevel)

	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 10 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 10 * time.Second
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 5 * time.Second
	}
	if config.Server.MaxBodyBytes == 0 {
		config.Server.MaxBodyBytes = 1 << 20
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	return validator.New().Struct(config)
}
