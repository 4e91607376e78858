// =============================================================================
// Transfer Payload Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── buildCmd    (converter build)
//   ├── processCmd  (converter process)
//   ├── validateCmd (converter validate)
//   ├── catalogCmd  (converter catalog list|export)
//   ├── serveCmd    (converter serve)
//   └── versionCmd  (converter version)
//
// The root command owns the global flags (--config, --verbose) and the
// process-wide zap logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/transfer-payload-converter/internal/catalog"
	"github.com/ginjaninja78/transfer-payload-converter/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logger is built in PersistentPreRunE. Tests replace it with zap.NewNop().
var logger = zap.NewNop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "Transfer Payload Converter - Build terminal-status payloads from transfer lists",
	Long: `Transfer Payload Converter turns lists of "transfer id / step id" pairs into
the JSON payload used to force transfers into a terminal state (SETTLED or
ERROR) through the payment-platform toolkit.

Key Features:
  - Tab or whitespace separated input, malformed lines are skipped
  - Built-in error catalog, replaceable with a YAML, JSON or XLSX file
  - Batch processing of an input directory with bounded concurrency
  - Embedded web form and JSON API

Example Usage:
  converter build list.tsv --status ERROR --error 2
  pbpaste | converter build --status SUCCESS
  converter process --config ./my.yaml
  converter serve`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(startupLevel())
		if err != nil {
			return err
		}
		logger = l
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// newLogger builds the production JSON logger on stderr. Payload output goes
// to stdout, so the two never mix.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(level)
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// startupLevel is the level used before the configuration is read.
func startupLevel() zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// applyLogLevel rebuilds the logger at the configured level unless --verbose
// already forced debug.
func applyLogLevel(level string) {
	if verbose {
		return
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil || lvl == startupLevel() {
		return
	}
	if l, err := newLogger(lvl); err == nil {
		_ = logger.Sync()
		logger = l
	}
}

// loadConfig loads the main configuration. The file is only required when
// --config was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.MainConfig, error) {
	required := cmd.Flags().Changed("config")
	cfg, err := config.LoadMainConfig(cfgFile, required)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	applyLogLevel(cfg.LogLevel)
	return cfg, nil
}

// loadCatalog returns the catalog named by the configuration, or the
// built-in catalog.
func loadCatalog(cfg *config.MainConfig) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load error catalog: %w", err)
	}
	logger.Debug("loaded error catalog", zap.String("path", cfg.CatalogFile), zap.Int("entries", c.Len()))
	return c, nil
}
