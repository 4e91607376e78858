// =============================================================================
// Transfer Payload Converter - Converter Module
// =============================================================================
//
// This module contains the per-file conversion pipeline used by the 'process'
// command. It turns one transfer list file into one payload file.
//
// CONVERSION PIPELINE:
//   1. Read the input file
//   2. Build the payload envelope (internal/payload)
//   3. Validate the envelope (internal/validation)
//   4. Serialize the envelope as JSON
//   5. Write the output file
//   6. Archive the input file
//
// CONCURRENCY:
//   A Converter processes exactly one file. The builder, configuration and
//   file manager are shared read-only, so many converters can run at once.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/transfer-payload-converter/internal/config"
	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
	"github.com/ginjaninja78/transfer-payload-converter/internal/validation"
	"github.com/ginjaninja78/transfer-payload-converter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated payload file.
	// This is empty if processing failed or DryRun is set.
	OutputFile string

	// ArchivePath is where the input file was moved to. It equals FilePath
	// when archiving is disabled.
	ArchivePath string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Skipped lists the input lines that produced no record.
	Skipped []payload.SkippedLine

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// LinesRead is the number of non-blank input lines.
	LinesRead int

	// RecordsCreated is the number of transfer records in the payload.
	RecordsCreated int

	// LinesSkipped is the number of malformed lines that were dropped.
	LinesSkipped int

	// ValidationWarnings is the number of warnings raised on the payload.
	ValidationWarnings int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options selects what every record of the converted files reports.
type Options struct {
	// Outcome is applied to every record.
	Outcome payload.Outcome

	// Selection is the catalog position used when Outcome is ERROR.
	Selection payload.Selection

	// DryRun builds and validates without writing or archiving anything.
	DryRun bool
}

// Converter handles the conversion of a single transfer list file.
type Converter struct {
	inputPath string
	config    *config.MainConfig
	builder   *payload.Builder
	files     *utils.FileManager
	options   Options
	logger    *zap.Logger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the transfer list file.
//   - cfg: The main application configuration.
//   - builder: The payload builder, bound to the active error catalog.
//   - files: The file manager used for output and archival.
//   - options: The outcome and error selection for this run.
//   - logger: The logger. nil disables logging.
//
// RETURNS:
//   - A new Converter instance.
func New(inputPath string, cfg *config.MainConfig, builder *payload.Builder, files *utils.FileManager, options Options, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		inputPath: inputPath,
		config:    cfg,
		builder:   builder,
		files:     files,
		options:   options,
		logger:    logger.With(zap.String("file", filepath.Base(inputPath))),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{
		FilePath: c.inputPath,
		Success:  false,
	}
	// Named result: the deferred write lands in the returned value.
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	c.logger.Info("processing file")

	// =========================================================================
	// STEP 1: READ INPUT
	// =========================================================================

	data, err := os.ReadFile(c.inputPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input file: %w", err)
		return result
	}

	// =========================================================================
	// STEP 2: BUILD PAYLOAD
	// =========================================================================

	built, err := c.builder.Build(string(data), c.options.Outcome, c.options.Selection)
	if err != nil {
		result.Error = err
		return result
	}

	result.Skipped = built.Skipped
	result.Stats.LinesRead = built.LinesRead
	result.Stats.RecordsCreated = len(built.Envelope.Requests)
	result.Stats.LinesSkipped = len(built.Skipped)

	for _, skipped := range built.Skipped {
		c.logger.Debug("skipped line",
			zap.Int("line", skipped.Number),
			zap.String("text", skipped.Text),
			zap.String("reason", skipped.Reason),
		)
	}

	// =========================================================================
	// STEP 3: VALIDATE
	// =========================================================================

	report := validation.ValidateEnvelope(built.Envelope)
	result.Stats.ValidationWarnings = report.WarningCount
	for _, finding := range report.Errors {
		if finding.Severity == validation.SeverityWarning {
			c.logger.Warn("payload warning", zap.String("finding", finding.Error()))
		}
	}
	if !report.IsValid {
		result.Error = fmt.Errorf("payload failed validation:\n%s", validation.FormatErrors(report.Errors))
		return result
	}

	// =========================================================================
	// STEP 4: SERIALIZE
	// =========================================================================

	encoded, err := payload.MarshalWithOptions(built.Envelope, payload.MarshalOptions{
		Indent:          c.config.Indent,
		TrailingNewline: true,
	})
	if err != nil {
		result.Error = err
		return result
	}

	if c.options.DryRun {
		c.logger.Info("dry run complete", zap.Int("records", result.Stats.RecordsCreated))
		result.ArchivePath = c.inputPath
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 5: WRITE OUTPUT
	// =========================================================================

	outputPath, err := c.files.WriteOutputFile(c.generateOutputFileName(), encoded)
	if err != nil {
		result.Error = err
		return result
	}
	result.OutputFile = outputPath

	c.logger.Info("wrote payload",
		zap.String("output", outputPath),
		zap.Int("records", result.Stats.RecordsCreated),
		zap.Int("skipped", result.Stats.LinesSkipped),
	)

	// =========================================================================
	// STEP 6: ARCHIVE
	// =========================================================================
	// A failed archive does not fail the file: the payload already exists.

	archivePath, err := c.files.ArchiveInputFile(c.inputPath)
	if err != nil {
		c.logger.Warn("failed to archive input", zap.Error(err))
		archivePath = c.inputPath
	}
	result.ArchivePath = archivePath

	result.Success = true
	return result
}

// generateOutputFileName fills the configured name format for this file.
func (c *Converter) generateOutputFileName() string {
	base := filepath.Base(c.inputPath)
	original := strings.TrimSuffix(base, filepath.Ext(base))

	return utils.GenerateOutputFileName(c.config.OutputNameFormat, map[string]string{
		"original": original,
		"status":   string(c.options.Outcome.Status()),
	})
}
