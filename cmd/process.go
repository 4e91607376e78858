// =============================================================================
// Transfer Payload Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which batch converts every
// transfer list in the input directory.
//
// COMMAND USAGE:
//   converter process [flags]
//
// FLAGS:
//   --status   : SUCCESS or ERROR for every file (default SUCCESS)
//   --error    : Error catalog position, required with --status ERROR
//   --dry-run  : Build and validate without writing or archiving
//   --file     : Process only this file
//
// PROCESSING PIPELINE:
//   1. Load configuration and the error catalog
//   2. Discover input files matching input_patterns
//   3. Convert each file (bounded by max_concurrency)
//   4. Write the processing summary to the output directory
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/transfer-payload-converter/internal/config"
	"github.com/ginjaninja78/transfer-payload-converter/internal/converter"
	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
	"github.com/ginjaninja78/transfer-payload-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// processStatus is the outcome applied to every record of every file.
var processStatus string

// processError is the error catalog position for ERROR runs.
var processError string

// dryRun simulates processing without writing output files.
var dryRun bool

// filePath restricts processing to a single file.
var filePath string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert every transfer list in the input directory",
	Long: `The process command scans the input directory for files matching
input_patterns and converts each one into a payload file in the output
directory.

Files are processed concurrently (max_concurrency). A failing file does not
stop the others.

On success:
  - The payload is written to the output directory
  - The input is moved to the archive when archive_on_success is set

On error:
  - The input remains in the input directory
  - The error is listed in the processing summary`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		outcome, err := payload.ParseOutcome(processStatus)
		if err != nil {
			return err
		}

		options := converter.Options{
			Outcome:   outcome,
			Selection: payload.ParseSelection(processError),
			DryRun:    dryRun,
		}
		summary, err := runProcess(cfg, payload.NewBuilder(c), options, filePath, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if summary.FailedFiles > 0 {
			return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
		}
		return nil
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&processStatus, "status", string(payload.OutcomeSuccess), "Outcome for every record: SUCCESS or ERROR")
	processCmd.Flags().StringVar(&processError, "error", "", "Error catalog position, required with --status ERROR")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate processing without writing output files")
	processCmd.Flags().StringVar(&filePath, "file", "", "Process only this file")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess converts the discovered files and returns the run summary.
func runProcess(cfg *config.MainConfig, builder *payload.Builder, options converter.Options, single string, out io.Writer) (utils.ProcessingSummary, error) {
	summary := utils.ProcessingSummary{StartTime: time.Now()}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir)
	fm.ArchiveOnSuccess = cfg.ArchiveOnSuccess && !options.DryRun
	fm.UseTimestampSubdirs = cfg.ArchiveDateSubdirs

	if err := fm.EnsureDirectories(); err != nil {
		return summary, err
	}

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if single != "" {
		inputFiles = []string{single}
	} else {
		files, err := fm.DiscoverInputFiles(cfg.InputPatterns)
		if err != nil {
			return summary, fmt.Errorf("failed to discover input files: %w", err)
		}
		inputFiles = files
	}

	summary.TotalFiles = len(inputFiles)
	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No input files found.")
		return summary, nil
	}

	logger.Info("processing files",
		zap.Int("files", len(inputFiles)),
		zap.String("status", string(options.Outcome.Status())),
		zap.Bool("dry_run", options.DryRun),
	)

	// =========================================================================
	// STEP 2: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// Results keep input order so the summary is stable across runs.

	results := make([]converter.Result, len(inputFiles))

	var g errgroup.Group
	g.SetLimit(cfg.MaxConcurrency)
	for i, file := range inputFiles {
		g.Go(func() error {
			results[i] = converter.New(file, cfg, builder, fm, options, logger).Run()
			return nil
		})
	}
	_ = g.Wait()

	// =========================================================================
	// STEP 3: COLLECT RESULTS
	// =========================================================================

	for _, result := range results {
		collectResult(&summary, result, out)
	}
	summary.EndTime = time.Now()

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Records:         %d\n", summary.TotalRecords)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	if options.DryRun {
		return summary, nil
	}

	// =========================================================================
	// STEP 4: WRITE SUMMARY
	// =========================================================================

	summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
	if err != nil {
		logger.Warn("failed to write processing summary", zap.Error(err))
	} else {
		fmt.Fprintf(out, "Summary:         %s\n", summaryPath)
	}

	return summary, nil
}

// collectResult folds one file result into the summary and prints its line.
func collectResult(summary *utils.ProcessingSummary, result converter.Result, out io.Writer) {
	name := filepath.Base(result.FilePath)

	if !result.Success {
		summary.FailedFiles++
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    result.FilePath,
			ErrorMessage: result.Error.Error(),
		})
		logger.Error("file failed", zap.String("file", name), zap.Error(result.Error))
		fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
		return
	}

	summary.SuccessfulFiles++
	summary.TotalRecords += result.Stats.RecordsCreated
	summary.SkippedLines += result.Stats.LinesSkipped
	summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
		InputFile:   result.FilePath,
		OutputFile:  result.OutputFile,
		ArchivePath: result.ArchivePath,
		Records:     result.Stats.RecordsCreated,
		Skipped:     result.Stats.LinesSkipped,
		ProcessTime: result.Stats.ProcessingTime,
	})

	target := result.OutputFile
	if target == "" {
		target = "(dry run)"
	}
	fmt.Fprintf(out, "  ✓ %s -> %s (%d records, %d skipped)\n", name, target, result.Stats.RecordsCreated, result.Stats.LinesSkipped)
}
