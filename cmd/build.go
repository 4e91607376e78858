// =============================================================================
// Transfer Payload Converter - Build Command
// =============================================================================
//
// This file defines the 'build' command, which converts one transfer list
// into a payload and prints it.
//
// COMMAND USAGE:
//   converter build [file|-] [flags]
//
// FLAGS:
//   --status   : SUCCESS or ERROR (default SUCCESS)
//   --error    : Error catalog position, required with --status ERROR
//   --sample   : Use the built-in sample input instead of a file
//   --output   : Write the payload to a file instead of stdout
//   --compact  : Single-line JSON
//
// With no file argument, or "-", the input is read from stdin.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
	"github.com/ginjaninja78/transfer-payload-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// buildStatus is the outcome applied to every record.
var buildStatus string

// buildError is the error catalog position for ERROR builds.
var buildError string

// buildSample selects the built-in sample input.
var buildSample bool

// buildOutput is the output file path. Empty means stdout.
var buildOutput string

// buildCompact writes single-line JSON.
var buildCompact bool

// =============================================================================
// BUILD COMMAND DEFINITION
// =============================================================================

var buildCmd = &cobra.Command{
	Use:   "build [file|-]",
	Short: "Build a payload from a transfer list",
	Long: `The build command reads lines of "<transfer id><TAB or SPACE><step id>",
skips lines that do not have two tokens, and prints the payload envelope.

Examples:
  converter build list.tsv
  converter build list.tsv --status ERROR --error 2 --output payload.json
  converter build --sample --status ERROR --error 0`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		raw, err := readBuildInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		request := buildRequest{
			Input:      raw,
			Status:     buildStatus,
			Selection:  buildError,
			OutputPath: buildOutput,
			Options: payload.MarshalOptions{
				Indent:          cfg.Indent,
				Compact:         buildCompact,
				TrailingNewline: true,
			},
		}
		return runBuild(payload.NewBuilder(c), request, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildStatus, "status", string(payload.OutcomeSuccess), "Outcome for every record: SUCCESS or ERROR")
	buildCmd.Flags().StringVar(&buildError, "error", "", "Error catalog position (see 'converter catalog list'), required with --status ERROR")
	buildCmd.Flags().BoolVar(&buildSample, "sample", false, "Use the built-in sample input")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Write the payload to this file instead of stdout")
	buildCmd.Flags().BoolVar(&buildCompact, "compact", false, "Write single-line JSON")
}

// =============================================================================
// BUILD FUNCTION
// =============================================================================

// buildRequest carries the parsed flags of one build.
type buildRequest struct {
	Input     string
	Status    string
	Selection string
	Options   payload.MarshalOptions

	// OutputPath receives the payload instead of out when set.
	OutputPath string
}

// runBuild builds one payload and writes it to out, or to req.OutputPath.
// Nothing is written unless the build succeeds, and the output file is
// replaced atomically. The one-line summary goes to status so that out stays
// pure JSON.
func runBuild(builder *payload.Builder, req buildRequest, out, status io.Writer) error {
	outcome, err := payload.ParseOutcome(req.Status)
	if err != nil {
		return err
	}

	result, err := builder.Build(req.Input, outcome, payload.ParseSelection(req.Selection))
	if err != nil {
		return err
	}

	for _, skipped := range result.Skipped {
		logger.Debug("skipped line",
			zap.Int("line", skipped.Number),
			zap.String("text", skipped.Text),
			zap.String("reason", skipped.Reason),
		)
	}

	data, err := payload.MarshalWithOptions(result.Envelope, req.Options)
	if err != nil {
		return err
	}

	if req.OutputPath != "" {
		if err := utils.WriteFileAtomic(req.OutputPath, data); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
	} else if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}

	fmt.Fprintln(status, result.Summary())
	return nil
}

// readBuildInput returns the sample, the named file, or stdin.
func readBuildInput(stdin io.Reader, args []string) (string, error) {
	if buildSample {
		return payload.SampleInput, nil
	}

	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}
