// =============================================================================
// Transfer Payload Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It checks the configuration and
// the error catalog, and optionally payload files edited by hand.
//
// COMMAND USAGE:
//   converter validate [payload.json...] [flags]
//
// FLAGS:
//   --strict     : Treat warnings as errors
//   --error-log  : Write all findings to this file
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/transfer-payload-converter/internal/catalog"
	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
	"github.com/ginjaninja78/transfer-payload-converter/internal/validation"
)

// strict treats warnings as errors.
var strict bool

// errorLogPath is where findings are written. Empty disables the log.
var errorLogPath string

var validateCmd = &cobra.Command{
	Use:   "validate [payload.json...]",
	Short: "Validate configuration, error catalog and payload files",
	Long: `The validate command loads the configuration and the error catalog and
reports any problems. Payload files given as arguments are checked against the
payload rules: skipTerminalStatusCheck must be false, at least one request,
non-empty identifiers, and resultCode/resultDescription present only on ERROR
records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		v := validation.NewValidatorWithOptions(validation.ValidationOptions{TreatWarningsAsErrors: strict})
		return runValidate(v, c, args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as errors")
	validateCmd.Flags().StringVar(&errorLogPath, "error-log", "", "Write all findings to this file")
}

// runValidate checks the catalog and each payload file, printing one report
// per target. It fails if any target is invalid.
func runValidate(v *validation.Validator, c *catalog.Catalog, paths []string, out io.Writer) error {
	var findings []*validation.ValidationError
	failed := 0

	report := v.ValidateCatalog(c)
	findings = append(findings, report.Errors...)
	if !printReport(out, fmt.Sprintf("error catalog (%d entries)", c.Len()), report) {
		failed++
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read payload file: %w", err)
		}
		envelope, err := payload.Unmarshal(data)
		if err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", path, err)
			failed++
			continue
		}

		report := v.ValidateEnvelope(envelope)
		findings = append(findings, report.Errors...)
		if !printReport(out, path, report) {
			failed++
		}
	}

	if errorLogPath != "" && len(findings) > 0 {
		if err := validation.WriteErrorLog(findings, errorLogPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Findings written to %s\n", errorLogPath)
	}

	if failed > 0 {
		return fmt.Errorf("validation failed for %d target(s)", failed)
	}
	return nil
}

// printReport prints one target's findings and reports whether it is valid.
func printReport(out io.Writer, name string, report *validation.ValidationResult) bool {
	if report.IsValid {
		fmt.Fprintf(out, "✓ %s", name)
	} else {
		fmt.Fprintf(out, "✗ %s", name)
	}
	if report.WarningCount > 0 || report.ErrorCount > 0 {
		fmt.Fprintf(out, " (%d error(s), %d warning(s))", report.ErrorCount, report.WarningCount)
	}
	fmt.Fprintln(out)

	if len(report.Errors) > 0 {
		fmt.Fprint(out, validation.FormatErrors(report.Errors))
	}
	return report.IsValid
}
