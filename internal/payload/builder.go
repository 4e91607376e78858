// =============================================================================
// Transfer Payload Converter - Payload Builder
// =============================================================================
//
// This module turns pasted transfer lines into the payload envelope consumed
// by the payment-platform toolkit.
//
// BUILD PIPELINE:
//   1. Reject input that is blank after trimming
//   2. Split into non-blank lines
//   3. Tokenize each line (tab first, whitespace fallback)
//   4. Skip lines without two non-empty tokens
//   5. Build a record per line with the outcome's status
//   6. For ERROR, attach the selected catalog descriptor
//   7. Reject the build if no record was produced
//
// Build is a pure function of its arguments and the catalog. Skipped lines are
// returned as diagnostics, never logged here.
//
// =============================================================================

package payload

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/transfer-payload-converter/internal/catalog"
	"github.com/ginjaninja78/transfer-payload-converter/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Skip reasons reported in SkippedLine.Reason.
const (
	ReasonTooFewTokens = "fewer than two tokens"
	ReasonEmptyToken   = "empty transfer id or step id"
)

// SkippedLine describes an input line that produced no record.
type SkippedLine struct {
	Number int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Result is the outcome of a successful build.
type Result struct {
	// Envelope is the payload to serialize.
	Envelope types.PayloadEnvelope

	// Skipped lists the lines that were dropped, in input order.
	Skipped []SkippedLine

	// LinesRead is the number of non-blank lines examined.
	LinesRead int
}

// Summary returns a one-line, human-readable description of the result.
func (r *Result) Summary() string {
	n := len(r.Envelope.Requests)
	noun := "transfer"
	if n > 1 {
		noun += "s"
	}
	return fmt.Sprintf("Generated payload for %d %s", n, noun)
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder builds payloads against one error catalog.
type Builder struct {
	catalog *catalog.Catalog
}

// NewBuilder creates a Builder. A nil catalog means catalog.Default().
func NewBuilder(c *catalog.Catalog) *Builder {
	if c == nil {
		c = catalog.Default()
	}
	return &Builder{catalog: c}
}

// Catalog returns the catalog selections are resolved against.
func (b *Builder) Catalog() *catalog.Catalog {
	return b.catalog
}

// Build parses raw and assembles the payload envelope.
//
// PARAMETERS:
//   - raw: The pasted text, one "<transfer id><TAB or SPACE><step id>" per line.
//   - outcome: SUCCESS or ERROR, applied to every record.
//   - selection: The catalog position for ERROR builds. Ignored for SUCCESS.
//
// RETURNS:
//   - The envelope with diagnostics.
//   - A *BuildError wrapping ErrEmptyInput, ErrMissingErrorSelection or
//     ErrNoValidRecords. No partial envelope is ever returned with an error.
func (b *Builder) Build(raw string, outcome Outcome, selection Selection) (*Result, error) {
	lines := SplitLines(raw)
	if len(lines) == 0 {
		return nil, newEmptyInputError()
	}

	result := &Result{
		Envelope: types.PayloadEnvelope{
			SkipTerminalStatusCheck: false,
			Requests:                make([]types.TransferRecord, 0, len(lines)),
		},
		LinesRead: len(lines),
	}

	status := outcome.Status()

	for _, line := range lines {
		parts := Tokenize(line.Text)
		if len(parts) < 2 {
			result.Skipped = append(result.Skipped, SkippedLine{Number: line.Number, Text: line.Text, Reason: ReasonTooFewTokens})
			continue
		}

		id := strings.TrimSpace(parts[0])
		stepID := strings.TrimSpace(parts[1])
		if id == "" || stepID == "" {
			result.Skipped = append(result.Skipped, SkippedLine{Number: line.Number, Text: line.Text, Reason: ReasonEmptyToken})
			continue
		}

		record := types.TransferRecord{
			ID:     id,
			StepID: stepID,
			Status: status,
		}

		if status == types.StatusError {
			index, ok := selection.Index()
			if !ok {
				return nil, newMissingErrorSelectionError()
			}
			descriptor := b.catalog.Resolve(index)
			record.ResultCode = descriptor.Code
			record.ResultDescription = descriptor.Description
		}

		result.Envelope.Requests = append(result.Envelope.Requests, record)
	}

	if len(result.Envelope.Requests) == 0 {
		return nil, newNoValidRecordsError()
	}

	return result, nil
}

// Build runs a build against the default catalog.
func Build(raw string, outcome Outcome, selection Selection) (*Result, error) {
	return NewBuilder(nil).Build(raw, outcome, selection)
}
