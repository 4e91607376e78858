// =============================================================================
// Transfer Payload Converter - Validation Engine
// =============================================================================
//
// This module checks payload envelopes and error catalogs before they leave
// the converter. It is run on every generated payload and by the 'validate'
// command on payload files edited by hand.
//
// VALIDATION STRATEGY:
//   Validation is performed at two levels:
//   1. Envelope-level: control flag and non-empty request list
//   2. Record-level: identifiers, status, and the result-field invariant
//      (resultCode/resultDescription present if and only if status is ERROR)
//
// ERROR HANDLING:
//   - Errors are collected, not returned one at a time
//   - Each error names the record index, field and offending value
//   - Errors are either "error" (payload must not be sent) or "warning"
//
// =============================================================================

package validation

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/transfer-payload-converter/internal/catalog"
	"github.com/ginjaninja78/transfer-payload-converter/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Field is the JSON name of the offending field.
	Field string

	// Value is the offending value.
	Value string

	// Rule is the rule that was violated.
	Rule string

	// Message is a human-readable description.
	Message string

	// Index is the position of the record or catalog entry, or -1 for
	// envelope-level findings.
	Index int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	where := "envelope"
	if e.Index >= 0 {
		where = fmt.Sprintf("entry %d", e.Index)
	}
	return fmt.Sprintf("[%s] %s, field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		where,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	// Errors contains all findings, warnings included.
	Errors []*ValidationError

	// ErrorCount is the number of fatal errors.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// EntriesValidated is the number of records or catalog entries checked.
	EntriesValidated int
}

func (r *ValidationResult) add(err *ValidationError, options ValidationOptions) {
	r.Errors = append(r.Errors, err)
	if err.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
		return
	}
	r.WarningCount++
	if options.TreatWarningsAsErrors {
		r.IsValid = false
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// StopOnFirstError stops validation after the first fatal error.
	// Default: false
	StopOnFirstError bool

	// TreatWarningsAsErrors marks the result invalid when warnings exist.
	// Default: false
	TreatWarningsAsErrors bool
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{}
}

// Validator checks envelopes and catalogs.
type Validator struct {
	options ValidationOptions
}

// NewValidator creates a new Validator with default options.
func NewValidator() *Validator {
	return &Validator{options: DefaultValidationOptions()}
}

// NewValidatorWithOptions creates a new Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// =============================================================================
// ENVELOPE VALIDATION
// =============================================================================

// ValidateEnvelope validates a payload envelope with default options.
func ValidateEnvelope(envelope types.PayloadEnvelope) *ValidationResult {
	return NewValidator().ValidateEnvelope(envelope)
}

// ValidateEnvelope validates the envelope and every record in it.
func (v *Validator) ValidateEnvelope(envelope types.PayloadEnvelope) *ValidationResult {
	result := &ValidationResult{
		IsValid:          true,
		Errors:           make([]*ValidationError, 0),
		EntriesValidated: len(envelope.Requests),
	}

	if envelope.SkipTerminalStatusCheck {
		result.add(&ValidationError{
			Severity: SeverityError,
			Field:    "skipTerminalStatusCheck",
			Value:    "true",
			Rule:     "must_be_false",
			Message:  "Generated payloads never skip the terminal status check",
			Index:    -1,
		}, v.options)
	}

	if len(envelope.Requests) == 0 {
		result.add(&ValidationError{
			Severity: SeverityError,
			Field:    "requests",
			Rule:     "non_empty",
			Message:  "Payload contains no transfer requests",
			Index:    -1,
		}, v.options)
	}

	if v.options.StopOnFirstError && result.ErrorCount > 0 {
		return result
	}

	seen := make(map[string]int, len(envelope.Requests))
	for i, record := range envelope.Requests {
		for _, err := range v.ValidateRecord(i, record) {
			result.add(err, v.options)
			if v.options.StopOnFirstError && result.ErrorCount > 0 {
				return result
			}
		}

		key := record.ID + "\x00" + record.StepID
		if first, dup := seen[key]; dup {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Field:    "id",
				Value:    record.ID,
				Rule:     "duplicate",
				Message:  fmt.Sprintf("Transfer step already listed at entry %d", first),
				Index:    i,
			}, v.options)
		} else {
			seen[key] = i
		}
	}

	return result
}

// ValidateRecord validates a single transfer record.
func (v *Validator) ValidateRecord(index int, record types.TransferRecord) []*ValidationError {
	var errors []*ValidationError

	fail := func(severity, field, value, rule, message string) {
		errors = append(errors, &ValidationError{
			Severity: severity,
			Field:    field,
			Value:    value,
			Rule:     rule,
			Message:  message,
			Index:    index,
		})
	}

	// =========================================================================
	// IDENTIFIERS
	// =========================================================================

	if strings.TrimSpace(record.ID) == "" {
		fail(SeverityError, "id", record.ID, "required", "Transfer id is empty")
	} else if strings.ContainsAny(record.ID, " \t\r\n") {
		fail(SeverityWarning, "id", record.ID, "whitespace", "Transfer id contains whitespace")
	}

	if strings.TrimSpace(record.StepID) == "" {
		fail(SeverityError, "stepId", record.StepID, "required", "Step id is empty")
	} else if strings.ContainsAny(record.StepID, " \t\r\n") {
		fail(SeverityWarning, "stepId", record.StepID, "whitespace", "Step id contains whitespace")
	}

	// =========================================================================
	// STATUS AND RESULT FIELDS
	// =========================================================================

	if !record.Status.Valid() {
		fail(SeverityError, "status", string(record.Status), "enum",
			fmt.Sprintf("Status must be %s or %s", types.StatusSettled, types.StatusError))
		return errors
	}

	hasCode := record.ResultCode != ""
	hasDescription := record.ResultDescription != ""

	switch record.Status {
	case types.StatusError:
		if !hasCode {
			fail(SeverityError, "resultCode", "", "required_for_error", "ERROR records need a result code")
		}
		if !hasDescription {
			fail(SeverityError, "resultDescription", "", "required_for_error", "ERROR records need a result description")
		}
	case types.StatusSettled:
		if hasCode {
			fail(SeverityError, "resultCode", record.ResultCode, "forbidden_for_settled", "SETTLED records must not carry a result code")
		}
		if hasDescription {
			fail(SeverityError, "resultDescription", record.ResultDescription, "forbidden_for_settled", "SETTLED records must not carry a result description")
		}
	}

	return errors
}

// =============================================================================
// CATALOG VALIDATION
// =============================================================================

// ValidateCatalog checks catalog entries. Empty fields are errors; repeated
// (code, description) pairs and codes with whitespace are warnings.
func (v *Validator) ValidateCatalog(c *catalog.Catalog) *ValidationResult {
	entries := c.Entries()
	result := &ValidationResult{
		IsValid:          true,
		Errors:           make([]*ValidationError, 0),
		EntriesValidated: len(entries),
	}

	if len(entries) == 0 {
		result.add(&ValidationError{
			Severity: SeverityError,
			Field:    "errors",
			Rule:     "non_empty",
			Message:  "Catalog defines no error descriptors",
			Index:    -1,
		}, v.options)
		return result
	}

	seen := make(map[catalog.ErrorDescriptor]int, len(entries))
	for i, entry := range entries {
		if entry.Code == "" {
			result.add(&ValidationError{Severity: SeverityError, Field: "code", Rule: "required", Message: "Code is empty", Index: i}, v.options)
		} else if strings.ContainsAny(entry.Code, " \t") {
			result.add(&ValidationError{Severity: SeverityWarning, Field: "code", Value: entry.Code, Rule: "whitespace", Message: "Code contains whitespace", Index: i}, v.options)
		}
		if entry.Description == "" {
			result.add(&ValidationError{Severity: SeverityError, Field: "description", Rule: "required", Message: "Description is empty", Index: i}, v.options)
		}
		if first, dup := seen[entry]; dup {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Field:    "code",
				Value:    entry.Code,
				Rule:     "duplicate",
				Message:  fmt.Sprintf("Same descriptor as entry %d", first),
				Index:    i,
			}, v.options)
		} else {
			seen[entry] = i
		}
		if v.options.StopOnFirstError && result.ErrorCount > 0 {
			return result
		}
	}

	return result
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes validation errors to a log file.
//
// PARAMETERS:
//   - errors: The validation errors to write.
//   - filePath: The path to the output file.
//
// RETURNS:
//   - An error if writing fails.
func WriteErrorLog(errors []*ValidationError, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintf(writer, "Transfer Payload Converter - Validation Log\nGenerated: %s\n\n",
		time.Now().Format("2006-01-02 15:04:05"))
	writer.WriteString(FormatErrors(errors))

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush error log: %w", err)
	}
	return nil
}
