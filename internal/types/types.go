// =============================================================================
// Transfer Payload Converter - Shared Types
// =============================================================================
//
// This package contains the wire types shared across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - payload
//   - validation
//   - converter
//   - httpapi
//
// =============================================================================

package types

// =============================================================================
// TRANSFER STATUS
// =============================================================================

// Status is the terminal status reported for a single transfer step.
type Status string

const (
	// StatusSettled is reported when the outcome is SUCCESS.
	StatusSettled Status = "SETTLED"

	// StatusError is reported when the outcome is ERROR.
	StatusError Status = "ERROR"
)

// Valid reports whether s is one of the statuses the toolkit accepts.
func (s Status) Valid() bool {
	return s == StatusSettled || s == StatusError
}

// =============================================================================
// PAYLOAD TYPES
// =============================================================================

// TransferRecord represents one parsed input line.
//
// ResultCode and ResultDescription are set together, and only when Status is
// StatusError.
type TransferRecord struct {
	// ID is the transfer identifier (first token of the line).
	ID string `json:"id"`

	// StepID is the transfer step identifier (second token of the line).
	StepID string `json:"stepId"`

	// Status is SETTLED or ERROR.
	Status Status `json:"status"`

	// ResultCode is the catalog code attached to an ERROR record.
	ResultCode string `json:"resultCode,omitempty"`

	// ResultDescription is the catalog description attached to an ERROR record.
	ResultDescription string `json:"resultDescription,omitempty"`
}

// PayloadEnvelope is the root object sent to the downstream toolkit.
type PayloadEnvelope struct {
	// SkipTerminalStatusCheck is always false for generated payloads.
	SkipTerminalStatusCheck bool `json:"skipTerminalStatusCheck"`

	// Requests holds the records in input line order.
	Requests []TransferRecord `json:"requests"`
}
