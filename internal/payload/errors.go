package payload

import (
	"errors"
)

// Sentinel errors for the build failure kinds. Use errors.Is against these.
var (
	ErrEmptyInput            = errors.New("empty input")
	ErrMissingErrorSelection = errors.New("missing error selection")
	ErrNoValidRecords        = errors.New("no valid records found")
)

// Stable codes reported to API clients.
const (
	CodeEmptyInput            = "EMPTY_INPUT"
	CodeMissingErrorSelection = "MISSING_ERROR_SELECTION"
	CodeNoValidRecords        = "NO_VALID_RECORDS"
)

// BuildError is a user-input validation failure. Message is meant to be shown
// to the person who pasted the input.
type BuildError struct {
	Code    string
	Message string
	Kind    error
}

func (e *BuildError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel kind for errors.Is support.
func (e *BuildError) Unwrap() error {
	return e.Kind
}

func newEmptyInputError() *BuildError {
	return &BuildError{
		Code:    CodeEmptyInput,
		Message: "Please enter TSV data",
		Kind:    ErrEmptyInput,
	}
}

func newMissingErrorSelectionError() *BuildError {
	return &BuildError{
		Code:    CodeMissingErrorSelection,
		Message: "Please select an error code for ERROR status",
		Kind:    ErrMissingErrorSelection,
	}
}

func newNoValidRecordsError() *BuildError {
	return &BuildError{
		Code:    CodeNoValidRecords,
		Message: "No valid transfer data found. Please check your format (transfer_id [TAB or SPACE] step_id)",
		Kind:    ErrNoValidRecords,
	}
}
