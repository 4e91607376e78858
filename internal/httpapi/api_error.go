// =============================================================================
// Transfer Payload Converter - HTTP API Errors
// =============================================================================
//
// This file maps Go errors onto HTTP error responses.
//
// STATUS MAPPING:
//   *APIError          : its own status (400, 413)
//   *payload.BuildError: 422 with the build error code
//   anything else      : 500 INTERNAL_ERROR
//
// =============================================================================

package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
)

// APIError is used by the HTTP layer for request validation errors.
type APIError struct {
	Status   int
	AppError AppError
	Cause    error
}

// Error formats the code and message, followed by the cause if any.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

// Unwrap returns the cause.
func (e *APIError) Unwrap() error { return e.Cause }

func requestError(code, message, hint string) error {
	return &APIError{
		Status:   http.StatusBadRequest,
		AppError: AppError{Code: code, Message: message, Hint: hint},
	}
}

// writeErrorFromErr writes the response for err. A nil err writes nothing.
func writeErrorFromErr(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var ae *APIError
	if errors.As(err, &ae) {
		WriteError(w, ae.Status, ae.AppError)
		return
	}

	// Build failures are problems with the pasted text => 422.
	var be *payload.BuildError
	if errors.As(err, &be) {
		WriteError(w, http.StatusUnprocessableEntity, AppError{Code: be.Code, Message: be.Message})
		return
	}

	WriteError(w, http.StatusInternalServerError, AppError{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
		Hint:    err.Error(),
	})
}
