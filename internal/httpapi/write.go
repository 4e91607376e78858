// =============================================================================
// Transfer Payload Converter - HTTP Response Writers
// =============================================================================
//
// This file contains the helpers every handler uses to write a response.
//
// =============================================================================

package httpapi

import (
	"encoding/json"
	"net/http"
)

// AppError is the body of every error response.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// ErrorResponse wraps AppError as {"error": {...}}.
type ErrorResponse struct {
	Error AppError `json:"error"`
}

// WriteText writes body as text/plain with the given status.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteJSON writes v as a JSON response with the given status. HTML
// characters are not escaped. Encoding errors are dropped once the status
// line is sent.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// WriteError writes e wrapped in an ErrorResponse.
//
// PARAMETERS:
//   - w: The response writer.
//   - status: The HTTP status code.
//   - e: The error body.
func WriteError(w http.ResponseWriter, status int, e AppError) {
	WriteJSON(w, status, ErrorResponse{Error: e})
}
