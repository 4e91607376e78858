// =============================================================================
// Transfer Payload Converter - HTTP API Routes
// =============================================================================
//
// This file registers the routes of the HTTP API served by 'converter serve'.
//
// ROUTES:
//   GET  /              : Browser UI
//   GET  /healthz       : Liveness check
//   GET  /api/catalog   : Error catalog with positions
//   GET  /api/sample    : Built-in sample input
//   POST /api/payload   : Build a payload from pasted text
//
// =============================================================================

package httpapi

import "net/http"

// NewMux returns the API mux over the default error catalog.
func NewMux() *http.ServeMux {
	return NewMuxWithOptions(Options{})
}

// NewMuxWithOptions returns the API mux configured by opt.
//
// PARAMETERS:
//   - opt: The builder, body limit and logger. Zero fields take defaults.
//
// RETURNS:
//   - A ServeMux with every API route registered. It adds no access log;
//     use NewHandler for that.
func NewMuxWithOptions(opt Options) *http.ServeMux {
	opt = opt.withDefaults()
	h := payloadHandler{opt: opt}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleIndex)
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /api/catalog", h.handleCatalog)
	mux.HandleFunc("GET /api/sample", handleSample)
	mux.HandleFunc("POST /api/payload", h.handlePayload)
	return mux
}
