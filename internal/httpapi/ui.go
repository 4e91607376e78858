// =============================================================================
// Transfer Payload Converter - Browser UI
// =============================================================================
//
// This file serves the embedded single page UI at GET /.
//
// =============================================================================

package httpapi

import (
	_ "embed"
	"net/http"
)

//go:embed ui/index.html
var uiIndexHTML []byte

// handleIndex serves the UI with caching disabled.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(uiIndexHTML)
}
