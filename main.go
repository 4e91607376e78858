// =============================================================================
// Transfer Payload Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Transfer Payload Converter CLI. It
// delegates command execution to the cmd package.
//
// USAGE:
//   converter build       - Build a payload from one transfer list
//   converter process     - Convert every transfer list in the input directory
//   converter validate    - Validate configuration, catalog and payload files
//   converter catalog     - List or export the error catalog
//   converter serve       - Run the web form and JSON API
//   converter version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core logic (payload builder, catalog, validation, ...)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/transfer-payload-converter/cmd"
)

func main() {
	cmd.Execute()
}
