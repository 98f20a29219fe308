// =============================================================================
// SC Allocation List Processor - Main Entry Point
// =============================================================================
//
// USAGE:
//   allocproc mappings          - Show the column mapping table
//   allocproc preview FILE      - Preview the first transformed rows
//   allocproc validate FILE     - Validate every row
//   allocproc process [FILE...] - Export CSV / XLSX / XML
//   allocproc version           - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (domain, parsers, engine, export)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/sc-allocation-list/cmd"
)

func main() {
	cmd.Execute()
}
