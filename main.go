// =============================================================================
// Mercado - Main Entry Point
// =============================================================================
//
// Mercado is a point-of-sale and inventory simulator for a small
// supermarket. It runs as a single interactive terminal session.
//
// USAGE:
//   mercado run        - Start the interactive register/inventory session
//   mercado export     - Export the current inventory to an XLSX report
//   mercado version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/mercado/cmd"
)

func main() {
	cmd.Execute()
}
