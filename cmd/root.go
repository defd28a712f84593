// =============================================================================
// Mercado - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'run', 'export') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (mercado)
//   ├── runCmd (mercado run)
//   ├── exportCmd (mercado export)
//   └── versionCmd (mercado version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mercado",
	Short: "Mercado - A small supermarket point-of-sale and inventory simulator",
	Long: `Mercado simulates the point-of-sale and inventory workflow of a small
supermarket in a single interactive terminal session.

Key Features:
  - Persisted product inventory in a flat file
  - Randomly generated customer carts
  - A manual checkout loop validating operator scan entries against
    pricing and quantity rules
  - Inventory maintenance (add, edit, delete) with input validation
  - XLSX inventory report export

Example Usage:
  mercado run                      # Start the interactive session
  mercado run --config ./my.yaml   # Use a custom configuration file
  mercado export                   # Write an XLSX inventory report`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (optional; defaults apply when absent)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
