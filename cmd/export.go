// =============================================================================
// Mercado - Export Command
// =============================================================================
//
// This file defines the 'export' command, which writes the persisted
// inventory to an XLSX report.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/mercado/internal/config"
	"github.com/ginjaninja78/mercado/internal/render"
	"github.com/ginjaninja78/mercado/internal/report"
	"github.com/ginjaninja78/mercado/internal/store"
)

// exportDir overrides the configured report directory when set.
var exportDir string

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the persisted inventory to an XLSX report",
	Long: `The export command reads the flat inventory file and writes an XLSX
report with one row per product. Report files are named with a timestamp
and a short random suffix, so repeated exports never overwrite each other.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(
		&exportDir,
		"out",
		"",
		"Directory to write the report to (default from configuration)",
	)
}

// runExport loads the inventory and writes the report.
func runExport() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	st := store.New(cfg.StoreFile, logger.WithField("component", "store"))
	products, err := st.Load()
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no inventory to export: %s does not exist", cfg.StoreFile)
	}
	if err != nil {
		return err
	}

	dir := cfg.ExportDir
	if exportDir != "" {
		dir = exportDir
	}

	renderer := render.New(os.Stdout, cfg.CurrencyMarker)
	path, err := report.WriteInventory(products, dir, renderer)
	if err != nil {
		return err
	}

	logger.WithField("report", path).Info("inventory report written")
	fmt.Printf("Inventory report written to %s (%d product(s))\n", path, len(products))
	return nil
}
