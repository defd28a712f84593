// =============================================================================
// Mercado - Run Command
// =============================================================================
//
// This file defines the 'run' command, which starts the interactive
// register/inventory session.
//
// SESSION PIPELINE:
//   1. Load configuration (optional YAML file, defaults otherwise)
//   2. Set up the operational log
//   3. Load the persisted inventory, seeding defaults on first run
//   4. Wire the register, inventory manager and session controller
//   5. Run the top-level menu until the operator exits
//
// The session is fully single-threaded: every operation blocks on
// interactive input, and the only shared mutable state is the session
// State struct passed explicitly through the components.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/mercado/internal/checkout"
	"github.com/ginjaninja78/mercado/internal/config"
	"github.com/ginjaninja78/mercado/internal/inventory"
	"github.com/ginjaninja78/mercado/internal/prompt"
	"github.com/ginjaninja78/mercado/internal/render"
	"github.com/ginjaninja78/mercado/internal/session"
	"github.com/ginjaninja78/mercado/internal/store"
	"github.com/ginjaninja78/mercado/internal/types"
)

// runCmd represents the 'run' command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive register and inventory session",
	Long: `The run command starts the interactive session: a top-level menu for
opening the register, managing the inventory, and exiting.

Opening the register serves simulated customers with randomly generated
carts; the operator passes each product through by entering scan codes
that must match the cart contents and pricing rules. Inventory changes
are persisted to the flat store file as they are made.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runSession wires the components together and drives the session.
func runSession() error {
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
	switch {
	case errors.Is(err, store.ErrNotFound):
		// First run: seed the default inventory and persist it.
		products, err = cfg.Seeds()
		if err != nil {
			return err
		}
		if err := st.Save(products, store.Overwrite); err != nil {
			return err
		}
		logger.WithField("products", len(products)).Info("seeded default inventory")
	case err != nil:
		return err
	}

	prompter := prompt.New(os.Stdin, os.Stdout)
	renderer := render.New(os.Stdout, cfg.CurrencyMarker)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if len(products) == 0 {
		prompter.Warn("There are no products in stock, add products before opening the register.")
	}

	register := checkout.NewRegister(prompter, renderer, rng, logger.WithField("component", "checkout"))
	register.Pacing = cfg.Pacing()

	manager := inventory.NewManager(prompter, renderer, st, rng, logger.WithField("component", "inventory"))
	manager.Pacing = cfg.Pacing()

	controller := session.NewController(prompter, renderer, register, manager, logger.WithField("component", "session"))
	controller.Pacing = cfg.Pacing()

	state := &types.State{Products: products, Revenue: decimal.Zero}

	logger.WithField("products", len(products)).Info("session started")
	controller.Run(state)
	return nil
}

// newLogger builds the file-backed operational logger.
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		level = logrus.DebugLevel
	}

	logger := logrus.New()
	logger.SetOutput(f)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger, nil
}
