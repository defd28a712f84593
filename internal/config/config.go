// =============================================================================
// Mercado - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. The
// configuration file is optional: when it is absent the built-in defaults
// apply, so the binary runs with no setup at all.
//
// CONFIGURATION AREAS:
//   1. Storage: location of the flat inventory file
//   2. Logging: operational journal file and level
//   3. Presentation: currency marker, pacing delay between prompts
//   4. Reports: export directory for XLSX inventory reports
//   5. Seed products: the inventory created on first run
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/mercado/internal/types"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// StoreFile is the path of the flat inventory file.
	// Default: "products.txt"
	StoreFile string `yaml:"store_file"`

	// LogFile is the path of the operational log file.
	// Default: "logs/mercado.log"
	LogFile string `yaml:"log_file"`

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// CurrencyMarker is the suffix appended to formatted amounts.
	// Default: "R$"
	CurrencyMarker string `yaml:"currency_marker"`

	// PacingMS is the pause, in milliseconds, inserted between checkout
	// iterations and menu transitions. Purely for readability pacing.
	// Default: 2000
	PacingMS int `yaml:"pacing_ms"`

	// ExportDir is the directory where XLSX inventory reports are written.
	// Default: "reports"
	ExportDir string `yaml:"export_dir"`

	// SeedProducts is the inventory created when no store file exists.
	// When omitted, the built-in five-product set is used.
	SeedProducts []SeedProduct `yaml:"seed_products"`
}

// SeedProduct is one configurable first-run inventory entry.
type SeedProduct struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Price  string `yaml:"price"`
	SoldIn string `yaml:"sold_in"`
}

// Pacing returns the configured pacing delay.
func (c *Config) Pacing() time.Duration {
	return time.Duration(c.PacingMS) * time.Millisecond
}

// Seeds converts the configured seed products into inventory records.
func (c *Config) Seeds() ([]*types.Product, error) {
	products := make([]*types.Product, 0, len(c.SeedProducts))
	for _, s := range c.SeedProducts {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, fmt.Errorf("seed product %q: invalid price %q: %w", s.Name, s.Price, err)
		}
		unit := types.SaleUnit(s.SoldIn)
		if !unit.Valid() {
			return nil, fmt.Errorf("seed product %q: invalid sale unit %q", s.Name, s.SoldIn)
		}
		products = append(products, &types.Product{
			Code:   s.Code,
			Name:   s.Name,
			Price:  price,
			SoldIn: unit,
		})
	}
	return products, nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file. A missing file is not an
// error; the defaults are returned instead.
func Load(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file; run on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.StoreFile == "" {
		config.StoreFile = "products.txt"
	}
	if config.LogFile == "" {
		config.LogFile = "logs/mercado.log"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.CurrencyMarker == "" {
		config.CurrencyMarker = "R$"
	}
	if config.PacingMS == 0 {
		config.PacingMS = 2000
	}
	if config.ExportDir == "" {
		config.ExportDir = "reports"
	}
	if len(config.SeedProducts) == 0 {
		config.SeedProducts = defaultSeedProducts()
	}
}

// validate checks the configuration for values that cannot work.
func validate(config *Config) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", config.LogLevel)
	}
	if config.PacingMS < 0 {
		return fmt.Errorf("pacing_ms must not be negative")
	}
	if _, err := config.Seeds(); err != nil {
		return err
	}
	return nil
}

// defaultSeedProducts is the inventory created on a completely fresh run.
func defaultSeedProducts() []SeedProduct {
	return []SeedProduct{
		{Code: "135729", Name: "Bread", Price: "0.5", SoldIn: "UN"},
		{Code: "345213", Name: "Milk", Price: "3.75", SoldIn: "UN"},
		{Code: "423155", Name: "Egg tray", Price: "4.78", SoldIn: "UN"},
		{Code: "123415", Name: "Mortadella", Price: "2.45", SoldIn: "GR"},
		{Code: "324778", Name: "Rice", Price: "4.0", SoldIn: "UN"},
	}
}
