// =============================================================================
// Mercado - Inventory Store
// =============================================================================
//
// This module persists the product list to a flat file, one fixed-format
// line per product:
//
//   code (left-justified, 10) | name (spaces replaced by '-', centered, 30)
//   | price (right-justified, 7) | sale unit (right-justified, 10)
//
// Loading splits each line on whitespace and reverses the name placeholder.
// The file is fully read or fully written per call; there is no partial or
// streamed access and no concurrent writer.
//
// =============================================================================

package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/mercado/internal/types"
)

// ErrNotFound signals that no inventory file exists yet. The caller seeds
// defaults and persists them in that case.
var ErrNotFound = errors.New("inventory file not found")

// WriteMode selects how Save touches the inventory file.
type WriteMode int

const (
	// Overwrite replaces the whole file with the given products.
	Overwrite WriteMode = iota

	// Append adds the given products to the end of the file. Used by the
	// add flow, which persists only the newly added suffix.
	Append
)

// Store reads and writes the persisted inventory.
type Store struct {
	path string
	log  *logrus.Entry
}

// New creates a Store backed by the file at path.
func New(path string, log *logrus.Entry) *Store {
	return &Store{path: path, log: log}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads every persisted product. It returns ErrNotFound if the file
// does not exist; an existing but empty file yields an empty list.
func (s *Store) Load() ([]*types.Product, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory file: %w", err)
	}

	var products []*types.Product
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("inventory file line %d: %w", i+1, err)
		}
		products = append(products, p)
	}

	s.log.WithField("products", len(products)).Debug("inventory loaded")
	return products, nil
}

// parseLine decodes one fixed-format inventory row.
func parseLine(line string) (*types.Product, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return nil, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	price, err := decimal.NewFromString(fields[2])
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", fields[2], err)
	}

	unit := types.SaleUnit(fields[3])
	if !unit.Valid() {
		return nil, fmt.Errorf("invalid sale unit %q", fields[3])
	}

	return &types.Product{
		Code:   fields[0],
		Name:   strings.ReplaceAll(fields[1], "-", " "),
		Price:  price,
		SoldIn: unit,
	}, nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save serializes the given products and writes or appends them to the
// inventory file, creating the parent directory if needed.
func (s *Store) Save(products []*types.Product, mode WriteMode) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if mode == Append {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(s.path, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open inventory file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range products {
		if _, err := w.WriteString(encodeLine(p)); err != nil {
			return fmt.Errorf("failed to write inventory file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write inventory file: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"products": len(products),
		"append":   mode == Append,
	}).Debug("inventory saved")
	return nil
}

// encodeLine renders one fixed-format inventory row, newline-terminated.
func encodeLine(p *types.Product) string {
	name := strings.ReplaceAll(p.Name, " ", "-")
	return fmt.Sprintf("%-10s%s%7s%10s\n",
		p.Code, centered(name, 30), p.Price.String(), string(p.SoldIn))
}

// centered pads s to width characters with the extra space on the right.
func centered(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
