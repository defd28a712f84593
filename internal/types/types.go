// =============================================================================
// Mercado - Shared Types
// =============================================================================
//
// This package contains shared domain types used across multiple modules to
// avoid import cycles. Types defined here are used by:
//   - store
//   - checkout
//   - inventory
//   - session
//
// =============================================================================

package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CodeLength is the number of digits in a product code.
const CodeLength = 6

// =============================================================================
// SALE UNITS
// =============================================================================

// SaleUnit is the pricing basis for a product.
type SaleUnit string

const (
	// Unit prices discrete items per piece.
	Unit SaleUnit = "UN"

	// Gram prices weight-sold items per 100 grams.
	Gram SaleUnit = "GR"

	// Kilogram is a relabeling of Gram applied to cart lines whose drawn
	// weight reaches 1000 grams. It is never selectable directly.
	Kilogram SaleUnit = "KG"
)

// Valid reports whether u is one of the known sale units.
func (u SaleUnit) Valid() bool {
	return u == Unit || u == Gram || u == Kilogram
}

// Label returns the human-readable form used in prompts and messages.
func (u SaleUnit) Label() string {
	switch u {
	case Unit:
		return "UN (unit)"
	case Gram:
		return "GR (grams)"
	case Kilogram:
		return "KG (kilograms)"
	}
	return string(u)
}

// =============================================================================
// PRODUCTS
// =============================================================================

// Product is a single inventory record.
//
// Code is immutable once assigned and globally unique. Name uniqueness is
// enforced at creation time only.
type Product struct {
	Code   string
	Name   string
	Price  decimal.Decimal
	SoldIn SaleUnit
}

// CartLine is a snapshot of a product placed in a simulated customer's
// cart, plus the randomly drawn quantity. Lines are consumed as checkout
// scans succeed.
type CartLine struct {
	Code     string
	Name     string
	Price    decimal.Decimal
	SoldIn   SaleUnit
	Quantity int
}

// ReceiptLine is a finalized, priced record of one checked-out cart line.
// It is never mutated after creation.
type ReceiptLine struct {
	Code     string
	Name     string
	Quantity int
	SoldIn   SaleUnit
	Total    string
}

// =============================================================================
// SESSION STATE
// =============================================================================

// State is the single owned mutable state of a session: the in-memory
// inventory plus the aggregate totals. It is passed explicitly into each
// component; there are no package-level globals.
type State struct {
	Products        []*Product
	CustomersServed int
	Revenue         decimal.Decimal
}

// FindByCode returns the index of the product with the given code, or -1.
func (s *State) FindByCode(code string) int {
	for i, p := range s.Products {
		if p.Code == code {
			return i
		}
	}
	return -1
}

// Find locates a product by exact code or capitalized-name match, the way
// the edit and delete flows look products up. First match wins.
func (s *State) Find(query string) int {
	name := Capitalize(query)
	for i, p := range s.Products {
		if query == p.Code || name == p.Name {
			return i
		}
	}
	return -1
}

// HasName reports whether any product already carries the given name.
func (s *State) HasName(name string) bool {
	for _, p := range s.Products {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Remove deletes the product at index i, preserving order.
func (s *State) Remove(i int) {
	s.Products = append(s.Products[:i], s.Products[i+1:]...)
}

// Capitalize mirrors the name normalization applied to every free-text
// product lookup and creation: first rune upper-cased, the remainder
// lower-cased. Applied before leading whitespace is stripped, so a name
// typed with a leading space comes out fully lower-case.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
