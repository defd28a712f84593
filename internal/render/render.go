// =============================================================================
// Mercado - Table and Menu Rendering
// =============================================================================
//
// This module formats tabular and menu output for the terminal session.
// It is pure presentation: no business logic, no state beyond the output
// writer and the currency marker.
//
// TABLE LAYOUT:
//   The table width is derived from the concatenated column headers. Rows
//   are supplied by the caller already formatted; the alignment helpers
//   (Center, Left, Right) build the fixed-width cells the row templates
//   need.
//
// =============================================================================

package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Renderer writes formatted tables, menus and currency values.
type Renderer struct {
	out io.Writer

	// CurrencyMarker is the suffix appended to formatted amounts.
	CurrencyMarker string
}

// New creates a Renderer writing to out with the given currency marker.
func New(out io.Writer, currencyMarker string) *Renderer {
	return &Renderer{out: out, CurrencyMarker: currencyMarker}
}

// =============================================================================
// TABLES AND MENUS
// =============================================================================

// Table prints a bordered table: top rule, centered title, rule, header
// row, rule, one line per row, closing rule. The width is fixed by the
// concatenated column headers.
func (r *Renderer) Table(title string, columns []string, rows []string) {
	var header strings.Builder
	for _, name := range columns {
		header.WriteString(fmt.Sprintf("|  %s  ", name))
	}
	header.WriteString("|")

	width := utf8.RuneCountInString(header.String())
	rule := strings.Repeat("=", width)

	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "|%s|\n", Center(title, width-2))
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, header.String())
	fmt.Fprintln(r.out, rule)
	for _, row := range rows {
		fmt.Fprintln(r.out, row)
	}
	fmt.Fprintln(r.out, rule)
}

// Menu prints a 1-indexed bracketed option list surrounded by blank lines.
func (r *Renderer) Menu(options ...string) {
	fmt.Fprintln(r.out)
	for i, op := range options {
		fmt.Fprintf(r.out, "[ %d ] %s\n", i+1, op)
	}
	fmt.Fprintln(r.out)
}

// Printf writes formatted output to the renderer's writer.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// =============================================================================
// CURRENCY
// =============================================================================

// Currency formats an amount with two fixed decimal places, a comma as
// the decimal separator, and the currency marker as suffix.
func (r *Renderer) Currency(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1) + r.CurrencyMarker
}

// =============================================================================
// ALIGNMENT HELPERS
// =============================================================================

// Center pads s with spaces to width, extra space going to the right.
func Center(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// Left pads s with trailing spaces to width.
func Left(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Right pads s with leading spaces to width.
func Right(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap) + s
}
