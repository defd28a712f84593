// =============================================================================
// Mercado - Input Prompting and Validation
// =============================================================================
//
// This module owns every read from the operator. It provides:
//   - A line reader with the leading-whitespace strip applied to all input
//   - A retry-until-valid prompt loop for restricted answers
//   - Domain validators: monetary strings, unit-sale scan codes, product names
//
// VALIDATION STRATEGY:
//   All validation failures are recoverable: the caller re-prompts until the
//   operator supplies an acceptable value. Nothing here is fatal. The only
//   terminal condition is an exhausted input stream, which callers observe
//   through Failed and treat as the safe exit choice.
//
// =============================================================================

package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// PROMPTER
// =============================================================================

// Prompter reads operator input line by line and writes prompts and error
// messages. It is single-threaded and blocking by design.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	failed bool
}

// New creates a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Failed reports whether the input stream has been exhausted. Once true,
// every subsequent read returns an empty string immediately.
func (p *Prompter) Failed() bool {
	return p.failed
}

// Line displays msg and reads one line, stripping leading whitespace and
// the trailing newline.
func (p *Prompter) Line(msg string) string {
	return strings.TrimLeftFunc(p.RawLine(msg), unicode.IsSpace)
}

// RawLine displays msg and reads one line with only the trailing newline
// removed. The add flow needs the raw value: the name normalization
// applies before leading whitespace is stripped.
func (p *Prompter) RawLine(msg string) string {
	if p.failed {
		return ""
	}
	fmt.Fprint(p.out, msg)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		p.failed = true
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// UntilValid repeatedly displays msg until the operator enters one of the
// allowed values, printing errMsg on every rejected attempt. Returns the
// accepted value, or an empty string if the input stream ends.
func (p *Prompter) UntilValid(msg string, allowed []string, errMsg string) string {
	for {
		entry := p.Line(msg)
		if p.failed {
			return ""
		}
		for _, ok := range allowed {
			if entry == ok {
				return entry
			}
		}
		p.Warn(errMsg)
	}
}

// Printf writes formatted output to the operator.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Warn prints an error message framed by blank lines, the way every
// recoverable validation failure is reported.
func (p *Prompter) Warn(msg string) {
	fmt.Fprintf(p.out, "\n%s\n\n", msg)
}

// =============================================================================
// DOMAIN VALIDATORS
// =============================================================================

// IsValidPrice reports whether text is an acceptable monetary string: at
// most one decimal point, not in first or last position, at most one plus
// sign and only as the first character, and nothing but digits otherwise.
func IsValidPrice(text string) bool {
	if text == "" {
		return false
	}
	if strings.Count(text, ".") > 1 ||
		strings.HasPrefix(text, ".") || strings.HasSuffix(text, ".") {
		return false
	}
	if strings.Count(text, "+") > 1 || strings.Index(text, "+") > 0 {
		return false
	}

	digits := strings.NewReplacer("+", "", ".", "").Replace(text)
	return isDigits(digits)
}

// IsValidUnitScan reports whether scan is an acceptable register entry for
// a product sold by unit. Two shapes pass:
//   - the product code alone (whole-item scan)
//   - a multiplication with exactly one '*' away from both ends, where the
//     side that is not the code is, after trimming, all digits
//
// Either side of the '*' may hold the code.
func IsValidUnitScan(scan, productCode string) bool {
	if scan == productCode {
		return true
	}
	if strings.Count(scan, "*") != 1 ||
		strings.HasPrefix(scan, "*") || strings.HasSuffix(scan, "*") {
		return false
	}

	i := strings.Index(scan, "*")
	multiplier := scan[:i]
	if strings.TrimSpace(scan[:i]) == productCode {
		multiplier = scan[i+1:]
	}
	return isDigits(strings.TrimSpace(multiplier))
}

// IsValidName reports whether name is an acceptable product name: letters
// and inner spaces only, non-empty, and no trailing whitespace.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(name)
	if unicode.IsSpace(last) {
		return false
	}
	stripped := strings.ReplaceAll(name, " ", "")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// isDigits reports whether s is a non-empty ASCII digit string.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
