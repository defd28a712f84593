package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, "R$")

	r.Table("Products in Stock", []string{"Code", "Name"}, []string{"| row one |", "| row two |"})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 8)

	header := "|  Code  |  Name  |"
	rule := strings.Repeat("=", len(header))

	assert.Equal(t, rule, lines[0])
	assert.Equal(t, len(header), len(lines[1]), "title row matches table width")
	assert.Contains(t, lines[1], "Products in Stock")
	assert.Equal(t, rule, lines[2])
	assert.Equal(t, header, lines[3])
	assert.Equal(t, rule, lines[4])
	assert.Equal(t, "| row one |", lines[5])
	assert.Equal(t, "| row two |", lines[6])
	assert.Equal(t, rule, lines[7])
}

func TestMenu(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, "R$")

	r.Menu("Open Register", "Manage Inventory", "Exit")

	assert.Equal(t, "\n[ 1 ] Open Register\n[ 2 ] Manage Inventory\n[ 3 ] Exit\n\n", out.String())
}

func TestCurrency(t *testing.T) {
	r := New(&bytes.Buffer{}, "R$")

	cases := map[string]string{
		"0.5":   "0,50R$",
		"36.75": "36,75R$",
		"4":     "4,00R$",
		"0":     "0,00R$",
	}
	for in, want := range cases {
		d, err := decimal.NewFromString(in)
		require.NoError(t, err)
		assert.Equal(t, want, r.Currency(d))
	}
}

func TestAlignmentHelpers(t *testing.T) {
	assert.Equal(t, " ab  ", Center("ab", 5))
	assert.Equal(t, "ab   ", Left("ab", 5))
	assert.Equal(t, "   ab", Right("ab", 5))
	assert.Equal(t, "abcdef", Center("abcdef", 5), "overlong values are not truncated")
}
