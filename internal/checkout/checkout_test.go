package checkout

import (
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/mercado/internal/prompt"
	"github.com/ginjaninja78/mercado/internal/render"
	"github.com/ginjaninja78/mercado/internal/types"
)

func testLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func testRegister(seed int64, input string, out io.Writer) *Register {
	if out == nil {
		out = io.Discard
	}
	return NewRegister(
		prompt.New(strings.NewReader(input), out),
		render.New(out, "R$"),
		rand.New(rand.NewSource(seed)),
		testLog(),
	)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// =============================================================================
// CART GENERATION
// =============================================================================

func TestGenerateCartDrawsDistinctCodesWithinBounds(t *testing.T) {
	products := []*types.Product{
		{Code: "111111", Name: "Bread", Price: mustDecimal(t, "0.5"), SoldIn: types.Unit},
		{Code: "222222", Name: "Milk", Price: mustDecimal(t, "3.75"), SoldIn: types.Unit},
		{Code: "333333", Name: "Rice", Price: mustDecimal(t, "4.0"), SoldIn: types.Unit},
	}

	for seed := int64(0); seed < 20; seed++ {
		cart := testRegister(seed, "", nil).GenerateCart(products)

		require.NotEmpty(t, cart)
		require.LessOrEqual(t, len(cart), len(products))

		seen := map[string]bool{}
		for _, line := range cart {
			assert.False(t, seen[line.Code], "duplicate code %s in cart", line.Code)
			seen[line.Code] = true
			assert.GreaterOrEqual(t, line.Quantity, 1)
			assert.LessOrEqual(t, line.Quantity, 20)
		}
	}
}

func TestGenerateCartWeightQuantities(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		products := []*types.Product{
			{Code: "123415", Name: "Mortadella", Price: mustDecimal(t, "2.45"), SoldIn: types.Gram},
		}
		cart := testRegister(seed, "", nil).GenerateCart(products)

		require.Len(t, cart, 1)
		assert.GreaterOrEqual(t, cart[0].Quantity, 100)
		assert.LessOrEqual(t, cart[0].Quantity, 2000)
	}
}

// A gram-sold line drawn at >=1000g is relabeled to kilograms, and the
// relabeling lands on the shared inventory record, not just the cart line.
func TestGenerateCartReclassifiesSharedProduct(t *testing.T) {
	var sawGram, sawKilogram bool

	for seed := int64(0); seed < 50; seed++ {
		products := []*types.Product{
			{Code: "123415", Name: "Mortadella", Price: mustDecimal(t, "2.45"), SoldIn: types.Gram},
		}
		cart := testRegister(seed, "", nil).GenerateCart(products)

		require.Len(t, cart, 1)
		if cart[0].Quantity >= 1000 {
			sawKilogram = true
			assert.Equal(t, types.Kilogram, cart[0].SoldIn)
			assert.Equal(t, types.Kilogram, products[0].SoldIn, "inventory record must be relabeled too")
		} else {
			sawGram = true
			assert.Equal(t, types.Gram, cart[0].SoldIn)
			assert.Equal(t, types.Gram, products[0].SoldIn)
		}
	}

	require.True(t, sawGram, "no draw below 1000g across seeds")
	require.True(t, sawKilogram, "no draw at or above 1000g across seeds")
}

// =============================================================================
// SCANNING
// =============================================================================

func scanFixture(t *testing.T) (*Register, *Checkout, []*types.Product) {
	t.Helper()
	products := []*types.Product{
		{Code: "135729", Name: "Bread", Price: mustDecimal(t, "0.01"), SoldIn: types.Unit},
		{Code: "123415", Name: "Mortadella", Price: mustDecimal(t, "2.45"), SoldIn: types.Kilogram},
		{Code: "345213", Name: "Milk", Price: mustDecimal(t, "3.75"), SoldIn: types.Unit},
	}
	c := &Checkout{
		Cart: []types.CartLine{
			{Code: "135729", Name: "Bread", Price: mustDecimal(t, "0.01"), SoldIn: types.Unit, Quantity: 500},
			{Code: "123415", Name: "Mortadella", Price: mustDecimal(t, "2.45"), SoldIn: types.Kilogram, Quantity: 1500},
		},
	}
	return testRegister(1, "", nil), c, products
}

func TestScanUnitLineExactAmount(t *testing.T) {
	r, c, products := scanFixture(t)

	charged, err := r.Scan(c, products, "135729*500")

	require.NoError(t, err)
	assert.Equal(t, "5", charged.String())
	require.Len(t, c.Cart, 1)
	require.Len(t, c.Receipt, 1)
	assert.Equal(t, "Bread", c.Receipt[0].Name)
	assert.Equal(t, "5,00R$", c.Receipt[0].Total)
}

func TestScanUnitLinePriceMismatchLeavesCart(t *testing.T) {
	r, c, products := scanFixture(t)

	for _, entry := range []string{"135729*499", "135729*501"} {
		charged, err := r.Scan(c, products, entry)

		assert.ErrorIs(t, err, ErrPriceMismatch)
		assert.True(t, charged.IsZero())
		assert.Len(t, c.Cart, 2, "failed scan must not consume the line")
		assert.Empty(t, c.Receipt)
	}
}

func TestScanUnitLineReversedOrder(t *testing.T) {
	r, c, products := scanFixture(t)

	charged, err := r.Scan(c, products, "500*135729")

	require.NoError(t, err)
	assert.Equal(t, "5", charged.String())
}

func TestScanNormalizesLiteralX(t *testing.T) {
	r, c, products := scanFixture(t)

	charged, err := r.Scan(c, products, "135729x500")

	require.NoError(t, err)
	assert.Equal(t, "5", charged.String())
}

func TestScanWeightLineChargesPer100Grams(t *testing.T) {
	r, c, products := scanFixture(t)

	charged, err := r.Scan(c, products, "123415")

	require.NoError(t, err)
	// 2.45 x (1500 / 100)
	assert.Equal(t, "36.75", charged.String())
	require.Len(t, c.Receipt, 1)
	assert.Equal(t, "36,75R$", c.Receipt[0].Total)
}

func TestScanWeightLineRejectsMultiplier(t *testing.T) {
	r, c, products := scanFixture(t)

	_, err := r.Scan(c, products, "123415*3")

	assert.ErrorIs(t, err, ErrInvalidScan)
	assert.Len(t, c.Cart, 2)
}

func TestScanUnknownCode(t *testing.T) {
	r, c, products := scanFixture(t)

	_, err := r.Scan(c, products, "999999")

	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestScanStockedButNotPurchased(t *testing.T) {
	r, c, products := scanFixture(t)

	_, err := r.Scan(c, products, "345213")

	assert.ErrorIs(t, err, ErrNotPurchased)
}

func TestScanAlreadyScannedBeatsNotPurchased(t *testing.T) {
	r, c, products := scanFixture(t)

	_, err := r.Scan(c, products, "123415")
	require.NoError(t, err)

	_, err = r.Scan(c, products, "123415")
	assert.ErrorIs(t, err, ErrAlreadyScanned)
}

func TestScanMalformedMultiplier(t *testing.T) {
	r, c, products := scanFixture(t)

	for _, entry := range []string{"135729*abc", "135729*", "*135729", "135729*2*3"} {
		_, err := r.Scan(c, products, entry)
		assert.ErrorIs(t, err, ErrInvalidScan, "entry %q", entry)
	}
}

// =============================================================================
// SCAN EXPRESSION PARSER
// =============================================================================

func TestEvaluateUnitScan(t *testing.T) {
	price := mustDecimal(t, "0.5")
	const code = "135729"

	t.Run("bare code evaluates to the unit price", func(t *testing.T) {
		got, err := evaluateUnitScan(code, code, price)
		require.NoError(t, err)
		assert.Equal(t, "0.5", got.String())
	})

	t.Run("multiplies in either order", func(t *testing.T) {
		got, err := evaluateUnitScan("135729*10", code, price)
		require.NoError(t, err)
		assert.Equal(t, "5", got.String())

		got, err = evaluateUnitScan("10*135729", code, price)
		require.NoError(t, err)
		assert.Equal(t, "5", got.String())
	})

	t.Run("tolerates spaces around the factors", func(t *testing.T) {
		got, err := evaluateUnitScan("135729 * 10", code, price)
		require.NoError(t, err)
		assert.Equal(t, "5", got.String())
	})

	t.Run("rejects entries without the code as a factor", func(t *testing.T) {
		_, err := evaluateUnitScan("1357299*2", code, price)
		assert.ErrorIs(t, err, ErrInvalidScan)
	})

	t.Run("rejects non-numeric multipliers", func(t *testing.T) {
		_, err := evaluateUnitScan("135729*ten", code, price)
		assert.ErrorIs(t, err, ErrInvalidScan)
	})
}

// =============================================================================
// INTERACTIVE CHECKOUT
// =============================================================================

func TestServeCustomerWeightOnlyInventory(t *testing.T) {
	var out bytes.Buffer
	products := []*types.Product{
		{Code: "123415", Name: "Mortadella", Price: mustDecimal(t, "2.45"), SoldIn: types.Kilogram},
	}

	// A single weight-sold product: the cart always holds exactly that
	// line, and the bare code clears it on the first scan.
	r := testRegister(3, "123415\n", &out)
	total := r.ServeCustomer(products, 1)

	assert.True(t, total.GreaterThan(decimal.Zero))
	assert.Contains(t, out.String(), "Customer 1's Cart")
	assert.Contains(t, out.String(), "Scanned Products")
	assert.Contains(t, out.String(), "Total spent: ")
}

func TestServeCustomerReportsBadScans(t *testing.T) {
	var out bytes.Buffer
	products := []*types.Product{
		{Code: "123415", Name: "Mortadella", Price: mustDecimal(t, "2.45"), SoldIn: types.Kilogram},
	}

	r := testRegister(3, "999999\n123415\n", &out)
	total := r.ServeCustomer(products, 1)

	assert.True(t, total.GreaterThan(decimal.Zero))
	assert.Contains(t, out.String(), "Error! No product with this code exists.")
}
