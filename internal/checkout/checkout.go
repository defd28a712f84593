// =============================================================================
// Mercado - Checkout Engine
// =============================================================================
//
// This module drives the per-customer checkout: it draws a random cart from
// the inventory, interprets the operator's scan entries against the cart,
// and accumulates a receipt and a running total.
//
// SCAN CONTRACT:
//   - Products sold by unit are passed as "code*quantity" (either order) or
//     as the bare code for a single item. The amount the entry multiplies
//     out to must equal unit price x cart quantity exactly.
//   - Weight-sold products are passed as the bare code; the price charged
//     is unit price x (grams / 100).
//
// Scan entries are never evaluated as code. A safe two-factor parser maps
// the code side to the unit price and requires the other side to be all
// digits.
//
// =============================================================================

package checkout

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/mercado/internal/prompt"
	"github.com/ginjaninja78/mercado/internal/render"
	"github.com/ginjaninja78/mercado/internal/types"
)

// =============================================================================
// SCAN FAILURES
// =============================================================================

// Every scan failure is recoverable: the operator is told what went wrong
// and the loop re-prompts. Nothing is charged on a failed scan.
var (
	ErrUnknownCode    = errors.New("no stocked product code in entry")
	ErrNotPurchased   = errors.New("product not in the customer's cart")
	ErrAlreadyScanned = errors.New("product already on the receipt")
	ErrPriceMismatch  = errors.New("entry amount differs from what the customer owes")
	ErrInvalidScan    = errors.New("entry is not a valid register scan")
)

// scanMessages maps scan failures to what the operator sees.
var scanMessages = map[error]string{
	ErrUnknownCode:    "Error! No product with this code exists.",
	ErrNotPurchased:   "Error! The customer did not buy this product.",
	ErrAlreadyScanned: "Error! This product has already been scanned.",
	ErrPriceMismatch:  "Error! The amount entered differs from what the customer owes.",
	ErrInvalidScan:    "Error! The register entry for this product is invalid, try again.",
}

// =============================================================================
// QUANTITY DRAWS
// =============================================================================

const (
	minUnitQty   = 1
	maxUnitQty   = 20
	minWeightQty = 100
	maxWeightQty = 2000

	// reclassifyAt is the drawn weight, in grams, at which a gram-sold
	// cart line is relabeled to kilograms.
	reclassifyAt = 1000
)

// =============================================================================
// REGISTER
// =============================================================================

// Register runs checkouts against the session inventory.
type Register struct {
	prompter *prompt.Prompter
	renderer *render.Renderer
	rng      *rand.Rand
	log      *logrus.Entry

	// Pacing is the pause inserted after each scan iteration.
	Pacing time.Duration
}

// NewRegister creates a Register.
func NewRegister(p *prompt.Prompter, r *render.Renderer, rng *rand.Rand, log *logrus.Entry) *Register {
	return &Register{prompter: p, renderer: r, rng: rng, log: log}
}

// Checkout is the state of one customer's passage through the register.
type Checkout struct {
	ID      uuid.UUID
	Cart    []types.CartLine
	Receipt []types.ReceiptLine
	Total   decimal.Decimal
}

// =============================================================================
// CART GENERATION
// =============================================================================

// GenerateCart draws a simulated customer's cart: a uniform size in
// [1, len(products)], then uniform product picks with replacement until
// the cart holds that many distinct codes.
//
// A gram-sold line whose drawn weight reaches one kilogram is relabeled to
// kilograms. The relabeling is applied to the shared inventory record, not
// just the cart line, so it persists for later customers.
func (r *Register) GenerateCart(products []*types.Product) []types.CartLine {
	size := r.rng.Intn(len(products)) + 1

	var cart []types.CartLine
	for len(cart) < size {
		p := products[r.rng.Intn(len(products))]
		if cartHasCode(cart, p.Code) {
			continue
		}

		var qty int
		if p.SoldIn == types.Unit {
			qty = r.rng.Intn(maxUnitQty-minUnitQty+1) + minUnitQty
		} else {
			qty = r.rng.Intn(maxWeightQty-minWeightQty+1) + minWeightQty
		}

		if p.SoldIn == types.Gram && qty >= reclassifyAt {
			p.SoldIn = types.Kilogram
		}

		cart = append(cart, types.CartLine{
			Code:     p.Code,
			Name:     p.Name,
			Price:    p.Price,
			SoldIn:   p.SoldIn,
			Quantity: qty,
		})
	}
	return cart
}

func cartHasCode(cart []types.CartLine, code string) bool {
	for _, line := range cart {
		if line.Code == code {
			return true
		}
	}
	return false
}

// =============================================================================
// SCAN PROCESSING
// =============================================================================

// Scan interprets one operator entry against the checkout state. On
// success the matched cart line is removed, a receipt line is appended and
// the charged amount is returned. On any failure the checkout state is
// unchanged and the returned amount is zero.
func (r *Register) Scan(c *Checkout, products []*types.Product, entry string) (decimal.Decimal, error) {
	entry = strings.ReplaceAll(entry, "x", "*")

	if !anyCodeIn(products, entry) {
		return decimal.Zero, ErrUnknownCode
	}

	for i, line := range c.Cart {
		if !strings.Contains(entry, line.Code) || receiptHasCode(c.Receipt, line.Code) {
			continue
		}

		switch {
		case line.SoldIn == types.Unit && prompt.IsValidUnitScan(entry, line.Code):
			amount, err := evaluateUnitScan(entry, line.Code, line.Price)
			if err != nil {
				return decimal.Zero, ErrInvalidScan
			}
			owed := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			if !amount.Equal(owed) {
				return decimal.Zero, ErrPriceMismatch
			}
			r.settle(c, i, amount)
			return amount, nil

		case line.SoldIn != types.Unit && entry == line.Code:
			// Weight-sold: stored quantity is in grams, price is per 100.
			amount := line.Price.Mul(decimal.New(int64(line.Quantity), -2))
			r.settle(c, i, amount)
			return amount, nil

		default:
			return decimal.Zero, ErrInvalidScan
		}
	}

	if receiptCodeIn(c.Receipt, entry) {
		return decimal.Zero, ErrAlreadyScanned
	}
	return decimal.Zero, ErrNotPurchased
}

// settle moves cart line i onto the receipt for the given amount.
func (r *Register) settle(c *Checkout, i int, amount decimal.Decimal) {
	line := c.Cart[i]
	c.Cart = append(c.Cart[:i], c.Cart[i+1:]...)
	c.Receipt = append(c.Receipt, types.ReceiptLine{
		Code:     line.Code,
		Name:     line.Name,
		Quantity: line.Quantity,
		SoldIn:   line.SoldIn,
		Total:    r.renderer.Currency(amount),
	})
}

// evaluateUnitScan computes the amount a unit-sale entry multiplies out
// to. The bare code evaluates to the unit price. Otherwise the entry must
// be "factor * factor" with the code, trimmed, on exactly one side; the
// other side is the quantity.
func evaluateUnitScan(entry, code string, price decimal.Decimal) (decimal.Decimal, error) {
	if entry == code {
		return price, nil
	}

	i := strings.Index(entry, "*")
	if i <= 0 || i == len(entry)-1 {
		return decimal.Zero, ErrInvalidScan
	}

	left := strings.TrimSpace(entry[:i])
	right := strings.TrimSpace(entry[i+1:])

	var multiplier string
	switch {
	case left == code:
		multiplier = right
	case right == code:
		multiplier = left
	default:
		return decimal.Zero, ErrInvalidScan
	}

	qty, err := strconv.Atoi(multiplier)
	if err != nil {
		return decimal.Zero, ErrInvalidScan
	}
	return price.Mul(decimal.NewFromInt(int64(qty))), nil
}

func anyCodeIn(products []*types.Product, entry string) bool {
	for _, p := range products {
		if strings.Contains(entry, p.Code) {
			return true
		}
	}
	return false
}

func receiptHasCode(receipt []types.ReceiptLine, code string) bool {
	for _, line := range receipt {
		if line.Code == code {
			return true
		}
	}
	return false
}

func receiptCodeIn(receipt []types.ReceiptLine, entry string) bool {
	for _, line := range receipt {
		if strings.Contains(entry, line.Code) {
			return true
		}
	}
	return false
}

// =============================================================================
// INTERACTIVE CHECKOUT
// =============================================================================

// ServeCustomer runs one full checkout: cart generation, the scan loop
// until the cart is empty, and the receipt. Returns the amount the
// customer spent.
func (r *Register) ServeCustomer(products []*types.Product, customerNumber int) decimal.Decimal {
	c := &Checkout{
		ID:   uuid.New(),
		Cart: r.GenerateCart(products),
	}

	r.log.WithFields(logrus.Fields{
		"receipt":  c.ID,
		"customer": customerNumber,
		"lines":    len(c.Cart),
	}).Info("checkout started")

	for len(c.Cart) > 0 && !r.prompter.Failed() {
		r.renderer.Printf("\n")
		r.renderCart(c, customerNumber)

		entry := r.prompter.Line("\nProduct code: ")
		if r.prompter.Failed() {
			break
		}

		charged, err := r.Scan(c, products, entry)
		if err != nil {
			r.prompter.Warn(scanMessages[err])
		}
		c.Total = c.Total.Add(charged)

		time.Sleep(r.Pacing)
	}

	r.renderer.Printf("\nReceipt %s (customer %d)\n", shortID(c.ID), customerNumber)
	r.renderReceipt(c)
	r.renderer.Printf("Total spent: %s\n\n", r.renderer.Currency(c.Total))

	r.log.WithFields(logrus.Fields{
		"receipt": c.ID,
		"total":   c.Total.StringFixed(2),
	}).Info("checkout completed")
	return c.Total
}

// renderCart shows what remains in the customer's cart.
func (r *Register) renderCart(c *Checkout, customerNumber int) {
	rows := make([]string, 0, len(c.Cart))
	for _, line := range c.Cart {
		rows = append(rows, "|"+render.Center(line.Code, 10)+
			"|"+render.Center(line.Name, 19)+
			"|"+render.Right(strconv.Itoa(line.Quantity), 7)+
			render.Left(string(line.SoldIn), 7)+"|")
	}
	r.renderer.Table(
		"Customer "+strconv.Itoa(customerNumber)+"'s Cart",
		[]string{"Code", "Product Name", "Quantity"},
		rows,
	)
}

// renderReceipt shows every product passed through the register.
func (r *Register) renderReceipt(c *Checkout) {
	rows := make([]string, 0, len(c.Receipt))
	for _, line := range c.Receipt {
		rows = append(rows, "|"+render.Center(line.Name, 19)+
			"|"+render.Right(strconv.Itoa(line.Quantity), 7)+
			render.Left(string(line.SoldIn), 7)+
			"|"+render.Right(line.Total, 11)+"    |")
	}
	r.renderer.Table(
		"Scanned Products",
		[]string{"Product Name", "Quantity", "Total Price"},
		rows,
	)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
