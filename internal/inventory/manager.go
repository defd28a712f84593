// =============================================================================
// Mercado - Inventory Manager
// =============================================================================
//
// This module runs the manage-stock submenu: adding, editing and deleting
// products over the in-memory inventory, with persistence after each flow.
//
// PERSISTENCE RULES:
//   - Add appends only the newly created products to the store file.
//   - Edit and delete rewrite the whole file when their flow ends.
//
// The submenu has two explicit variants: the full four-option menu while
// stock exists, and a two-option add/back menu once the inventory is empty.
//
// =============================================================================

package inventory

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/mercado/internal/prompt"
	"github.com/ginjaninja78/mercado/internal/render"
	"github.com/ginjaninja78/mercado/internal/store"
	"github.com/ginjaninja78/mercado/internal/types"
)

const (
	yesNoError    = "Error! Invalid answer, try again."
	badMenuError  = "Error! This option does not exist."
	badPriceError = "Error! The price given for the product is invalid."
)

// Manager runs the inventory maintenance flows.
type Manager struct {
	prompter *prompt.Prompter
	renderer *render.Renderer
	store    *store.Store
	rng      *rand.Rand
	log      *logrus.Entry

	// Pacing is the pause inserted between flow transitions.
	Pacing time.Duration
}

// NewManager creates a Manager.
func NewManager(p *prompt.Prompter, r *render.Renderer, st *store.Store, rng *rand.Rand, log *logrus.Entry) *Manager {
	return &Manager{prompter: p, renderer: r, store: st, rng: rng, log: log}
}

// =============================================================================
// SUBMENU
// =============================================================================

// Run drives the manage-stock submenu until the operator goes back.
func (m *Manager) Run(state *types.State) {
	for !m.prompter.Failed() {
		m.renderer.Printf("\n")

		if len(state.Products) > 0 {
			m.renderStock(state)
			m.renderer.Menu("Add Products", "Edit Products", "Delete Products", "Back")

			switch m.prompter.UntilValid("Desired option: ", []string{"1", "2", "3", "4"}, badMenuError) {
			case "1":
				m.addProducts(state)
			case "2":
				m.editProducts(state)
			case "3":
				m.deleteProducts(state)
			default:
				time.Sleep(m.Pacing)
				return
			}
		} else {
			m.prompter.Warn("There are no products in stock, add products.")
			m.renderer.Menu("Add Products", "Back")

			switch m.prompter.UntilValid("Desired option: ", []string{"1", "2"}, badMenuError) {
			case "1":
				m.addProducts(state)
			default:
				time.Sleep(m.Pacing)
				return
			}
		}
	}
}

// renderStock shows the current inventory table.
func (m *Manager) renderStock(state *types.State) {
	rows := make([]string, 0, len(state.Products))
	for _, p := range state.Products {
		rows = append(rows, "|"+render.Center(p.Code, 10)+
			"|"+render.Center(p.Name, 19)+
			"|   "+render.Right(m.renderer.Currency(p.Price), 10)+"       |"+
			render.Center(string(p.SoldIn), 14)+"|")
	}
	m.renderer.Table(
		"Products in Stock",
		[]string{"Code", "Product Name", "Product Price", "Sold In"},
		rows,
	)
}

// =============================================================================
// ADD
// =============================================================================

// addProducts creates products until the operator stops, then appends the
// newly added suffix to the store file.
func (m *Manager) addProducts(state *types.State) {
	added := 0

	for !m.prompter.Failed() {
		raw := m.prompter.RawLine("\nProduct name: ")
		name := strings.TrimLeftFunc(types.Capitalize(raw), unicode.IsSpace)

		if !prompt.IsValidName(name) {
			m.prompter.Warn("Error! Invalid name, try again.")
			continue
		}
		if state.HasName(name) {
			m.prompter.Warn("Error! A product with this name already exists.")
			continue
		}

		price, ok := m.promptPrice("Product price: " + m.renderer.CurrencyMarker)
		if !ok {
			break
		}

		unit := m.prompter.UntilValid(
			"The new product will be sold in UN (unit) or GR (grams): ",
			[]string{string(types.Unit), string(types.Gram)},
			"Error! Invalid option, try again.",
		)
		if unit == "" {
			break
		}

		code := m.randomCode(state)
		state.Products = append(state.Products, &types.Product{
			Code:   code,
			Name:   name,
			Price:  price,
			SoldIn: types.SaleUnit(unit),
		})
		added++

		m.log.WithFields(logrus.Fields{"code": code, "name": name}).Info("product added")
		m.prompter.Printf("\nThe product %s was added to stock, its code is %s\n\n", name, code)

		answer := m.prompter.UntilValid("Keep adding products? yes(Y)/no(N): ", []string{"Y", "N"}, yesNoError)
		time.Sleep(m.Pacing)
		if answer != "Y" {
			break
		}
	}

	if added > 0 {
		m.persist(state.Products[len(state.Products)-added:], store.Append)
	}
}

// promptPrice loops until the operator supplies a valid monetary string.
// Commas are accepted as decimal separators. Returns false only when the
// input stream ends.
func (m *Manager) promptPrice(msg string) (decimal.Decimal, bool) {
	for {
		entry := m.prompter.Line(msg)
		if m.prompter.Failed() {
			return decimal.Zero, false
		}

		entry = strings.ReplaceAll(entry, ",", ".")
		if prompt.IsValidPrice(entry) {
			price, err := decimal.NewFromString(entry)
			if err == nil {
				return price, true
			}
		}
		m.prompter.Warn(badPriceError)
	}
}

// randomCode draws 6-digit codes until one does not collide with the
// inventory.
func (m *Manager) randomCode(state *types.State) string {
	for {
		var b strings.Builder
		for i := 0; i < types.CodeLength; i++ {
			b.WriteByte(byte('0' + m.rng.Intn(10)))
		}
		if state.FindByCode(b.String()) == -1 {
			return b.String()
		}
	}
}

// =============================================================================
// EDIT
// =============================================================================

// editProducts edits products until the operator stops, then rewrites the
// store file.
func (m *Manager) editProducts(state *types.State) {
	for !m.prompter.Failed() {
		idx := m.locate(state, "\nEnter the name or code of the product you want to edit: ")
		if idx < 0 {
			break
		}
		p := state.Products[idx]

	editing:
		for {
			m.prompter.Printf("\nProduct %s data available for editing\n", p.Name)
			m.renderer.Menu("Product Price", "Sale Method", "Finish editing this product")

			switch m.prompter.UntilValid("Desired option: ", []string{"1", "2", "3"}, badMenuError) {
			case "1":
				price, ok := m.promptPrice("Enter the new price for product " + p.Name + ": " + m.renderer.CurrencyMarker)
				if !ok {
					break editing
				}
				p.Price = price
				m.log.WithFields(logrus.Fields{"code": p.Code, "price": price.String()}).Info("product price changed")
				m.prompter.Printf("\nThe price of product %s has been changed\n", p.Name)
				time.Sleep(m.Pacing)

			case "2":
				// Binary toggle: a kilogram relabel also goes back to grams.
				was := p.SoldIn
				if p.SoldIn == types.Gram {
					p.SoldIn = types.Unit
				} else {
					p.SoldIn = types.Gram
				}
				m.log.WithFields(logrus.Fields{"code": p.Code, "sold_in": p.SoldIn}).Info("product sale method changed")
				m.prompter.Printf("\nThe product %s, which was sold in %s, will now be sold in %s\n",
					p.Name, was.Label(), p.SoldIn.Label())
				time.Sleep(m.Pacing)

			default:
				time.Sleep(m.Pacing)
				break editing
			}
		}

		answer := m.prompter.UntilValid("Keep editing products? yes(Y)/no(N): ", []string{"Y", "N"}, yesNoError)
		time.Sleep(m.Pacing)
		if answer != "Y" {
			break
		}
	}

	m.persist(state.Products, store.Overwrite)
}

// =============================================================================
// DELETE
// =============================================================================

// deleteProducts removes products until the operator stops or the
// inventory empties, then rewrites the store file.
func (m *Manager) deleteProducts(state *types.State) {
	for !m.prompter.Failed() {
		idx := m.locate(state, "\nEnter the code or name of the product you want to delete: ")
		if idx < 0 {
			break
		}

		p := state.Products[idx]
		m.prompter.Printf("\nThe product %s was removed from stock\n\n", p.Name)
		state.Remove(idx)
		m.log.WithFields(logrus.Fields{"code": p.Code, "name": p.Name}).Info("product deleted")

		if len(state.Products) == 0 {
			m.prompter.Printf("No products left to delete. Leaving")
			for i := 0; i < 4; i++ {
				m.prompter.Printf(".")
				time.Sleep(m.Pacing / 4)
			}
			m.prompter.Printf("\n")
			break
		}

		answer := m.prompter.UntilValid("Keep deleting products? yes(Y)/no(N): ", []string{"Y", "N"}, yesNoError)
		time.Sleep(m.Pacing)
		if answer != "Y" {
			break
		}
	}

	m.persist(state.Products, store.Overwrite)
}

// =============================================================================
// HELPERS
// =============================================================================

// locate re-prompts until the operator names an existing product by exact
// code or capitalized name. Returns -1 only when the input stream ends.
func (m *Manager) locate(state *types.State, msg string) int {
	for {
		query := m.prompter.Line(msg)
		if m.prompter.Failed() {
			return -1
		}
		if idx := state.Find(query); idx >= 0 {
			return idx
		}
		m.prompter.Warn("Error! Product not found.")
	}
}

// persist writes products through the store, reporting failures to the
// operator without aborting the session.
func (m *Manager) persist(products []*types.Product, mode store.WriteMode) {
	if err := m.store.Save(products, mode); err != nil {
		m.log.WithError(err).Error("failed to persist inventory")
		m.prompter.Warn("Error! Could not save the inventory file.")
	}
}
