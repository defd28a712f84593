// =============================================================================
// Mercado - Session Controller
// =============================================================================
//
// This module owns the top-level menu and the aggregate session totals.
// Revenue and the served-customer count live for the process lifetime and
// are mutated here only, after each completed checkout.
//
// =============================================================================

package session

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/mercado/internal/checkout"
	"github.com/ginjaninja78/mercado/internal/inventory"
	"github.com/ginjaninja78/mercado/internal/prompt"
	"github.com/ginjaninja78/mercado/internal/render"
	"github.com/ginjaninja78/mercado/internal/types"
)

// Controller dispatches the top-level menu and tracks session totals.
type Controller struct {
	prompter *prompt.Prompter
	renderer *render.Renderer
	register *checkout.Register
	manager  *inventory.Manager
	log      *logrus.Entry

	// Pacing is the pause inserted between served customers.
	Pacing time.Duration
}

// NewController creates a Controller.
func NewController(p *prompt.Prompter, r *render.Renderer, reg *checkout.Register, mgr *inventory.Manager, log *logrus.Entry) *Controller {
	return &Controller{prompter: p, renderer: r, register: reg, manager: mgr, log: log}
}

// Run drives the session until the operator exits. Normal termination
// only happens through the explicit Exit choice (or an exhausted input
// stream, which is treated the same way).
func (c *Controller) Run(state *types.State) {
	for !c.prompter.Failed() {
		c.renderer.Menu("Open Register", "Manage Inventory", "Exit")

		switch c.prompter.UntilValid("Desired option: ", []string{"1", "2", "3"}, "Error! This option does not exist.") {
		case "1":
			if len(state.Products) == 0 {
				c.prompter.Warn("There are no products to sell. Add products to stock before opening the register.")
				continue
			}
			c.openRegister(state)

		case "2":
			c.manager.Run(state)

		default:
			c.exit(state)
			return
		}
	}
	c.exit(state)
}

// openRegister serves customers until the operator stops.
func (c *Controller) openRegister(state *types.State) {
	c.renderer.Printf("\nRegister open!\n")

	for !c.prompter.Failed() {
		state.CustomersServed++
		total := c.register.ServeCustomer(state.Products, state.CustomersServed)
		state.Revenue = state.Revenue.Add(total)

		c.log.WithFields(logrus.Fields{
			"customer": state.CustomersServed,
			"total":    total.StringFixed(2),
			"revenue":  state.Revenue.StringFixed(2),
		}).Info("customer served")

		answer := c.prompter.UntilValid(
			"Keep serving customers? yes(Y)/no(N): ",
			[]string{"Y", "N"},
			"Error! Invalid answer, try again.",
		)
		time.Sleep(c.Pacing)
		if answer != "Y" {
			break
		}
	}

	c.renderer.Printf("\nRegister closed!\n\n")
}

// exit reports the session totals when at least one customer was served.
func (c *Controller) exit(state *types.State) {
	if state.CustomersServed > 0 {
		c.renderer.Printf("\nCustomer(s) served: %d\nEarnings: %s\n",
			state.CustomersServed, c.renderer.Currency(state.Revenue))
	}
	c.log.WithFields(logrus.Fields{
		"customers": state.CustomersServed,
		"revenue":   state.Revenue.StringFixed(2),
	}).Info("session ended")
}
