// Package cli implements the console front end: a line-oriented session that
// renders model notifications and translates commands into model calls. It
// is a view collaborator; all state lives in the model.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xenking/larek-storefront/internal/domain/order"
	"github.com/xenking/larek-storefront/internal/event"
	"github.com/xenking/larek-storefront/internal/model"
)

// Console drives one interactive storefront session.
type Console struct {
	model *model.Model
	in    *bufio.Scanner
	out   io.Writer
}

// New creates a console bound to the model and subscribes its renderers to
// the bus.
func New(m *model.Model, bus *event.Bus, in io.Reader, out io.Writer) *Console {
	c := &Console{
		model: m,
		in:    bufio.NewScanner(in),
		out:   out,
	}
	c.subscribe(bus)
	return c
}

func (c *Console) subscribe(bus *event.Bus) {
	bus.Subscribe(event.KindProductsChanged, func(ev event.Event) {
		e := ev.(event.ProductsChanged)
		fmt.Fprintf(c.out, "catalog: %d products\n", len(e.Products))
	})
	bus.Subscribe(event.KindProductSelected, func(ev event.Event) {
		e := ev.(event.ProductSelected)
		p := e.Product
		fmt.Fprintf(c.out, "%s - %s [%s]\n  %s\n", p.Title, p.FormattedPrice(), p.Category, p.Description)
	})
	bus.Subscribe(event.KindBasketChanged, func(ev event.Event) {
		e := ev.(event.BasketChanged)
		fmt.Fprintf(c.out, "basket: %d selected, total %s synapses\n", e.Count, e.Total)
	})
	bus.Subscribe(event.KindOrderError, func(ev event.Event) {
		e := ev.(event.OrderError)
		for _, msg := range e.Errors {
			fmt.Fprintf(c.out, "  ! %s\n", msg)
		}
	})
	bus.Subscribe(event.KindOrderCreated, func(ev event.Event) {
		e := ev.(event.OrderCreated)
		fmt.Fprintf(c.out, "order %s created, charged %s synapses\n", e.Result.ID, e.Result.Total)
	})
	bus.Subscribe(event.KindError, func(ev event.Event) {
		e := ev.(event.Error)
		fmt.Fprintf(c.out, "error: %s\n", e.Message)
	})
}

// Run loads the catalog and processes commands until quit, EOF, or context
// cancellation.
func (c *Console) Run(ctx context.Context) error {
	// A failed initial load is already rendered via the error event; the
	// user can retry with the reload command.
	_ = c.model.LoadProducts(ctx)

	fmt.Fprintln(c.out, `type "help" for commands`)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		if c.Handle(ctx, c.in.Text()) {
			return nil
		}
	}
}

// Handle executes one command line and reports whether the session should
// end.
func (c *Console) Handle(ctx context.Context, line string) (quit bool) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "help":
		c.printHelp()
	case "list":
		c.printCatalog()
	case "reload":
		_ = c.model.LoadProducts(ctx)
	case "show":
		if len(rest) != 1 {
			fmt.Fprintln(c.out, "usage: show <product-id>")
			break
		}
		_ = c.model.LoadProduct(ctx, rest[0])
	case "add":
		if len(rest) != 1 {
			fmt.Fprintln(c.out, "usage: add <product-id>")
			break
		}
		p, ok := c.model.Product(rest[0])
		if !ok {
			fmt.Fprintf(c.out, "no such product: %s\n", rest[0])
			break
		}
		c.model.AddToBasket(p)
	case "remove":
		if len(rest) != 1 {
			fmt.Fprintln(c.out, "usage: remove <product-id>")
			break
		}
		c.model.RemoveFromBasket(rest[0])
	case "select", "deselect":
		if len(rest) != 1 {
			fmt.Fprintf(c.out, "usage: %s <product-id>\n", cmd)
			break
		}
		if !c.model.SetItemSelected(rest[0], cmd == "select") {
			fmt.Fprintf(c.out, "not in basket: %s\n", rest[0])
		}
	case "basket":
		c.printBasket()
	case "clear":
		c.model.ClearBasket()
	case "set":
		if len(rest) < 2 {
			fmt.Fprintln(c.out, "usage: set <email|phone|address|payment> <value>")
			break
		}
		field := order.Field(rest[0])
		value := strings.Join(rest[1:], " ")
		if err := c.model.SetOrderField(field, value); err != nil {
			fmt.Fprintf(c.out, "error: %s\n", err)
		}
	case "status":
		c.printStatus()
	case "checkout":
		_, _ = c.model.SubmitOrder(ctx)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(c.out, "unknown command: %s\n", cmd)
	}
	return false
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `commands:
  list                      show the catalog
  reload                    refetch the catalog
  show <id>                 fetch and preview one product
  add <id>                  add a product to the basket
  remove <id>               remove a product from the basket
  select | deselect <id>    include/exclude a basket item from the order
  basket                    show the basket
  clear                     empty the basket
  set <field> <value>       set email, phone, address, or payment
  status                    show checkout progress and unmet conditions
  checkout                  submit the order
  quit                      leave
`)
}

func (c *Console) printCatalog() {
	items := c.model.Catalog().Items
	if len(items) == 0 {
		fmt.Fprintln(c.out, "catalog is empty")
		return
	}
	for _, p := range items {
		marker := " "
		if c.model.InBasket(p.ID) {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s %-12s %-30s %s\n", marker, p.ID, p.Title, p.FormattedPrice())
	}
}

func (c *Console) printBasket() {
	items := c.model.BasketItems()
	if len(items) == 0 {
		fmt.Fprintln(c.out, "basket is empty")
		return
	}
	for i, item := range items {
		marker := "x"
		if !item.Selected {
			marker = " "
		}
		fmt.Fprintf(c.out, "%d. [%s] %s - %s\n", i+1, marker, item.Product.Title, item.Product.FormattedPrice())
	}
	fmt.Fprintf(c.out, "total: %s synapses\n", c.model.BasketTotal())
}

func (c *Console) printStatus() {
	fmt.Fprintf(c.out, "stage: %s\n", c.model.OrderStage())
	errs := c.model.OrderErrors()
	if len(errs) == 0 {
		fmt.Fprintln(c.out, "ready to checkout")
		return
	}
	for _, msg := range errs {
		fmt.Fprintf(c.out, "  ! %s\n", msg)
	}
}
