// Package model implements the application model: the single owner of the
// basket and the order draft, mediating between user actions and state
// mutation and republishing every change on the event bus.
package model

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/larek-storefront/internal/domain/basket"
	"github.com/xenking/larek-storefront/internal/domain/order"
	"github.com/xenking/larek-storefront/internal/domain/product"
	"github.com/xenking/larek-storefront/internal/event"
)

// Client is the remote commerce API surface the model depends on.
type Client interface {
	ListProducts(ctx context.Context) (product.Catalog, error)
	GetProduct(ctx context.Context, id string) (product.Product, error)
	CreateOrder(ctx context.Context, o order.Order) (order.Result, error)
}

// Model orchestrates the catalog, the basket, and the checkout draft. It is
// the sole mutator of both; observers consume its bus notifications. All
// methods are meant to be called from a single goroutine (the UI event
// loop).
type Model struct {
	catalog  product.Catalog
	selected *product.Product
	basket   *basket.Basket
	draft    *order.Draft
	bus      *event.Bus
	api      Client
}

// New creates a model with an empty basket and draft.
func New(bus *event.Bus, api Client) *Model {
	return &Model{
		basket: basket.New(),
		draft:  order.NewDraft(),
		bus:    bus,
		api:    api,
	}
}

// Catalog returns the current product catalog.
func (m *Model) Catalog() product.Catalog {
	return m.catalog
}

// Selected returns the product currently chosen for preview, if any.
func (m *Model) Selected() (product.Product, bool) {
	if m.selected == nil {
		return product.Product{}, false
	}
	return *m.selected, true
}

// SetProducts replaces the catalog and announces the change.
func (m *Model) SetProducts(c product.Catalog) {
	m.catalog = c
	m.bus.Emit(event.ProductsChanged{Products: c.Items})
}

// SelectProduct marks a product as chosen for preview. When the catalog
// holds a product with the same ID, that canonical instance wins so later
// lookups observe consistent data.
func (m *Model) SelectProduct(p product.Product) {
	if canonical, ok := m.catalog.ByID(p.ID); ok {
		p = canonical
	}
	m.selected = &p
	m.bus.Emit(event.ProductSelected{Product: p})
}

// Product looks up a catalog product by ID.
func (m *Model) Product(id string) (product.Product, bool) {
	return m.catalog.ByID(id)
}

// InBasket reports whether the product is already in the basket.
func (m *Model) InBasket(productID string) bool {
	return m.basket.Contains(productID)
}

// AddToBasket adds a product to the basket. An unavailable product produces
// an error notification and leaves the basket untouched.
func (m *Model) AddToBasket(p product.Product) {
	if err := m.basket.Add(p); err != nil {
		m.bus.Emit(event.Error{Message: err.Error()})
		return
	}
	m.emitBasketChanged()
}

// RemoveFromBasket removes the product with the given ID, if present.
func (m *Model) RemoveFromBasket(productID string) {
	m.basket.Remove(productID)
	m.emitBasketChanged()
}

// SetItemSelected toggles an item's selection flag, keeping the item in the
// basket while excluding it from totals and the submitted item list. It
// reports whether the item exists.
func (m *Model) SetItemSelected(productID string, selected bool) bool {
	if !m.basket.SetSelected(productID, selected) {
		return false
	}
	m.emitBasketChanged()
	return true
}

// ClearBasket empties the basket.
func (m *Model) ClearBasket() {
	m.basket.Clear()
	m.emitBasketChanged()
}

// BasketTotal returns the sum over selected basket items.
func (m *Model) BasketTotal() decimal.Decimal {
	return m.basket.Total()
}

// BasketCount returns the number of selected basket items.
func (m *Model) BasketCount() int {
	return m.basket.Count()
}

// BasketItems returns the basket lines in insertion order.
func (m *Model) BasketItems() []basket.Item {
	return m.basket.Items()
}

func (m *Model) emitBasketChanged() {
	m.bus.Emit(event.BasketChanged{
		Items: m.basket.Items(),
		Total: m.basket.Total(),
		Count: m.basket.Count(),
	})
}

// SetOrderField assigns one draft field, announces the change, and reports
// the currently unmet validation conditions, if any, as an order:error
// notification. Unknown fields or payment methods fail without touching the
// draft.
func (m *Model) SetOrderField(field order.Field, value string) error {
	if err := m.draft.Set(field, value); err != nil {
		return err
	}
	m.bus.Emit(event.OrderChange{Field: field, Value: value})

	if errs := m.draft.AllErrors(m.basket.Empty()); len(errs) > 0 {
		m.bus.Emit(event.OrderError{Errors: errs})
	}
	return nil
}

// ValidateOrder reports whether the draft is ready for submission.
func (m *Model) ValidateOrder() bool {
	return m.draft.Validate(m.basket.Empty())
}

// OrderErrors returns every unmet condition in fixed order.
func (m *Model) OrderErrors() []string {
	return m.draft.AllErrors(m.basket.Empty())
}

// DeliveryErrors returns the unmet conditions of the delivery step.
func (m *Model) DeliveryErrors() []string {
	return m.draft.DeliveryErrors(m.basket.Empty())
}

// ContactErrors returns the unmet conditions of the contact step.
func (m *Model) ContactErrors() []string {
	return m.draft.ContactErrors()
}

// OrderStage returns the derived checkout stage.
func (m *Model) OrderStage() order.Stage {
	return m.draft.Stage(m.basket.Empty())
}

// OrderData assembles the full submission payload from the draft and the
// basket-derived total and item IDs. It fails with *order.ValidationError
// when any condition is unmet.
func (m *Model) OrderData() (order.Order, error) {
	return m.draft.Build(m.basket.Total(), m.basket.SelectedIDs(), m.basket.Empty())
}

// ClearOrder resets every draft field.
func (m *Model) ClearOrder() {
	m.draft.Clear()
}

// OnOrderSuccess is the terminal transition of a checkout session: basket
// and draft are cleared and the result is announced, returning the model to
// its initial state.
func (m *Model) OnOrderSuccess(result order.Result) {
	m.ClearBasket()
	m.ClearOrder()
	m.bus.Emit(event.OrderCreated{Result: result})
}

// LoadProducts fetches the catalog from the remote API and installs it.
// Transport failures become an error notification and are returned to the
// caller; nothing is retried.
func (m *Model) LoadProducts(ctx context.Context) error {
	catalog, err := m.api.ListProducts(ctx)
	if err != nil {
		m.bus.Emit(event.Error{Message: err.Error()})
		return errors.Wrap(err, "load products")
	}
	m.SetProducts(catalog)
	return nil
}

// LoadProduct fetches one product and selects it for preview.
func (m *Model) LoadProduct(ctx context.Context, id string) error {
	p, err := m.api.GetProduct(ctx, id)
	if err != nil {
		m.bus.Emit(event.Error{Message: err.Error()})
		return errors.Wrap(err, "load product")
	}
	m.SelectProduct(p)
	return nil
}

// SubmitOrder builds the order payload and submits it to the remote API.
// Validation failures surface as an order:error notification; transport
// failures surface as an error notification and leave the draft intact so
// the user may retry. On success the model returns to its initial state.
func (m *Model) SubmitOrder(ctx context.Context) (order.Result, error) {
	o, err := m.OrderData()
	if err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			m.bus.Emit(event.OrderError{Errors: verr.Conditions})
		}
		return order.Result{}, err
	}

	result, err := m.api.CreateOrder(ctx, o)
	if err != nil {
		m.bus.Emit(event.Error{Message: err.Error()})
		return order.Result{}, errors.Wrap(err, "submit order")
	}

	m.OnOrderSuccess(result)
	return result, nil
}
