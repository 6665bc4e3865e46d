package model

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/larek-storefront/internal/domain/order"
	"github.com/xenking/larek-storefront/internal/domain/product"
	"github.com/xenking/larek-storefront/internal/event"
)

// --- Mock implementations ---

type mockClient struct {
	catalog    product.Catalog
	listErr    error
	byID       map[string]product.Product
	getErr     error
	result     order.Result
	createErr  error
	lastOrder  *order.Order
	createdCnt int
}

func (m *mockClient) ListProducts(_ context.Context) (product.Catalog, error) {
	if m.listErr != nil {
		return product.Catalog{}, m.listErr
	}
	return m.catalog, nil
}

func (m *mockClient) GetProduct(_ context.Context, id string) (product.Product, error) {
	if m.getErr != nil {
		return product.Product{}, m.getErr
	}
	p, ok := m.byID[id]
	if !ok {
		return product.Product{}, errors.New("product not found")
	}
	return p, nil
}

func (m *mockClient) CreateOrder(_ context.Context, o order.Order) (order.Result, error) {
	if m.createErr != nil {
		return order.Result{}, m.createErr
	}
	m.lastOrder = &o
	m.createdCnt++
	return m.result, nil
}

// recorder captures every event emitted on the bus, in order.
type recorder struct {
	events []event.Event
}

func (r *recorder) kinds() []event.Kind {
	out := make([]event.Kind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind()
	}
	return out
}

func (r *recorder) last() event.Event {
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

// --- Helpers ---

func newTestModel(api Client) (*Model, *recorder) {
	bus := event.NewBus()
	rec := &recorder{}
	bus.SubscribeAll(func(ev event.Event) { rec.events = append(rec.events, ev) })
	return New(bus, api), rec
}

func priced(id, title, price string) product.Product {
	d := decimal.RequireFromString(price)
	return product.Product{ID: id, Title: title, Price: &d}
}

func fillValidOrder(t *testing.T, m *Model) {
	t.Helper()
	require.NoError(t, m.SetOrderField(order.FieldEmail, "a@b.co"))
	require.NoError(t, m.SetOrderField(order.FieldPhone, "+15551234567"))
	require.NoError(t, m.SetOrderField(order.FieldAddress, "1 Main St"))
	require.NoError(t, m.SetOrderField(order.FieldPayment, "online"))
}

// --- Tests ---

func TestSetProducts(t *testing.T) {
	m, rec := newTestModel(&mockClient{})

	m.SetProducts(product.Catalog{Total: 1, Items: []product.Product{priced("p1", "Widget", "100")}})

	assert.Equal(t, []event.Kind{event.KindProductsChanged}, rec.kinds())
	assert.Equal(t, 1, m.Catalog().Total)
}

func TestSelectProduct_ResolvesCanonical(t *testing.T) {
	m, rec := newTestModel(&mockClient{})
	canonical := priced("p1", "Widget (canonical)", "100")
	m.SetProducts(product.Catalog{Total: 1, Items: []product.Product{canonical}})

	// A stale copy with the same ID resolves to the catalog instance.
	m.SelectProduct(priced("p1", "Widget (stale)", "1"))

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Widget (canonical)", sel.Title)

	ev, ok := rec.last().(event.ProductSelected)
	require.True(t, ok)
	assert.Equal(t, "Widget (canonical)", ev.Product.Title)

	// A product absent from the catalog is used as given.
	m.SelectProduct(priced("p9", "Foreign", "5"))
	sel, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Foreign", sel.Title)
}

func TestAddToBasket_Unavailable(t *testing.T) {
	m, rec := newTestModel(&mockClient{})

	m.AddToBasket(product.Product{ID: "p1", Title: "Priceless"})

	require.Equal(t, []event.Kind{event.KindError}, rec.kinds())
	ev := rec.last().(event.Error)
	assert.Equal(t, "product is unavailable for purchase", ev.Message)
	assert.Equal(t, 0, m.BasketCount())
}

func TestAddToBasket(t *testing.T) {
	m, rec := newTestModel(&mockClient{})

	m.AddToBasket(priced("p1", "Widget", "100"))

	require.Equal(t, []event.Kind{event.KindBasketChanged}, rec.kinds())
	ev := rec.last().(event.BasketChanged)
	assert.Equal(t, 1, ev.Count)
	assert.True(t, decimal.RequireFromString("100").Equal(ev.Total))
	assert.True(t, m.InBasket("p1"))
}

func TestRemoveFromBasket(t *testing.T) {
	m, rec := newTestModel(&mockClient{})
	m.AddToBasket(priced("p1", "Widget", "100"))

	m.RemoveFromBasket("p1")
	m.RemoveFromBasket("missing") // idempotent

	assert.Equal(t, []event.Kind{
		event.KindBasketChanged,
		event.KindBasketChanged,
		event.KindBasketChanged,
	}, rec.kinds())
	assert.Equal(t, 0, m.BasketCount())
}

func TestSetOrderField(t *testing.T) {
	m, rec := newTestModel(&mockClient{})
	m.AddToBasket(priced("p1", "Widget", "100"))

	require.NoError(t, m.SetOrderField(order.FieldEmail, "a@b.co"))

	// order:change followed by order:error for the still-unset fields.
	kinds := rec.kinds()
	require.Len(t, kinds, 3)
	assert.Equal(t, event.KindOrderChange, kinds[1])
	assert.Equal(t, event.KindOrderError, kinds[2])

	ev := rec.last().(event.OrderError)
	assert.Equal(t, []string{
		"phone is required",
		"delivery address is required",
		"payment method is required",
	}, ev.Errors)
}

func TestSetOrderField_UnknownField(t *testing.T) {
	m, rec := newTestModel(&mockClient{})

	err := m.SetOrderField(order.Field("nickname"), "bob")
	require.ErrorIs(t, err, order.ErrUnknownField)
	assert.Empty(t, rec.events)
}

func TestSetOrderField_NoErrorEventWhenComplete(t *testing.T) {
	m, rec := newTestModel(&mockClient{})
	m.AddToBasket(priced("p1", "Widget", "100"))
	require.NoError(t, m.SetOrderField(order.FieldEmail, "a@b.co"))
	require.NoError(t, m.SetOrderField(order.FieldPhone, "+15551234567"))
	require.NoError(t, m.SetOrderField(order.FieldAddress, "1 Main St"))

	// The final field completes the draft: change without a trailing error.
	rec.events = nil
	require.NoError(t, m.SetOrderField(order.FieldPayment, "online"))

	assert.Equal(t, []event.Kind{event.KindOrderChange}, rec.kinds())
	assert.True(t, m.ValidateOrder())
	assert.Equal(t, order.StageContactComplete, m.OrderStage())
}

func TestContactErrors_Scoped(t *testing.T) {
	m, _ := newTestModel(&mockClient{})
	m.AddToBasket(priced("p1", "Widget", "100"))
	require.NoError(t, m.SetOrderField(order.FieldEmail, "not-an-email"))
	require.NoError(t, m.SetOrderField(order.FieldPhone, "+15551234567"))

	assert.Equal(t, []string{"invalid email format"}, m.ContactErrors())
	assert.Equal(t,
		[]string{"delivery address is required", "payment method is required"},
		m.DeliveryErrors())
}

func TestOrderData_HappyPath(t *testing.T) {
	m, _ := newTestModel(&mockClient{})
	m.AddToBasket(priced("p1", "Widget", "100"))
	fillValidOrder(t, m)

	o, err := m.OrderData()
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", o.Email)
	assert.Equal(t, "+15551234567", o.Phone)
	assert.Equal(t, "1 Main St", o.Address)
	assert.Equal(t, order.PaymentOnline, o.Payment)
	assert.Equal(t, []string{"p1"}, o.Items)
	assert.True(t, decimal.RequireFromString("100").Equal(o.Total))
}

func TestOrderData_EmptyBasketBlocksSubmission(t *testing.T) {
	m, _ := newTestModel(&mockClient{})
	fillValidOrder(t, m)

	assert.False(t, m.ValidateOrder())
	assert.Equal(t, []string{"basket is empty"}, m.OrderErrors())

	_, err := m.OrderData()
	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"basket is empty"}, verr.Conditions)
}

func TestOnOrderSuccess_RoundTrip(t *testing.T) {
	m, rec := newTestModel(&mockClient{})
	m.AddToBasket(priced("p1", "Widget", "100"))
	fillValidOrder(t, m)

	m.OnOrderSuccess(order.Result{ID: "ord-1", Total: decimal.RequireFromString("100")})

	ev, ok := rec.last().(event.OrderCreated)
	require.True(t, ok)
	assert.Equal(t, "ord-1", ev.Result.ID)

	assert.Equal(t, 0, m.BasketCount())
	assert.True(t, decimal.Zero.Equal(m.BasketTotal()))
	assert.Equal(t, order.StageEmpty, m.OrderStage())

	// Back to the initial state: every condition is unmet again.
	assert.Equal(t, []string{
		"email is required",
		"phone is required",
		"delivery address is required",
		"payment method is required",
		"basket is empty",
	}, m.OrderErrors())
}

func TestLoadProducts(t *testing.T) {
	api := &mockClient{catalog: product.Catalog{Total: 2, Items: []product.Product{
		priced("p1", "Widget", "100"),
		priced("p2", "Gadget", "200"),
	}}}
	m, rec := newTestModel(api)

	require.NoError(t, m.LoadProducts(context.Background()))
	assert.Equal(t, []event.Kind{event.KindProductsChanged}, rec.kinds())
	assert.Len(t, m.Catalog().Items, 2)
}

func TestLoadProducts_TransportError(t *testing.T) {
	api := &mockClient{listErr: errors.New("connection refused")}
	m, rec := newTestModel(api)

	err := m.LoadProducts(context.Background())
	require.Error(t, err)
	require.Equal(t, []event.Kind{event.KindError}, rec.kinds())
	assert.Equal(t, "connection refused", rec.last().(event.Error).Message)
	assert.Empty(t, m.Catalog().Items)
}

func TestLoadProduct(t *testing.T) {
	api := &mockClient{byID: map[string]product.Product{"p1": priced("p1", "Widget", "100")}}
	m, _ := newTestModel(api)

	require.NoError(t, m.LoadProduct(context.Background(), "p1"))
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Widget", sel.Title)

	require.Error(t, m.LoadProduct(context.Background(), "missing"))
}

func TestSubmitOrder(t *testing.T) {
	api := &mockClient{result: order.Result{ID: "ord-42", Total: decimal.RequireFromString("100")}}
	m, rec := newTestModel(api)
	m.AddToBasket(priced("p1", "Widget", "100"))
	fillValidOrder(t, m)

	result, err := m.SubmitOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ord-42", result.ID)

	require.NotNil(t, api.lastOrder)
	assert.Equal(t, []string{"p1"}, api.lastOrder.Items)

	// Terminal transition: basket and draft cleared, order:created emitted.
	assert.Equal(t, order.StageEmpty, m.OrderStage())
	assert.Equal(t, 0, m.BasketCount())
	ev, ok := rec.last().(event.OrderCreated)
	require.True(t, ok)
	assert.Equal(t, "ord-42", ev.Result.ID)
}

func TestSubmitOrder_Invalid(t *testing.T) {
	api := &mockClient{}
	m, rec := newTestModel(api)

	_, err := m.SubmitOrder(context.Background())
	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)

	ev, ok := rec.last().(event.OrderError)
	require.True(t, ok)
	assert.Equal(t, verr.Conditions, ev.Errors)
	assert.Zero(t, api.createdCnt)
}

func TestSubmitOrder_TransportFailureRetainsDraft(t *testing.T) {
	api := &mockClient{createErr: errors.New("gateway timeout")}
	m, rec := newTestModel(api)
	m.AddToBasket(priced("p1", "Widget", "100"))
	fillValidOrder(t, m)

	_, err := m.SubmitOrder(context.Background())
	require.Error(t, err)
	assert.Equal(t, "gateway timeout", rec.last().(event.Error).Message)

	// Fields retained: the user may retry from where they were.
	assert.Equal(t, order.StageContactComplete, m.OrderStage())
	assert.Equal(t, 1, m.BasketCount())
	assert.True(t, m.ValidateOrder())

	// Retry succeeds once the transport recovers.
	api.createErr = nil
	api.result = order.Result{ID: "ord-1", Total: decimal.RequireFromString("100")}
	_, err = m.SubmitOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, order.StageEmpty, m.OrderStage())
}
