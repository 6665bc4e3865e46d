// Package event defines the notification channel connecting the application
// model to its observers: a closed set of event kinds, one payload type per
// kind, and a synchronous bus delivering them in registration order.
package event

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/larek-storefront/internal/domain/basket"
	"github.com/xenking/larek-storefront/internal/domain/order"
	"github.com/xenking/larek-storefront/internal/domain/product"
)

// Kind identifies one notification type on the bus. The names are the
// wire-facing event names the view layer subscribes to.
type Kind string

const (
	KindProductsChanged Kind = "products:changed"
	KindProductSelected Kind = "product:selected"
	KindBasketChanged   Kind = "basket:changed"
	KindOrderChange     Kind = "order:change"
	KindOrderError      Kind = "order:error"
	KindOrderCreated    Kind = "order:created"
	KindError           Kind = "error"
)

// Event is implemented by every notification payload. The set of
// implementations is closed: one struct per Kind.
type Event interface {
	Kind() Kind
}

// ProductsChanged announces a catalog replacement.
type ProductsChanged struct {
	Products []product.Product
}

func (ProductsChanged) Kind() Kind { return KindProductsChanged }

// ProductSelected announces that a product was chosen for preview.
type ProductSelected struct {
	Product product.Product
}

func (ProductSelected) Kind() Kind { return KindProductSelected }

// BasketChanged announces any basket mutation, carrying the derived
// aggregates observers render from.
type BasketChanged struct {
	Items []basket.Item
	Total decimal.Decimal
	Count int
}

func (BasketChanged) Kind() Kind { return KindBasketChanged }

// OrderChange announces a single draft field assignment.
type OrderChange struct {
	Field order.Field
	Value string
}

func (OrderChange) Kind() Kind { return KindOrderChange }

// OrderError announces the current unmet validation conditions after a draft
// edit. Non-fatal: the user keeps editing.
type OrderError struct {
	Errors []string
}

func (OrderError) Kind() Kind { return KindOrderError }

// OrderCreated announces a successful order submission.
type OrderCreated struct {
	Result order.Result
}

func (OrderCreated) Kind() Kind { return KindOrderCreated }

// Error announces a non-fatal failure of a user action, such as an
// unavailable product or a transport error.
type Error struct {
	Message string
}

func (Error) Kind() Kind { return KindError }
