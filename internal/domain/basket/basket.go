// Package basket holds the products a customer intends to order and computes
// checkout-relevant aggregates over them.
package basket

import (
	"slices"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/larek-storefront/internal/domain/product"
)

// ErrUnavailable is returned when a product without a positive price is added
// to the basket.
var ErrUnavailable = errors.New("product is unavailable for purchase")

// Item is a basket line: a product reference plus a selection flag. Only
// selected items count toward totals and the submitted item list.
type Item struct {
	Product  product.Product
	Selected bool
}

// Price returns the line price, or zero when the product carries none.
func (i Item) Price() decimal.Decimal {
	return i.Product.PriceOrZero()
}

// Basket is an ordered collection of items, keyed by product ID. Items keep
// insertion order, which is also the display and submission order.
type Basket struct {
	items []Item
}

// New returns an empty basket.
func New() *Basket {
	return &Basket{}
}

// Add appends a new selected item for p. Adding a product whose ID is
// already present is a no-op; adding an unavailable product fails with
// ErrUnavailable and leaves the basket unchanged.
func (b *Basket) Add(p product.Product) error {
	if !p.Available() {
		return ErrUnavailable
	}
	if b.Contains(p.ID) {
		return nil
	}
	b.items = append(b.items, Item{Product: p, Selected: true})
	return nil
}

// Remove deletes the item with the given product ID. Removing an absent ID
// is a no-op.
func (b *Basket) Remove(productID string) {
	b.items = slices.DeleteFunc(b.items, func(i Item) bool {
		return i.Product.ID == productID
	})
}

// Clear empties the basket.
func (b *Basket) Clear() {
	b.items = nil
}

// Contains reports whether an item with the given product ID is present,
// selected or not.
func (b *Basket) Contains(productID string) bool {
	return slices.ContainsFunc(b.items, func(i Item) bool {
		return i.Product.ID == productID
	})
}

// Items returns a copy of the basket lines in insertion order.
func (b *Basket) Items() []Item {
	return slices.Clone(b.items)
}

// Empty reports whether the basket holds no items at all.
func (b *Basket) Empty() bool {
	return len(b.items) == 0
}

// Count returns the number of selected items.
func (b *Basket) Count() int {
	n := 0
	for _, i := range b.items {
		if i.Selected {
			n++
		}
	}
	return n
}

// Total returns the sum of prices over selected items. Deselected items stay
// in the basket but do not contribute.
func (b *Basket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, i := range b.items {
		if i.Selected {
			total = total.Add(i.Price())
		}
	}
	return total
}

// SelectedIDs returns the product IDs of selected items in insertion order.
// This sequence becomes the order's item list.
func (b *Basket) SelectedIDs() []string {
	ids := make([]string, 0, len(b.items))
	for _, i := range b.items {
		if i.Selected {
			ids = append(ids, i.Product.ID)
		}
	}
	return ids
}

// SetSelected updates the selection flag of the item with the given product
// ID. It reports whether such an item exists.
func (b *Basket) SetSelected(productID string, selected bool) bool {
	for idx := range b.items {
		if b.items[idx].Product.ID == productID {
			b.items[idx].Selected = selected
			return true
		}
	}
	return false
}

// ToggleAll sets the selection flag on every item.
func (b *Basket) ToggleAll(selected bool) {
	for idx := range b.items {
		b.items[idx].Selected = selected
	}
}
