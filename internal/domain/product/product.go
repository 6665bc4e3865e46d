package product

import (
	"github.com/shopspring/decimal"
)

// Category classifies a catalog item.
type Category string

// Known catalog categories. The remote API may introduce new ones; unknown
// values are carried through untouched.
const (
	CategorySoftSkill  Category = "soft-skill"
	CategoryHardSkill  Category = "hard-skill"
	CategoryOther      Category = "other"
	CategoryAdditional Category = "additional"
	CategoryButton     Category = "button"
)

// Product represents a catalog item available in the storefront. A nil Price
// means the product is not for sale.
//
// Products are constructed once at the API boundary and treated as immutable
// values afterwards.
type Product struct {
	ID          string
	Title       string
	Description string
	Image       string
	Category    Category
	Price       *decimal.Decimal
}

// Available reports whether the product can be purchased. Only products with
// a strictly positive price are purchasable.
func (p Product) Available() bool {
	return p.Price != nil && p.Price.IsPositive()
}

// PriceOrZero returns the product price, or zero when it carries none.
func (p Product) PriceOrZero() decimal.Decimal {
	if p.Price == nil {
		return decimal.Zero
	}
	return *p.Price
}

// FormattedPrice renders the price for display.
func (p Product) FormattedPrice() string {
	if p.Price == nil {
		return "Priceless"
	}
	return p.Price.String() + " synapses"
}
