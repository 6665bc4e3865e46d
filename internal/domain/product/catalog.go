package product

import "strings"

// Catalog is the full product list returned by the remote API. Total is the
// item count reported by the server, which may exceed len(Items) when the
// server pages its responses.
type Catalog struct {
	Total int
	Items []Product
}

// ByID returns the catalog product with the given ID, or false when absent.
func (c Catalog) ByID(id string) (Product, bool) {
	for _, p := range c.Items {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Available returns the purchasable subset of the catalog.
func (c Catalog) Available() []Product {
	out := make([]Product, 0, len(c.Items))
	for _, p := range c.Items {
		if p.Available() {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory returns the products belonging to the given category.
func (c Catalog) ByCategory(cat Category) []Product {
	var out []Product
	for _, p := range c.Items {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

// Search returns the products whose title or description contains the query,
// case-insensitively.
func (c Catalog) Search(query string) []Product {
	q := strings.ToLower(query)
	var out []Product
	for _, p := range c.Items {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}
