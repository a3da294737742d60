package catalog

import "strings"

// FilterSpec is a composable set of constraints narrowing a product list.
// Dimensions combine with AND; values within one dimension combine with OR.
// An empty slice means "no constraint on that dimension", a nil tri-state
// pointer means "any".
type FilterSpec struct {
	PriceRange [2]float64 `json:"price_range"`
	Sizes      []string   `json:"sizes"`
	Colors     []string   `json:"colors"`
	Brands     []string   `json:"brands"`
	Categories []string   `json:"categories"`
	IsNew      *bool      `json:"is_new,omitempty"`
	IsOnSale   *bool      `json:"is_on_sale,omitempty"`
	InStock    bool       `json:"in_stock"`
}

// DefaultPriceCeiling is used as the upper price bound when no products are
// available to derive a real maximum from.
const DefaultPriceCeiling = 1000

// DefaultFilterSpec returns a spec that constrains nothing except requiring
// products to be in stock, mirroring the storefront's default view.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		PriceRange: [2]float64{0, DefaultPriceCeiling},
		InStock:    true,
	}
}

// Matches reports whether a single product satisfies every active dimension
// of the filter.
func (f FilterSpec) Matches(p *Product) bool {
	price := p.EffectivePrice()
	if price < f.PriceRange[0] || price > f.PriceRange[1] {
		return false
	}
	if len(f.Categories) > 0 && !contains(f.Categories, p.Category) {
		return false
	}
	// A product with no color/brand never matches a non-empty set.
	if len(f.Colors) > 0 && (p.Color == "" || !contains(f.Colors, p.Color)) {
		return false
	}
	if len(f.Brands) > 0 && (p.Brand == "" || !contains(f.Brands, p.Brand)) {
		return false
	}
	if len(f.Sizes) > 0 && !offersAny(p, f.Sizes) {
		return false
	}
	if f.IsNew != nil && p.IsNew != *f.IsNew {
		return false
	}
	if f.IsOnSale != nil && p.IsOnSale != *f.IsOnSale {
		return false
	}
	// InStock only constrains when true; false means "any availability".
	if f.InStock && !p.InStock {
		return false
	}
	return true
}

// Apply narrows products to the subset matching the filter, preserving input
// order. An empty input yields an empty result, never an error.
func Apply(products []*Product, spec FilterSpec) []*Product {
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if spec.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Search keeps products whose name or description contains the term,
// case-insensitively. An empty term keeps everything.
func Search(products []*Product, term string) []*Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products
	}
	out := make([]*Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func offersAny(p *Product, sizes []string) bool {
	for _, s := range sizes {
		if p.OffersSize(s) {
			return true
		}
	}
	return false
}
