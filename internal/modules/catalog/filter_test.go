package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

func product(mod func(*Product)) *Product {
	p := &Product{
		ID:       uuid.New(),
		Name:     "basic tee",
		Price:    700,
		ImageURL: "https://img.example/tee.jpg",
		Category: "shirts",
		Sizes:    []string{"S", "M", "L"},
		InStock:  true,
	}
	if mod != nil {
		mod(p)
	}
	return p
}

// anySpec constrains nothing: full price range, empty sets, unset
// tri-states, no stock requirement.
func anySpec() FilterSpec {
	return FilterSpec{PriceRange: [2]float64{0, 1_000_000}}
}

func TestNoConstraintSpecReturnsInputUnchanged(t *testing.T) {
	products := []*Product{
		product(nil),
		product(func(p *Product) { p.Name = "hoodie"; p.Category = "hoodies"; p.InStock = false }),
		product(func(p *Product) { p.Name = "jeans"; p.Category = "pants"; p.Price = 2500 }),
	}

	got := Apply(products, anySpec())

	require.Len(t, got, len(products))
	for i := range products {
		assert.Same(t, products[i], got[i], "order must be preserved")
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	products := []*Product{
		product(nil),
		product(func(p *Product) { p.Category = "pants"; p.Price = 2500 }),
		product(func(p *Product) { p.IsNew = true }),
	}
	spec := anySpec()
	spec.Categories = []string{"shirts"}

	once := Apply(products, spec)
	twice := Apply(once, spec)

	assert.Equal(t, once, twice)
}

func TestPriceRangeInclusiveBounds(t *testing.T) {
	in := product(func(p *Product) { p.Price = 900 })
	out := product(func(p *Product) { p.Price = 901 })
	atMin := product(func(p *Product) { p.Price = 500 })
	below := product(func(p *Product) { p.Price = 499 })

	spec := anySpec()
	spec.PriceRange = [2]float64{500, 900}

	got := Apply([]*Product{in, out, atMin, below}, spec)

	assert.ElementsMatch(t, []*Product{in, atMin}, got)
}

func TestPriceRangeUsesEffectivePrice(t *testing.T) {
	sale := product(func(p *Product) {
		p.Price = 1200
		p.IsOnSale = true
		p.SalePrice = floatPtr(800)
	})

	spec := anySpec()
	spec.PriceRange = [2]float64{500, 900}

	got := Apply([]*Product{sale}, spec)

	assert.Len(t, got, 1, "sale price must be the one compared")
}

func TestCategoryAndPriceCompose(t *testing.T) {
	products := []*Product{
		product(func(p *Product) { p.Name = "cheap shirt"; p.Price = 600 }),
		product(func(p *Product) { p.Name = "pricey shirt"; p.Price = 950 }),
		product(func(p *Product) { p.Name = "cheap pants"; p.Category = "pants"; p.Price = 600 }),
	}

	spec := anySpec()
	spec.PriceRange = [2]float64{500, 900}
	spec.Categories = []string{"shirts"}

	got := Apply(products, spec)

	require.Len(t, got, 1)
	assert.Equal(t, "cheap shirt", got[0].Name)
}

func TestMissingBrandNeverMatchesBrandFilter(t *testing.T) {
	branded := product(func(p *Product) { p.Brand = "acme" })
	unbranded := product(nil)

	spec := anySpec()
	spec.Brands = []string{"acme"}

	got := Apply([]*Product{branded, unbranded}, spec)

	assert.Equal(t, []*Product{branded}, got)
}

func TestMissingColorNeverMatchesColorFilter(t *testing.T) {
	spec := anySpec()
	spec.Colors = []string{"black"}

	got := Apply([]*Product{product(nil)}, spec)

	assert.Empty(t, got)
}

func TestSizeDimensionMatchesOnAnyIntersection(t *testing.T) {
	smallOnly := product(func(p *Product) { p.Sizes = []string{"XS", "S"} })
	largeOnly := product(func(p *Product) { p.Sizes = []string{"XL", "XXL"} })

	spec := anySpec()
	spec.Sizes = []string{"S", "M"}

	got := Apply([]*Product{smallOnly, largeOnly}, spec)

	assert.Equal(t, []*Product{smallOnly}, got)
}

func TestTriStateFlags(t *testing.T) {
	fresh := product(func(p *Product) { p.IsNew = true })
	stale := product(nil)

	tests := []struct {
		name  string
		isNew *bool
		want  []*Product
	}{
		{"unset matches all", nil, []*Product{fresh, stale}},
		{"true requires flag", boolPtr(true), []*Product{fresh}},
		{"false requires absence", boolPtr(false), []*Product{stale}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := anySpec()
			spec.IsNew = tt.isNew
			assert.Equal(t, tt.want, Apply([]*Product{fresh, stale}, spec))
		})
	}
}

func TestInStockOnlyConstrainsWhenTrue(t *testing.T) {
	available := product(nil)
	gone := product(func(p *Product) { p.InStock = false })

	spec := anySpec()
	spec.InStock = true
	assert.Equal(t, []*Product{available}, Apply([]*Product{available, gone}, spec))

	// false means "any availability", not "exclude in-stock".
	spec.InStock = false
	assert.Len(t, Apply([]*Product{available, gone}, spec), 2)
}

func TestApplyEmptyInput(t *testing.T) {
	got := Apply(nil, anySpec())
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestSearchMatchesNameOrDescription(t *testing.T) {
	byName := product(func(p *Product) { p.Name = "Linen Shirt" })
	byDesc := product(func(p *Product) {
		p.Name = "summer top"
		p.Description = "light linen weave"
	})
	neither := product(func(p *Product) { p.Name = "denim jacket" })

	got := Search([]*Product{byName, byDesc, neither}, "LINEN")

	assert.ElementsMatch(t, []*Product{byName, byDesc}, got)
}

func TestSearchEmptyTermKeepsEverything(t *testing.T) {
	products := []*Product{product(nil), product(nil)}
	assert.Equal(t, products, Search(products, "  "))
}

func TestSearchComposesWithFilter(t *testing.T) {
	match := product(func(p *Product) { p.Name = "linen shirt"; p.Price = 800 })
	tooPricey := product(func(p *Product) { p.Name = "linen blazer"; p.Price = 5000 })

	spec := anySpec()
	spec.PriceRange = [2]float64{0, 1000}

	got := Apply(Search([]*Product{match, tooPricey}, "linen"), spec)

	assert.Equal(t, []*Product{match}, got)
}
