package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveOptionsEmptyList(t *testing.T) {
	opts := DeriveOptions(nil, nil)

	assert.Empty(t, opts.Categories)
	assert.Empty(t, opts.Colors)
	assert.Empty(t, opts.Brands)
	assert.Equal(t, 0.0, opts.MinPrice)
	assert.Equal(t, float64(DefaultPriceCeiling), opts.MaxPrice)
}

func TestDeriveOptionsDistinctSortedSets(t *testing.T) {
	products := []*Product{
		product(func(p *Product) { p.Category = "shirts"; p.Color = "white"; p.Brand = "acme" }),
		product(func(p *Product) { p.Category = "pants"; p.Color = "black" }),
		product(func(p *Product) { p.Category = "shirts"; p.Color = "black"; p.Brand = "zeta" }),
	}

	opts := DeriveOptions(products, nil)

	assert.Equal(t, []string{"pants", "shirts"}, opts.Categories)
	assert.Equal(t, []string{"black", "white"}, opts.Colors)
	assert.Equal(t, []string{"acme", "zeta"}, opts.Brands)
}

func TestDeriveOptionsPriceBounds(t *testing.T) {
	products := []*Product{
		product(func(p *Product) { p.Price = 1200 }),
		product(func(p *Product) { p.Price = 300 }),
		product(func(p *Product) { p.Price = 700 }),
	}

	opts := DeriveOptions(products, nil)

	assert.Equal(t, 300.0, opts.MinPrice)
	assert.Equal(t, 1200.0, opts.MaxPrice)
}

func TestSizeBuckets(t *testing.T) {
	products := []*Product{
		product(func(p *Product) { p.Sizes = []string{"M", "S", "XS"} }),
		product(func(p *Product) { p.Category = "pants"; p.Sizes = []string{"32", "28", "30"} }),
		product(func(p *Product) { p.Category = "shoes"; p.Sizes = []string{"42", "38"} }),
		product(func(p *Product) { p.Category = "accessories"; p.Sizes = []string{"one size"} }),
	}

	opts := DeriveOptions(products, nil)

	assert.Equal(t, []string{"M", "S", "XS"}, opts.Sizes.Clothing)
	assert.Equal(t, []string{"28", "30", "32", "38", "42"}, opts.Sizes.Pants)
	assert.Equal(t, []string{"38", "42"}, opts.Sizes.Shoes)
	assert.Equal(t, []string{"one size"}, opts.Sizes.Other)
}

func TestSizeBucketsNumericOrdering(t *testing.T) {
	products := []*Product{
		product(func(p *Product) { p.Category = "shoes"; p.Sizes = []string{"44", "36", "40"} }),
	}

	opts := DeriveOptions(products, nil)

	assert.Equal(t, []string{"36", "40", "44"}, opts.Sizes.Shoes, "numeric, not lexicographic")
}

func TestSizeOptionsRestrictedByCategory(t *testing.T) {
	products := []*Product{
		product(func(p *Product) { p.Category = "shirts"; p.Sizes = []string{"S", "M"} }),
		product(func(p *Product) { p.Category = "shoes"; p.Sizes = []string{"41", "42"} }),
	}

	opts := DeriveOptions(products, []string{"shirts"})

	assert.Equal(t, []string{"M", "S"}, opts.Sizes.Clothing)
	assert.Empty(t, opts.Sizes.Shoes, "sizes from other categories must be hidden")

	// Category selection narrows sizes only, not the other option sets.
	assert.Equal(t, []string{"shirts", "shoes"}, opts.Categories)
}
