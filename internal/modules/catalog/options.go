package catalog

import (
	"sort"
	"strconv"
)

// SizeGroups buckets available sizes for display: letter clothing sizes,
// numeric pants sizes (26-50), numeric shoe sizes (35-50) and everything
// else. Numeric groups sort ascending by value, the rest lexicographically.
type SizeGroups struct {
	Clothing []string `json:"clothing"`
	Pants    []string `json:"pants"`
	Shoes    []string `json:"shoes"`
	Other    []string `json:"other"`
}

// FilterOptions describes the filter choices that can return results for
// the current product list.
type FilterOptions struct {
	Categories []string   `json:"categories"`
	Colors     []string   `json:"colors"`
	Brands     []string   `json:"brands"`
	Sizes      SizeGroups `json:"sizes"`
	MinPrice   float64    `json:"min_price"`
	MaxPrice   float64    `json:"max_price"`
}

var letterSizes = map[string]bool{
	"XS": true, "S": true, "M": true, "L": true, "XL": true, "XXL": true,
}

// DeriveOptions computes the distinct categories, colors, brands, bucketed
// sizes and price bounds present in products. When categories is non-empty,
// size options are restricted to products in those categories. An empty
// product list yields empty option sets and the (0, DefaultPriceCeiling)
// price fallback.
func DeriveOptions(products []*Product, categories []string) FilterOptions {
	opts := FilterOptions{
		Categories: []string{},
		Colors:     []string{},
		Brands:     []string{},
		MinPrice:   0,
		MaxPrice:   DefaultPriceCeiling,
	}
	if len(products) == 0 {
		return opts
	}

	catSet := map[string]bool{}
	colorSet := map[string]bool{}
	brandSet := map[string]bool{}
	opts.MinPrice = products[0].Price
	opts.MaxPrice = products[0].Price
	for _, p := range products {
		if p.Category != "" {
			catSet[p.Category] = true
		}
		if p.Color != "" {
			colorSet[p.Color] = true
		}
		if p.Brand != "" {
			brandSet[p.Brand] = true
		}
		if p.Price < opts.MinPrice {
			opts.MinPrice = p.Price
		}
		if p.Price > opts.MaxPrice {
			opts.MaxPrice = p.Price
		}
	}
	opts.Categories = sortedKeys(catSet)
	opts.Colors = sortedKeys(colorSet)
	opts.Brands = sortedKeys(brandSet)

	relevant := products
	if len(categories) > 0 {
		relevant = make([]*Product, 0, len(products))
		for _, p := range products {
			if contains(categories, p.Category) {
				relevant = append(relevant, p)
			}
		}
	}
	opts.Sizes = groupSizes(relevant)
	return opts
}

func groupSizes(products []*Product) SizeGroups {
	seen := map[string]bool{}
	g := SizeGroups{
		Clothing: []string{},
		Pants:    []string{},
		Shoes:    []string{},
		Other:    []string{},
	}
	for _, p := range products {
		for _, size := range p.Sizes {
			if seen[size] {
				continue
			}
			seen[size] = true
			switch {
			case letterSizes[size]:
				g.Clothing = append(g.Clothing, size)
			case numericInRange(size, 26, 50):
				g.Pants = append(g.Pants, size)
				// 35-50 overlaps the pants range; a size claimed by the
				// pants bucket still shows under shoes when it fits.
				if numericInRange(size, 35, 50) {
					g.Shoes = append(g.Shoes, size)
				}
			default:
				g.Other = append(g.Other, size)
			}
		}
	}
	sort.Strings(g.Clothing)
	sort.Strings(g.Other)
	sortNumeric(g.Pants)
	sortNumeric(g.Shoes)
	return g
}

func numericInRange(s string, lo, hi int) bool {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= lo && n <= hi
}

func sortNumeric(sizes []string) {
	sort.Slice(sizes, func(i, j int) bool {
		a, _ := strconv.Atoi(sizes[i])
		b, _ := strconv.Atoi(sizes[j])
		return a < b
	})
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
