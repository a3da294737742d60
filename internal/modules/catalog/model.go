package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a single catalog entry. Sizes is an ordered sequence (display
// order matters), StockQuantity maps size -> remaining units and may be nil
// for products without per-size stock tracking.
type Product struct {
	ID            uuid.UUID                    `json:"id"`
	Name          string                       `json:"name"`
	Price         float64                      `json:"price"`
	SalePrice     *float64                     `json:"sale_price,omitempty"`
	ImageURL      string                       `json:"image_url"`
	Images        []string                     `json:"images,omitempty"`
	ImageAltTexts []string                     `json:"image_alt_texts,omitempty"`
	Category      string                       `json:"category"`
	Subcategory   string                       `json:"subcategory,omitempty"`
	Color         string                       `json:"color,omitempty"`
	Brand         string                       `json:"brand,omitempty"`
	Description   string                       `json:"description"`
	Sizes         []string                     `json:"sizes"`
	InStock       bool                         `json:"in_stock"`
	IsNew         bool                         `json:"is_new"`
	IsOnSale      bool                         `json:"is_on_sale"`
	StockQuantity map[string]int               `json:"stock_quantity,omitempty"`
	Measurements  map[string]map[string]string `json:"measurements,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

// EffectivePrice returns the sale price when the product is marked on sale
// and carries a sale price below the base price. A missing or inconsistent
// sale price falls back to the base price rather than erroring.
func (p *Product) EffectivePrice() float64 {
	if p.IsOnSale && p.SalePrice != nil && *p.SalePrice > 0 && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

// StockFor returns the declared stock for a size. Products without a stock
// map, or without an entry for the size, count as zero stock.
func (p *Product) StockFor(size string) int {
	if p.StockQuantity == nil {
		return 0
	}
	return p.StockQuantity[size]
}

// OffersSize reports whether the product lists the given size.
func (p *Product) OffersSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
