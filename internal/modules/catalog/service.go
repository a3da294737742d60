package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	// ListProducts returns products narrowed by the storage-side query.
	ListProducts(ctx context.Context, q Query) ([]*Product, error)

	// GetProduct retrieves a single product by UUID.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// NewArrivals returns in-stock products flagged as new.
	NewArrivals(ctx context.Context) ([]*Product, error)

	// SaleItems returns in-stock products flagged as on sale.
	SaleItems(ctx context.Context) ([]*Product, error)

	// FilterProducts applies the composable filter spec, with an optional
	// free-text search composed before it, to the full catalog.
	FilterProducts(ctx context.Context, spec FilterSpec, search string) ([]*Product, error)

	// FilterOptions derives the filter choices available for the current
	// catalog, with sizes restricted to the selected categories.
	FilterOptions(ctx context.Context, categories []string) (FilterOptions, error)

	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
}

// ProductRequest holds the data for creating or updating a product.
type ProductRequest struct {
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
}

type service struct {
	repo  Repository
	cache *Cache
}

// NewService creates a new catalog service. cache may be nil.
func NewService(repo Repository, cache *Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) ListProducts(ctx context.Context, q Query) ([]*Product, error) {
	if q == (Query{}) {
		return s.listAll(ctx)
	}
	return s.repo.List(ctx, q)
}

// listAll serves the unfiltered list from cache when possible, falling back
// to the database and repopulating the cache off the request path.
func (s *service) listAll(ctx context.Context) ([]*Product, error) {
	if products, err := s.cache.GetAll(ctx); err == nil {
		return products, nil
	}
	products, err := s.repo.List(ctx, Query{})
	if err != nil {
		return nil, err
	}
	go func() {
		if err := s.cache.Populate(context.Background(), products); err != nil {
			log.Printf("catalog: %v", err)
		}
	}()
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) NewArrivals(ctx context.Context) ([]*Product, error) {
	flag := true
	return s.repo.List(ctx, Query{IsNew: &flag, InStock: &flag})
}

func (s *service) SaleItems(ctx context.Context) ([]*Product, error) {
	flag := true
	return s.repo.List(ctx, Query{IsOnSale: &flag, InStock: &flag})
}

func (s *service) FilterProducts(ctx context.Context, spec FilterSpec, search string) ([]*Product, error) {
	products, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(Search(products, search), spec), nil
}

func (s *service) FilterOptions(ctx context.Context, categories []string) (FilterOptions, error) {
	products, err := s.listAll(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	return DeriveOptions(products, categories), nil
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be > 0")
	}
	if req.Category == "" {
		return nil, fmt.Errorf("category is required")
	}
	p := &Product{ID: uuid.New()}
	applyRequest(p, req)
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	applyRequest(p, req)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return p, nil
}

func applyRequest(p *Product, req ProductRequest) {
	p.Name = req.Name
	p.Price = req.Price
	p.SalePrice = req.SalePrice
	p.ImageURL = req.ImageURL
	p.Images = req.Images
	p.ImageAltTexts = req.ImageAltTexts
	p.Category = req.Category
	p.Subcategory = req.Subcategory
	p.Color = req.Color
	p.Brand = req.Brand
	p.Description = req.Description
	p.Sizes = req.Sizes
	p.InStock = req.InStock
	p.IsNew = req.IsNew
	p.IsOnSale = req.IsOnSale
	p.StockQuantity = req.StockQuantity
	p.Measurements = req.Measurements
}
