package catalog

import "context"

// Query narrows the product list on the storage side. Zero values mean no
// constraint; price bounds use nil to distinguish "unset" from zero.
type Query struct {
	Category string
	Search   string
	IsNew    *bool
	IsOnSale *bool
	InStock  *bool
	MinPrice *float64
	MaxPrice *float64
}

// Repository defines the interface for product storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
}
