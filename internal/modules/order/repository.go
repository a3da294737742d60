package order

import (
	"context"
	"time"
)

// Repository defines the interface for order storage.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)

	// List returns all orders newest first, optionally narrowed by status.
	List(ctx context.Context, status string) ([]*Order, error)

	// ListByUser returns one shopper's orders newest first.
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)

	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateNotes(ctx context.Context, id string, notes string) error

	// Stats aggregates sales figures for orders created in [from, to).
	Stats(ctx context.Context, from, to time.Time) (*Stats, error)
}
