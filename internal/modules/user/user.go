package user

import (
	"context"
	"time"
)

// User is a shopper identified by their Telegram account.
type User struct {
	ID        int64     `json:"id"` // Telegram user id
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name,omitempty"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
}

// Repository defines the interface for shopper storage.
type Repository interface {
	// Upsert creates the user on first login and refreshes the profile
	// fields and last_login on every subsequent one.
	Upsert(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
}
