package auth

import (
	"context"

	"github.com/wearlyshop/wearly-backend/internal/modules/user"
)

// Service defines the interface for authentication business logic.
type Service interface {
	// LoginTelegram verifies mini-app init data, upserts the shopper and
	// returns a signed session token with the stored user.
	LoginTelegram(ctx context.Context, initData string) (string, *user.User, error)

	// LoginAdmin checks the staff password and returns an admin token.
	LoginAdmin(ctx context.Context, password string) (string, error)
}
