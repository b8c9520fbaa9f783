package ports

import (
	"context"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

type AuthService interface {
	// Login verifies credentials and issues a signed bearer token. Unknown
	// user, disabled user, and wrong password all yield the same
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
	// Register creates an account with the default USER role. No token is
	// issued; the caller logs in separately.
	Register(ctx context.Context, username, password string) (*domain.User, error)
}
