package ports

import (
	"context"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts and their role
// memberships. Mutations that touch the user_roles mapping are transactional:
// either the whole change lands or none of it does.
//
// Update and delete methods return domain.ErrUserNotFound when no row
// matches; the service layer converts that into a boolean outcome.
type UserRepository interface {
	// Create persists the user and the memberships for every role already
	// attached to user.Roles, atomically.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	All(ctx context.Context) ([]domain.User, error)
	SearchByUsername(ctx context.Context, keyword string) ([]domain.User, error)
	FindByRoleName(ctx context.Context, roleName string) ([]domain.User, error)
	FindByRoleID(ctx context.Context, roleID int64) ([]domain.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetEnabled(ctx context.Context, id int64, enabled bool) error

	// ReplaceRoles swaps the user's entire membership set for roleIDs in one
	// transaction.
	ReplaceRoles(ctx context.Context, id int64, roleIDs []int64) error
	// AddRole is idempotent: granting an already-held role is a no-op.
	AddRole(ctx context.Context, id, roleID int64) error
	// RemoveRole is idempotent: revoking an unheld role is a no-op.
	RemoveRole(ctx context.Context, id, roleID int64) error

	Delete(ctx context.Context, id int64) error
	DeleteByUsername(ctx context.Context, username string) error
}
