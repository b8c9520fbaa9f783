package ports

import (
	"context"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

// UserService drives the user lifecycle. Methods returning (bool, error) use
// false to signal "target not found" so call sites can branch without
// unwrapping errors; the error slot is reserved for real failures.
type UserService interface {
	// CreateUser hashes the password and persists the user with the named
	// roles (default {USER} when nil or empty). Any unresolvable role name
	// fails the whole creation; no user is persisted.
	CreateUser(ctx context.Context, username, password string, roleNames []string) (*domain.User, error)

	UserByID(ctx context.Context, id int64) (*domain.User, error)
	UserByUsername(ctx context.Context, username string) (*domain.User, error)
	AllUsers(ctx context.Context) ([]domain.User, error)
	SearchUsers(ctx context.Context, keyword string) ([]domain.User, error)
	UsersByRole(ctx context.Context, roleName string) ([]domain.User, error)
	UsersByRoleID(ctx context.Context, roleID int64) ([]domain.User, error)
	UserExists(ctx context.Context, username string) (bool, error)

	UpdatePassword(ctx context.Context, id int64, newPassword string) (bool, error)
	UpdatePasswordByUsername(ctx context.Context, username, newPassword string) (bool, error)

	// UpdateRoles atomically replaces the user's whole role set. On any
	// unresolvable role name the previous set remains unchanged.
	UpdateRoles(ctx context.Context, id int64, roleNames []string) (bool, error)
	AddRole(ctx context.Context, id int64, roleName string) (bool, error)
	RemoveRole(ctx context.Context, id int64, roleName string) (bool, error)

	SetEnabled(ctx context.Context, id int64, enabled bool) (bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	DeleteUserByUsername(ctx context.Context, username string) (bool, error)

	HasRole(ctx context.Context, id int64, roleName string) (bool, error)
	HasRoleByUsername(ctx context.Context, username, roleName string) (bool, error)
	RolesOf(ctx context.Context, id int64) ([]domain.Role, error)
	RolesOfByUsername(ctx context.Context, username string) ([]domain.Role, error)
}
