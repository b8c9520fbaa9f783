package ports

import (
	"context"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

// RoleService drives the role lifecycle. The (bool, error) convention matches
// UserService: false means the target role does not exist.
type RoleService interface {
	CreateRole(ctx context.Context, name string) (*domain.Role, error)

	RoleByID(ctx context.Context, id int64) (*domain.Role, error)
	RoleByName(ctx context.Context, name string) (*domain.Role, error)
	AllRoles(ctx context.Context) ([]domain.Role, error)
	AllRolesOrderedByName(ctx context.Context) ([]domain.Role, error)
	SearchRoles(ctx context.Context, keyword string) ([]domain.Role, error)
	RoleExists(ctx context.Context, name string) (bool, error)

	RenameRole(ctx context.Context, id int64, newName string) (bool, error)
	RenameRoleByName(ctx context.Context, currentName, newName string) (bool, error)

	// DeleteRole refuses with domain.RoleInUseError while members remain.
	DeleteRole(ctx context.Context, id int64) (bool, error)
	DeleteRoleByName(ctx context.Context, name string) (bool, error)
	// ForceDeleteRole detaches the role from every member, then deletes it.
	ForceDeleteRole(ctx context.Context, id int64) (bool, error)
	ForceDeleteRoleByName(ctx context.Context, name string) (bool, error)

	// UsersCountWithRoleByName returns 0 for an unknown role name rather
	// than failing.
	UsersCountWithRole(ctx context.Context, id int64) (int64, error)
	UsersCountWithRoleByName(ctx context.Context, name string) (int64, error)

	// EnsureDefaultRoles idempotently creates USER, ADMIN and MODERATOR.
	// A failure on one role does not stop the others; failures are logged,
	// never propagated.
	EnsureDefaultRoles(ctx context.Context)
}
