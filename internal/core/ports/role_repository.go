package ports

import (
	"context"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

// RoleRepository defines persistence for roles and membership counting.
type RoleRepository interface {
	Create(ctx context.Context, name string) (*domain.Role, error)
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	All(ctx context.Context) ([]domain.Role, error)
	AllOrderedByName(ctx context.Context) ([]domain.Role, error)
	SearchByName(ctx context.Context, keyword string) ([]domain.Role, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	CountUsers(ctx context.Context, roleID int64) (int64, error)

	Rename(ctx context.Context, id int64, newName string) error
	Delete(ctx context.Context, id int64) error
	// ForceDelete detaches the role from every member and deletes it in a
	// single transaction. No intermediate state is observable.
	ForceDelete(ctx context.Context, id int64) error
}
