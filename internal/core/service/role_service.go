package service

import (
	"context"
	"errors"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
	"github.com/chorecircle/chorecircle-api/internal/core/ports"
	"github.com/chorecircle/chorecircle-api/pkg/logger"
)

// RoleService implements the role lifecycle on top of a RoleRepository.
type RoleService struct {
	roles ports.RoleRepository
}

func NewRoleService(roles ports.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

func (s *RoleService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	exists, err := s.roles.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrRoleExists
	}
	return s.roles.Create(ctx, name)
}

func (s *RoleService) RoleByID(ctx context.Context, id int64) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) RoleByName(ctx context.Context, name string) (*domain.Role, error) {
	return s.roles.FindByName(ctx, name)
}

func (s *RoleService) AllRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.All(ctx)
}

func (s *RoleService) AllRolesOrderedByName(ctx context.Context) ([]domain.Role, error) {
	return s.roles.AllOrderedByName(ctx)
}

func (s *RoleService) SearchRoles(ctx context.Context, keyword string) ([]domain.Role, error) {
	return s.roles.SearchByName(ctx, keyword)
}

func (s *RoleService) RoleExists(ctx context.Context, name string) (bool, error) {
	return s.roles.ExistsByName(ctx, name)
}

// RenameRole renames in place; the role id and its memberships are untouched.
func (s *RoleService) RenameRole(ctx context.Context, id int64, newName string) (bool, error) {
	exists, err := s.roles.ExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	return s.rename(ctx, id, newName)
}

func (s *RoleService) RenameRoleByName(ctx context.Context, currentName, newName string) (bool, error) {
	role, err := s.roles.FindByName(ctx, currentName)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.rename(ctx, role.ID, newName)
}

func (s *RoleService) rename(ctx context.Context, id int64, newName string) (bool, error) {
	taken, err := s.roles.ExistsByName(ctx, newName)
	if err != nil {
		return false, err
	}
	if taken {
		return false, domain.ErrRoleExists
	}
	if err := s.roles.Rename(ctx, id, newName); err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *RoleService) DeleteRole(ctx context.Context, id int64) (bool, error) {
	exists, err := s.roles.ExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	return s.deleteGuarded(ctx, id)
}

func (s *RoleService) DeleteRoleByName(ctx context.Context, name string) (bool, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.deleteGuarded(ctx, role.ID)
}

// deleteGuarded refuses to delete a role that still has members.
func (s *RoleService) deleteGuarded(ctx context.Context, id int64) (bool, error) {
	count, err := s.roles.CountUsers(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, &domain.RoleInUseError{Count: count}
	}
	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *RoleService) ForceDeleteRole(ctx context.Context, id int64) (bool, error) {
	if err := s.roles.ForceDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *RoleService) ForceDeleteRoleByName(ctx context.Context, name string) (bool, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.ForceDeleteRole(ctx, role.ID)
}

func (s *RoleService) UsersCountWithRole(ctx context.Context, id int64) (int64, error) {
	return s.roles.CountUsers(ctx, id)
}

// UsersCountWithRoleByName returns 0 for an unknown role name.
func (s *RoleService) UsersCountWithRoleByName(ctx context.Context, name string) (int64, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return s.roles.CountUsers(ctx, role.ID)
}

// EnsureDefaultRoles creates USER, ADMIN and MODERATOR if absent. One role
// failing does not stop the others; failures are logged and swallowed.
func (s *RoleService) EnsureDefaultRoles(ctx context.Context) {
	log := logger.Get()
	for _, name := range domain.DefaultRoles {
		if _, err := s.CreateRole(ctx, name); err != nil && !errors.Is(err, domain.ErrRoleExists) {
			log.Error().Err(err).Str("role", name).Msg("ensure default role")
		}
	}
}
