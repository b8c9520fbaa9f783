package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
	"github.com/chorecircle/chorecircle-api/internal/core/ports"
)

// UserService implements the user lifecycle: creation, password updates, role
// assignment and queries. Plaintext passwords never leave this layer; they
// are bcrypt-hashed before any repository call.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository) *UserService {
	return &UserService{users: users, roles: roles}
}

// CreateUser persists a new account holding the named roles. When roleNames
// is empty the account gets the default USER role. Role resolution is
// all-or-nothing: one unknown name fails the whole creation and nothing is
// persisted.
func (s *UserService) CreateUser(ctx context.Context, username, password string, roleNames []string) (*domain.User, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	if len(roleNames) == 0 {
		roleNames = []string{domain.RoleUser}
	}
	roles, err := s.resolveRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Enabled:      true,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

func (s *UserService) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

func (s *UserService) AllUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.All(ctx)
}

func (s *UserService) SearchUsers(ctx context.Context, keyword string) ([]domain.User, error) {
	return s.users.SearchByUsername(ctx, keyword)
}

func (s *UserService) UsersByRole(ctx context.Context, roleName string) ([]domain.User, error) {
	return s.users.FindByRoleName(ctx, roleName)
}

func (s *UserService) UsersByRoleID(ctx context.Context, roleID int64) ([]domain.User, error) {
	return s.users.FindByRoleID(ctx, roleID)
}

func (s *UserService) UserExists(ctx context.Context, username string) (bool, error) {
	return s.users.ExistsByUsername(ctx, username)
}

func (s *UserService) UpdatePassword(ctx context.Context, id int64, newPassword string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *UserService) UpdatePasswordByUsername(ctx context.Context, username, newPassword string) (bool, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.UpdatePassword(ctx, user.ID, newPassword)
}

// UpdateRoles replaces the user's entire role set. On any unresolvable role
// name it fails before touching the store, so the previous set survives.
func (s *UserService) UpdateRoles(ctx context.Context, id int64, roleNames []string) (bool, error) {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	roles, err := s.resolveRoles(ctx, roleNames)
	if err != nil {
		return false, err
	}
	roleIDs := make([]int64, 0, len(roles))
	for _, r := range roles {
		roleIDs = append(roleIDs, r.ID)
	}
	if err := s.users.ReplaceRoles(ctx, id, roleIDs); err != nil {
		return false, err
	}
	return true, nil
}

// AddRole grants the named role. Missing user or role yields false, not an
// error; granting an already-held role succeeds.
func (s *UserService) AddRole(ctx context.Context, id int64, roleName string) (bool, error) {
	role, ok, err := s.lookupPair(ctx, id, roleName)
	if err != nil || !ok {
		return false, err
	}
	if err := s.users.AddRole(ctx, id, role.ID); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveRole revokes the named role with the same no-op-safe semantics as
// AddRole.
func (s *UserService) RemoveRole(ctx context.Context, id int64, roleName string) (bool, error) {
	role, ok, err := s.lookupPair(ctx, id, roleName)
	if err != nil || !ok {
		return false, err
	}
	if err := s.users.RemoveRole(ctx, id, role.ID); err != nil {
		return false, err
	}
	return true, nil
}

// SetEnabled toggles login eligibility. It takes effect on the next
// authentication attempt; tokens already issued stay valid until expiry.
func (s *UserService) SetEnabled(ctx context.Context, id int64, enabled bool) (bool, error) {
	if err := s.users.SetEnabled(ctx, id, enabled); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *UserService) DeleteUserByUsername(ctx context.Context, username string) (bool, error) {
	if err := s.users.DeleteByUsername(ctx, username); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *UserService) HasRole(ctx context.Context, id int64, roleName string) (bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.HasRole(roleName), nil
}

func (s *UserService) HasRoleByUsername(ctx context.Context, username, roleName string) (bool, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.HasRole(roleName), nil
}

// RolesOf returns the user's roles; an unknown user yields an empty slice.
func (s *UserService) RolesOf(ctx context.Context, id int64) ([]domain.Role, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return []domain.Role{}, nil
		}
		return nil, err
	}
	return user.Roles, nil
}

func (s *UserService) RolesOfByUsername(ctx context.Context, username string) ([]domain.Role, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return []domain.Role{}, nil
		}
		return nil, err
	}
	return user.Roles, nil
}

// resolveRoles maps names to stored roles, failing on the first unknown name.
// Repeated names collapse to one role so the membership inserts never collide
// on the (user_id, role_id) key.
func (s *UserService) resolveRoles(ctx context.Context, roleNames []string) ([]domain.Role, error) {
	seen := make(map[string]struct{}, len(roleNames))
	roles := make([]domain.Role, 0, len(roleNames))
	for _, name := range roleNames {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		role, err := s.roles.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrRoleNotFound) {
				return nil, &domain.UnknownRoleError{Name: name}
			}
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// lookupPair resolves the (user, role) pair for grant/revoke operations.
// Either one missing is reported via ok=false with a nil error.
func (s *UserService) lookupPair(ctx context.Context, id int64, roleName string) (*domain.Role, bool, error) {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return role, true, nil
}
