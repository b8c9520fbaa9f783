package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
	ErrUserExists   = errors.New("username already exists")
	ErrRoleExists   = errors.New("role already exists")

	// ErrInvalidCredentials covers unknown user, disabled user, and password
	// mismatch alike, so login responses never reveal which one occurred.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UnknownRoleError reports a role name that could not be resolved while
// mutating a user's role set. The whole mutation fails; nothing is persisted.
type UnknownRoleError struct {
	Name string
}

func (e *UnknownRoleError) Error() string {
	return "role not found: " + e.Name
}

func (e *UnknownRoleError) Is(target error) bool {
	return target == ErrRoleNotFound
}

// RoleInUseError blocks the plain role delete path while members remain.
// Force delete is the only way past it.
type RoleInUseError struct {
	Count int64
}

func (e *RoleInUseError) Error() string {
	return fmt.Sprintf("cannot delete role: %d user(s) have this role", e.Count)
}
