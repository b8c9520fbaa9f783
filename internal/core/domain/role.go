package domain

import "time"

// Conventional role names. The role set is extensible at runtime; these three
// are guaranteed to exist after bootstrap.
const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// DefaultRoles lists the roles created by the startup bootstrap.
var DefaultRoles = []string{RoleUser, RoleAdmin, RoleModerator}

// Role is a named permission grouping assigned to users.
type Role struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
