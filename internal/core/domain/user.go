package domain

import "time"

// User models a login-capable account. The role set gates which routes the
// account's tokens may call.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Enabled      bool      `json:"enabled"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user currently holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the user's roles. Never nil.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Principal is the validated identity carried by one request: the token's
// subject plus its role claims. It lives only for the request's lifetime and
// is never persisted.
type Principal struct {
	Username string
	Roles    []string
}

// HasAnyRole reports whether the principal holds at least one of the given
// roles.
func (p Principal) HasAnyRole(names ...string) bool {
	for _, want := range names {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
