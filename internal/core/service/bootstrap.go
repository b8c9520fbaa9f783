package service

import (
	"context"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
	"github.com/chorecircle/chorecircle-api/internal/core/ports"
	"github.com/chorecircle/chorecircle-api/pkg/logger"
)

const (
	bootstrapAdminUsername = "admin"
	bootstrapAdminPassword = "admin"
)

// Bootstrap seeds the store at process start: the three conventional roles
// and an administrative account. It is an explicit, idempotent step invoked
// once from main, never a constructor side effect. Failures are logged and
// never abort startup.
type Bootstrap struct {
	roles         ports.RoleService
	users         ports.UserService
	adminPassword string
}

// NewBootstrap builds the initializer. adminPassword may be empty, in which
// case the well-known default is used and a warning is logged.
func NewBootstrap(roles ports.RoleService, users ports.UserService, adminPassword string) *Bootstrap {
	return &Bootstrap{roles: roles, users: users, adminPassword: adminPassword}
}

func (b *Bootstrap) Run(ctx context.Context) {
	b.roles.EnsureDefaultRoles(ctx)
	b.ensureAdminUser(ctx)
}

func (b *Bootstrap) ensureAdminUser(ctx context.Context) {
	log := logger.Get()

	exists, err := b.users.UserExists(ctx, bootstrapAdminUsername)
	if err != nil {
		log.Error().Err(err).Msg("bootstrap: check admin user")
		return
	}
	if exists {
		return
	}

	password := b.adminPassword
	if password == "" {
		password = bootstrapAdminPassword
		log.Warn().Msg("ADMIN_PASSWORD not set; creating 'admin' with the default password. Rotate it immediately.")
	}

	if _, err := b.users.CreateUser(ctx, bootstrapAdminUsername, password, []string{domain.RoleAdmin}); err != nil {
		log.Error().Err(err).Msg("bootstrap: create admin user")
		return
	}
	log.Info().Str("username", bootstrapAdminUsername).Msg("bootstrapped admin user")
}
