package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

func TestBootstrap_SeedsRolesAndAdmin(t *testing.T) {
	initTestLogger()
	roleRepo := newStubRoleRepo()
	userRepo := newStubUserRepo(roleRepo)
	roleService := NewRoleService(roleRepo)
	userService := NewUserService(userRepo, roleRepo)

	NewBootstrap(roleService, userService, "hunter2").Run(context.Background())

	for _, name := range domain.DefaultRoles {
		if ok, _ := roleService.RoleExists(context.Background(), name); !ok {
			t.Fatalf("missing default role %s", name)
		}
	}

	admin, err := userService.UserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if !admin.HasRole(domain.RoleAdmin) {
		t.Fatalf("admin missing ADMIN role: %v", admin.RoleNames())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("hunter2")); err != nil {
		t.Fatalf("admin password not taken from configuration: %v", err)
	}
}

func TestBootstrap_DoesNotOverwriteExistingAdmin(t *testing.T) {
	initTestLogger()
	roleRepo := newStubRoleRepo()
	userRepo := newStubUserRepo(roleRepo)
	roleService := NewRoleService(roleRepo)
	userService := NewUserService(userRepo, roleRepo)

	NewBootstrap(roleService, userService, "first").Run(context.Background())
	NewBootstrap(roleService, userService, "second").Run(context.Background())

	admin, err := userService.UserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not found: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("first")); err != nil {
		t.Fatalf("existing admin must be left untouched: %v", err)
	}
}

func TestBootstrap_DefaultPasswordFallback(t *testing.T) {
	initTestLogger()
	roleRepo := newStubRoleRepo()
	userRepo := newStubUserRepo(roleRepo)
	roleService := NewRoleService(roleRepo)
	userService := NewUserService(userRepo, roleRepo)

	NewBootstrap(roleService, userService, "").Run(context.Background())

	admin, err := userService.UserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin")); err != nil {
		t.Fatalf("expected well-known default password: %v", err)
	}
}
