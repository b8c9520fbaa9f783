package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

func newAuthServiceFixture(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	users, _, _ := newUserServiceFixture(t)
	return NewAuthService(users, "secret", time.Hour), users
}

func TestAuthService_Register_DefaultRole(t *testing.T) {
	svc, _ := newAuthServiceFixture(t)

	user, err := svc.Register(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !user.HasRole(domain.RoleUser) || len(user.Roles) != 1 {
		t.Fatalf("expected only the USER role, got %v", user.RoleNames())
	}
}

func TestAuthService_Register_EmptyCredentials(t *testing.T) {
	svc, _ := newAuthServiceFixture(t)

	if _, err := svc.Register(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	svc, users := newAuthServiceFixture(t)

	user, err := users.CreateUser(context.Background(), "carol", "s3cret", []string{domain.RoleAdmin, domain.RoleUser})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "carol" {
		t.Fatalf("unexpected sub: %v", claims["sub"])
	}
	roles, ok := claims["roles"].([]any)
	if !ok || len(roles) != len(user.Roles) {
		t.Fatalf("unexpected roles claim: %v", claims["roles"])
	}
	exp, _ := claims["exp"].(float64)
	iat, _ := claims["iat"].(float64)
	if int64(exp-iat) != int64(time.Hour.Seconds()) {
		t.Fatalf("unexpected ttl: %v", exp-iat)
	}
}

func TestAuthService_Login_UniformFailures(t *testing.T) {
	svc, users := newAuthServiceFixture(t)

	user, err := users.CreateUser(context.Background(), "dave", "right", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Unknown user, wrong password and empty input all collapse into the
	// same error.
	if _, err := svc.Login(context.Background(), "nobody", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "dave", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.Login(context.Background(), "dave", "right"); err != nil {
		t.Fatalf("valid login failed: %v", err)
	}

	if _, err := users.SetEnabled(context.Background(), user.ID, false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "dave", "right"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("disabled account should not log in, got %v", err)
	}
}
