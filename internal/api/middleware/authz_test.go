package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

func runAuthorize(t *testing.T, method, path string, principal *domain.Principal) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	if principal != nil {
		c.Set(principalKey, *principal)
	}

	called := false
	handler := Authorize(DefaultMatrix())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	if err == nil {
		return rec.Code, called
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	return he.Code, called
}

func TestAuthorize_PublicRoute(t *testing.T) {
	code, called := runAuthorize(t, http.MethodPost, "/api/auth/login", nil)
	if !called || code != http.StatusOK {
		t.Fatalf("public route blocked: code=%d called=%v", code, called)
	}
}

func TestAuthorize_Unauthenticated(t *testing.T) {
	code, called := runAuthorize(t, http.MethodGet, "/api/users", nil)
	if called {
		t.Fatalf("handler must not run without a principal")
	}
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthorize_InsufficientRole(t *testing.T) {
	p := domain.Principal{Username: "alice", Roles: []string{domain.RoleUser}}

	code, called := runAuthorize(t, http.MethodGet, "/api/users", &p)
	if called {
		t.Fatalf("handler must not run with only USER on a read-tier route")
	}
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestAuthorize_ReadTier(t *testing.T) {
	p := domain.Principal{Username: "mia", Roles: []string{domain.RoleModerator}}

	code, called := runAuthorize(t, http.MethodGet, "/api/users", &p)
	if !called || code != http.StatusOK {
		t.Fatalf("moderator should read: code=%d called=%v", code, called)
	}

	// Writes stay ADMIN-only.
	code, called = runAuthorize(t, http.MethodDelete, "/api/users/:id", &p)
	if called || code != http.StatusForbidden {
		t.Fatalf("moderator must not write: code=%d called=%v", code, called)
	}
}

func TestAuthorize_WriteTier(t *testing.T) {
	p := domain.Principal{Username: "root", Roles: []string{domain.RoleAdmin}}

	code, called := runAuthorize(t, http.MethodDelete, "/api/roles/:id/force", &p)
	if !called || code != http.StatusOK {
		t.Fatalf("admin should write: code=%d called=%v", code, called)
	}
}

func TestAuthorize_UnlistedRouteNeedsAuthentication(t *testing.T) {
	code, _ := runAuthorize(t, http.MethodGet, "/api/not-registered", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unlisted route, got %d", code)
	}

	p := domain.Principal{Username: "alice", Roles: []string{domain.RoleUser}}
	code, called := runAuthorize(t, http.MethodGet, "/api/not-registered", &p)
	if !called || code != http.StatusOK {
		t.Fatalf("any authenticated principal passes unlisted routes: code=%d called=%v", code, called)
	}
}
