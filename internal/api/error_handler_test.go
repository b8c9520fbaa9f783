package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body["error"]
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"role not found", domain.ErrRoleNotFound, http.StatusNotFound, "role not found"},
		{"user exists", domain.ErrUserExists, http.StatusBadRequest, "Username already exists"},
		{"role exists", domain.ErrRoleExists, http.StatusBadRequest, "role already exists"},
		{"unknown role", &domain.UnknownRoleError{Name: "GHOST"}, http.StatusBadRequest, "role not found: GHOST"},
		{"role in use", &domain.RoleInUseError{Count: 4}, http.StatusBadRequest, "cannot delete role: 4 user(s) have this role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := renderError(t, tt.err)
			if code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, code)
			}
			if msg != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, msg)
			}
		})
	}
}

func TestHTTPErrorHandler_PassesThroughHTTPErrors(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusForbidden, "insufficient role"))
	if code != http.StatusForbidden || msg != "insufficient role" {
		t.Fatalf("unexpected mapping: %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_MasksUnknownErrors(t *testing.T) {
	code, msg := renderError(t, errTestOpaque)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internals leaked: %q", msg)
	}
}

var errTestOpaque = &opaqueError{}

type opaqueError struct{}

func (*opaqueError) Error() string { return "driver: connection reset" }
