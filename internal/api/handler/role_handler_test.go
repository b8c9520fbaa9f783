package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
	"github.com/chorecircle/chorecircle-api/internal/core/ports"
)

// stubRoleService embeds the interface so each test only overrides the
// methods it exercises; touching anything else panics loudly.
type stubRoleService struct {
	ports.RoleService
	createFn      func(ctx context.Context, name string) (*domain.Role, error)
	renameFn      func(ctx context.Context, id int64, newName string) (bool, error)
	deleteFn      func(ctx context.Context, id int64) (bool, error)
	forceDeleteFn func(ctx context.Context, id int64) (bool, error)
	countByNameFn func(ctx context.Context, name string) (int64, error)
	existsFn      func(ctx context.Context, name string) (bool, error)
}

func (s *stubRoleService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	return s.createFn(ctx, name)
}

func (s *stubRoleService) RenameRole(ctx context.Context, id int64, newName string) (bool, error) {
	return s.renameFn(ctx, id, newName)
}

func (s *stubRoleService) DeleteRole(ctx context.Context, id int64) (bool, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubRoleService) ForceDeleteRole(ctx context.Context, id int64) (bool, error) {
	return s.forceDeleteFn(ctx, id)
}

func (s *stubRoleService) UsersCountWithRoleByName(ctx context.Context, name string) (int64, error) {
	return s.countByNameFn(ctx, name)
}

func (s *stubRoleService) RoleExists(ctx context.Context, name string) (bool, error) {
	return s.existsFn(ctx, name)
}

func TestRoleHandler_Create_Success(t *testing.T) {
	stub := &stubRoleService{
		createFn: func(ctx context.Context, name string) (*domain.Role, error) {
			return &domain.Role{ID: 4, Name: name}, nil
		},
	}
	h := NewRoleHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/roles", `{"name":"EDITOR"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "EDITOR" || resp["id"] != float64(4) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRoleHandler_Create_MissingName(t *testing.T) {
	stub := &stubRoleService{
		createFn: func(ctx context.Context, name string) (*domain.Role, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewRoleHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/roles", `{}`)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRoleHandler_Rename_NotFound(t *testing.T) {
	stub := &stubRoleService{
		renameFn: func(ctx context.Context, id int64, newName string) (bool, error) {
			return false, nil
		},
	}
	h := NewRoleHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/api/roles/9/name", `{"name":"NEW"}`)
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := h.Rename(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestRoleHandler_Delete_Success(t *testing.T) {
	stub := &stubRoleService{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			if id != 3 {
				t.Fatalf("unexpected id: %d", id)
			}
			return true, nil
		},
	}
	h := NewRoleHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/roles/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["message"] != "Role deleted successfully" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRoleHandler_Delete_InUse(t *testing.T) {
	stub := &stubRoleService{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			return false, &domain.RoleInUseError{Count: 2}
		},
	}
	h := NewRoleHandler(stub)

	c, _ := newTestContext(t, http.MethodDelete, "/api/roles/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.Delete(c)
	var inUse *domain.RoleInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("expected RoleInUseError, got %v", err)
	}
}

func TestRoleHandler_Delete_BadID(t *testing.T) {
	h := NewRoleHandler(&stubRoleService{})

	c, _ := newTestContext(t, http.MethodDelete, "/api/roles/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Delete(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRoleHandler_UsersCountByName(t *testing.T) {
	stub := &stubRoleService{
		countByNameFn: func(ctx context.Context, name string) (int64, error) {
			return 12, nil
		},
	}
	h := NewRoleHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/roles/name/STAFF/users-count", "")
	c.SetParamNames("name")
	c.SetParamValues("STAFF")

	if err := h.UsersCountByName(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["count"] != float64(12) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRoleHandler_Exists(t *testing.T) {
	stub := &stubRoleService{
		existsFn: func(ctx context.Context, name string) (bool, error) {
			return name == "ADMIN", nil
		},
	}
	h := NewRoleHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/roles/exists/ADMIN", "")
	c.SetParamNames("name")
	c.SetParamValues("ADMIN")

	if err := h.Exists(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["exists"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRoleHandler_Search_MissingKeyword(t *testing.T) {
	h := NewRoleHandler(&stubRoleService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/roles/search", "")
	err := h.Search(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
