package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chorecircle/chorecircle-api/internal/core/ports"
)

type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type createRoleRequest struct {
	Name string `json:"name" validate:"required"`
}

type renameRoleRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create registers a new role.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Param        body  body      createRoleRequest  true  "Role name"
// @Success      201   {object}  domain.Role
// @Failure      400   {object}  map[string]string
// @Router       /api/roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.roleService.CreateRole(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) ByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	role, err := h.roleService.RoleByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) ByName(c echo.Context) error {
	role, err := h.roleService.RoleByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roleService.AllRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) ListOrdered(c echo.Context) error {
	roles, err := h.roleService.AllRolesOrderedByName(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) Search(c echo.Context) error {
	keyword, err := queryKeyword(c)
	if err != nil {
		return err
	}
	roles, err := h.roleService.SearchRoles(c.Request().Context(), keyword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) Rename(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req renameRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.roleService.RenameRole(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "role not found")
	}
	return message(c, "Role name updated successfully")
}

func (h *RoleHandler) RenameByName(c echo.Context) error {
	var req renameRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.roleService.RenameRoleByName(c.Request().Context(), c.Param("currentName"), req.Name)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "role not found")
	}
	return message(c, "Role name updated successfully")
}

// Delete removes a role with no members. Roles still held by users are
// refused; use force delete.
//
// @Summary      Delete a role
// @Tags         roles
// @Produce      json
// @Param        id   path      int  true  "Role ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ok, err := h.roleService.DeleteRole(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "role not found")
	}
	return message(c, "Role deleted successfully")
}

func (h *RoleHandler) DeleteByName(c echo.Context) error {
	ok, err := h.roleService.DeleteRoleByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "role not found")
	}
	return message(c, "Role deleted successfully")
}

// ForceDelete detaches the role from every member, then deletes it.
//
// @Summary      Force delete a role
// @Tags         roles
// @Produce      json
// @Param        id   path      int  true  "Role ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/roles/{id}/force [delete]
func (h *RoleHandler) ForceDelete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ok, err := h.roleService.ForceDeleteRole(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "role not found")
	}
	return message(c, "Role force deleted successfully")
}

func (h *RoleHandler) ForceDeleteByName(c echo.Context) error {
	ok, err := h.roleService.ForceDeleteRoleByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "role not found")
	}
	return message(c, "Role force deleted successfully")
}

func (h *RoleHandler) Exists(c echo.Context) error {
	exists, err := h.roleService.RoleExists(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

func (h *RoleHandler) UsersCount(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	count, err := h.roleService.UsersCountWithRole(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

func (h *RoleHandler) UsersCountByName(c echo.Context) error {
	count, err := h.roleService.UsersCountWithRoleByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}
