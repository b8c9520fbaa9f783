package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chorecircle/chorecircle-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"`
}

type updatePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type updateRolesRequest struct {
	Roles []string `json:"roles" validate:"required"`
}

type roleNameRequest struct {
	Role string `json:"role" validate:"required"`
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// Create persists a new user with an explicit role set. Unlike public
// registration this is an admin operation and accepts any existing roles.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User to create"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.CreateUser(c.Request().Context(), req.Username, req.Password, req.Roles)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// ByID returns a single user with their roles.
//
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) ByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userService.UserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ByUsername(c echo.Context) error {
	user, err := h.userService.UserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.AllUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Search(c echo.Context) error {
	keyword, err := queryKeyword(c)
	if err != nil {
		return err
	}
	users, err := h.userService.SearchUsers(c.Request().Context(), keyword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) ByRole(c echo.Context) error {
	users, err := h.userService.UsersByRole(c.Request().Context(), c.Param("roleName"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) ByRoleID(c echo.Context) error {
	roleID, err := pathID(c, "roleId")
	if err != nil {
		return err
	}
	users, err := h.userService.UsersByRoleID(c.Request().Context(), roleID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Exists(c echo.Context) error {
	exists, err := h.userService.UserExists(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"exists": exists})
}

// UpdatePassword rehashes and stores a new password for the user.
//
// @Summary      Update a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "User ID"
// @Param        body  body      updatePasswordRequest  true  "New password"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/password [put]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.userService.UpdatePassword(c.Request().Context(), id, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return message(c, "Password updated successfully")
}

func (h *UserHandler) UpdatePasswordByUsername(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.userService.UpdatePasswordByUsername(c.Request().Context(), c.Param("username"), req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return message(c, "Password updated successfully")
}

// UpdateRoles replaces the user's entire role set in one shot.
//
// @Summary      Replace a user's roles
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "User ID"
// @Param        body  body      updateRolesRequest  true  "New role set"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/roles [put]
func (h *UserHandler) UpdateRoles(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.userService.UpdateRoles(c.Request().Context(), id, req.Roles)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return message(c, "Roles updated successfully")
}

func (h *UserHandler) AddRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roleNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.userService.AddRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "User or role not found")
	}
	return message(c, "Role added successfully")
}

func (h *UserHandler) RemoveRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roleNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.userService.RemoveRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "User or role not found")
	}
	return message(c, "Role removed successfully")
}

// SetEnabled toggles the account flag. Outstanding tokens keep working until
// they expire; only new logins consult the flag.
//
// @Summary      Enable or disable a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User ID"
// @Param        body  body      setEnabledRequest  true  "Enabled flag"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/users/{id}/enabled [put]
func (h *UserHandler) SetEnabled(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req setEnabledRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ok, err := h.userService.SetEnabled(c.Request().Context(), id, *req.Enabled)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return message(c, "User status updated successfully")
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ok, err := h.userService.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return message(c, "User deleted successfully")
}

func (h *UserHandler) DeleteByUsername(c echo.Context) error {
	ok, err := h.userService.DeleteUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return message(c, "User deleted successfully")
}

func (h *UserHandler) HasRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	has, err := h.userService.HasRole(c.Request().Context(), id, c.Param("roleName"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"hasRole": has})
}

func (h *UserHandler) HasRoleByUsername(c echo.Context) error {
	has, err := h.userService.HasRoleByUsername(c.Request().Context(), c.Param("username"), c.Param("roleName"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"hasRole": has})
}

func (h *UserHandler) Roles(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	roles, err := h.userService.RolesOf(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *UserHandler) RolesByUsername(c echo.Context) error {
	roles, err := h.userService.RolesOfByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}
