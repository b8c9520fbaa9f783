package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain errors onto the API's status contract and
// renders every failure as {"error": "..."}. Unknown errors are logged and
// masked as 500 so internals never leak to callers.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := mapError(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, errorResponse{Error: msg})
		}
		if writeErr != nil {
			log.Error().Err(writeErr).Msg("failed to write error response")
		}
	}
}

func mapError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}

	// Order matters: UnknownRoleError also satisfies errors.Is(_, ErrRoleNotFound)
	// but signals a bad request payload, not a missing resource.
	var unknownRole *domain.UnknownRoleError
	if errors.As(err, &unknownRole) {
		return http.StatusBadRequest, unknownRole.Error()
	}
	var roleInUse *domain.RoleInUseError
	if errors.As(err, &roleInUse) {
		return http.StatusBadRequest, roleInUse.Error()
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusNotFound, "role not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, domain.ErrRoleExists):
		return http.StatusBadRequest, "role already exists"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
