package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chorecircle/chorecircle-api/internal/api/metrics"
	"github.com/chorecircle/chorecircle-api/internal/core/domain"
)

// Requirement describes who may call a route. AnyOf is satisfied by holding
// at least one of the listed roles; an empty AnyOf on a non-public route
// admits any authenticated principal.
type Requirement struct {
	Public bool
	AnyOf  []string
}

// Matrix maps "METHOD /route/pattern" (echo's registered pattern, not the raw
// URL) to its requirement. Routes absent from the matrix require an
// authenticated principal with any role, the least permissive default that
// stays stateless.
type Matrix map[string]Requirement

var (
	public    = Requirement{Public: true}
	readTier  = Requirement{AnyOf: []string{domain.RoleAdmin, domain.RoleModerator}}
	writeTier = Requirement{AnyOf: []string{domain.RoleAdmin}}
)

// DefaultMatrix is the route-to-role table for the full API surface: reads
// need ADMIN or MODERATOR, writes need ADMIN, and a short list of entry
// points is public.
func DefaultMatrix() Matrix {
	return Matrix{
		"POST /api/auth/login":    public,
		"POST /api/auth/register": public,
		"GET /health":             public,
		"GET /health/ready":       public,
		"GET /metrics":            public,
		"GET /swagger/*":          public,

		"GET /api/users":                                      readTier,
		"POST /api/users":                                     writeTier,
		"GET /api/users/:id":                                  readTier,
		"GET /api/users/username/:username":                   readTier,
		"GET /api/users/search":                               readTier,
		"PUT /api/users/:id/password":                         writeTier,
		"PUT /api/users/username/:username/password":          writeTier,
		"PUT /api/users/:id/roles":                            writeTier,
		"POST /api/users/:id/roles":                           writeTier,
		"DELETE /api/users/:id/roles":                         writeTier,
		"PUT /api/users/:id/enabled":                          writeTier,
		"DELETE /api/users/:id":                               writeTier,
		"DELETE /api/users/username/:username":                writeTier,
		"GET /api/users/exists/:username":                     readTier,
		"GET /api/users/by-role/:roleName":                    readTier,
		"GET /api/users/by-role-id/:roleId":                   readTier,
		"GET /api/users/:id/has-role/:roleName":               readTier,
		"GET /api/users/username/:username/has-role/:roleName": readTier,
		"GET /api/users/:id/roles":                            readTier,
		"GET /api/users/username/:username/roles":             readTier,

		"POST /api/roles":                       writeTier,
		"GET /api/roles":                        readTier,
		"GET /api/roles/ordered":                readTier,
		"GET /api/roles/search":                 readTier,
		"GET /api/roles/:id":                    readTier,
		"GET /api/roles/name/:name":             readTier,
		"PUT /api/roles/:id/name":               writeTier,
		"PUT /api/roles/name/:currentName":      writeTier,
		"DELETE /api/roles/:id":                 writeTier,
		"DELETE /api/roles/name/:name":          writeTier,
		"DELETE /api/roles/:id/force":           writeTier,
		"DELETE /api/roles/name/:name/force":    writeTier,
		"GET /api/roles/exists/:name":           readTier,
		"GET /api/roles/:id/users-count":        readTier,
		"GET /api/roles/name/:name/users-count": readTier,
	}
}

func (m Matrix) requirement(method, path string) Requirement {
	if req, ok := m[method+" "+path]; ok {
		return req
	}
	return Requirement{}
}

// Authorize enforces the matrix: public routes pass through, everything else
// needs a principal, and listed routes additionally need one of the listed
// roles.
func Authorize(m Matrix) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := m.requirement(c.Request().Method, c.Path())
			if req.Public {
				return next(c)
			}

			principal, ok := Principal(c)
			if !ok {
				metrics.AuthzDenialsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if len(req.AnyOf) == 0 {
				return next(c)
			}
			if !principal.HasAnyRole(req.AnyOf...) {
				metrics.AuthzDenialsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
