package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/chorecircle/chorecircle-api/internal/api/handler"
	"github.com/chorecircle/chorecircle-api/internal/api/middleware"
	"github.com/chorecircle/chorecircle-api/internal/core/service"
	"github.com/chorecircle/chorecircle-api/internal/infrastructure/db/postgres"
	"github.com/chorecircle/chorecircle-api/internal/infrastructure/http/handlers"
	"github.com/chorecircle/chorecircle-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, jwtSecret string, tokenTTL time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("chorecircle"))
	e.Use(middleware.Auth(jwtSecret))
	e.Use(middleware.Authorize(middleware.DefaultMatrix()))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)

	roleService := service.NewRoleService(roleRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	authService := service.NewAuthService(userService, jwtSecret, tokenTTL)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)

	// --- Auth routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register)

	// --- User routes ---
	users := e.Group("/api/users")
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/search", userHandler.Search)
	users.GET("/:id", userHandler.ByID)
	users.GET("/username/:username", userHandler.ByUsername)
	users.GET("/exists/:username", userHandler.Exists)
	users.GET("/by-role/:roleName", userHandler.ByRole)
	users.GET("/by-role-id/:roleId", userHandler.ByRoleID)
	users.PUT("/:id/password", userHandler.UpdatePassword)
	users.PUT("/username/:username/password", userHandler.UpdatePasswordByUsername)
	users.PUT("/:id/roles", userHandler.UpdateRoles)
	users.POST("/:id/roles", userHandler.AddRole)
	users.DELETE("/:id/roles", userHandler.RemoveRole)
	users.PUT("/:id/enabled", userHandler.SetEnabled)
	users.DELETE("/:id", userHandler.Delete)
	users.DELETE("/username/:username", userHandler.DeleteByUsername)
	users.GET("/:id/has-role/:roleName", userHandler.HasRole)
	users.GET("/username/:username/has-role/:roleName", userHandler.HasRoleByUsername)
	users.GET("/:id/roles", userHandler.Roles)
	users.GET("/username/:username/roles", userHandler.RolesByUsername)

	// --- Role routes ---
	roles := e.Group("/api/roles")
	roles.POST("", roleHandler.Create)
	roles.GET("", roleHandler.List)
	roles.GET("/ordered", roleHandler.ListOrdered)
	roles.GET("/search", roleHandler.Search)
	roles.GET("/:id", roleHandler.ByID)
	roles.GET("/name/:name", roleHandler.ByName)
	roles.PUT("/:id/name", roleHandler.Rename)
	roles.PUT("/name/:currentName", roleHandler.RenameByName)
	roles.DELETE("/:id", roleHandler.Delete)
	roles.DELETE("/name/:name", roleHandler.DeleteByName)
	roles.DELETE("/:id/force", roleHandler.ForceDelete)
	roles.DELETE("/name/:name/force", roleHandler.ForceDeleteByName)
	roles.GET("/exists/:name", roleHandler.Exists)
	roles.GET("/:id/users-count", roleHandler.UsersCount)
	roles.GET("/name/:name/users-count", roleHandler.UsersCountByName)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
