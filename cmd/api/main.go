package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	_ "github.com/chorecircle/chorecircle-api/docs"
	"github.com/chorecircle/chorecircle-api/internal/api"
	"github.com/chorecircle/chorecircle-api/internal/core/service"
	"github.com/chorecircle/chorecircle-api/internal/infrastructure/db/postgres"
	"github.com/chorecircle/chorecircle-api/internal/pkg/config"
	"github.com/chorecircle/chorecircle-api/pkg/logger"
)

// @title        ChoreCircle API
// @version      1.0
// @description  User, role and authentication service for the ChoreCircle backend.
// @BasePath     /
func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	db, err := postgres.Open(ctx, postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	roleService := service.NewRoleService(roleRepo)
	userService := service.NewUserService(userRepo, roleRepo)

	service.NewBootstrap(roleService, userService, cfg.AdminPassword).Run(ctx)

	e := api.NewRouter(db, cfg.JWTSecret, cfg.JWTTTL)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
