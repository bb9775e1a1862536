package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bazi-api/internal/config"
	"github.com/phrazzld/bazi-api/internal/domain/bazi"
	"github.com/phrazzld/bazi-api/internal/platform/gemini"
	"github.com/phrazzld/bazi-api/internal/platform/postgres"
	"github.com/phrazzld/bazi-api/internal/report"
	"github.com/phrazzld/bazi-api/internal/service"
	"github.com/phrazzld/bazi-api/internal/service/auth"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	jwtService   auth.JWTService
	userService  service.UserService
	chartService service.ChartService
}

// newApplication wires stores, services and the optional narrator.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	params, err := cfg.Engine.Params()
	if err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}
	engine, err := bazi.NewEngine(params)
	if err != nil {
		return nil, err
	}

	users := postgres.NewPostgresUserStore(db, logger, cfg.Auth.BCryptCost)
	profiles := postgres.NewPostgresProfileStore(db, logger)

	userService, err := service.NewUserService(users, auth.NewBcryptVerifier(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	var narrator report.Narrator
	if cfg.LLM.Enabled {
		n, err := gemini.NewNarrator(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini narrator: %w", err)
		}
		narrator = n
		logger.Info("gemini narrator enabled", slog.String("model", cfg.LLM.ModelName))
	}

	chartService, err := service.NewChartService(service.ChartServiceConfig{
		Engine:    engine,
		DB:        db,
		Users:     users,
		Profiles:  profiles,
		Narrator:  narrator,
		CacheSize: cfg.Engine.CacheSize,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chart service: %w", err)
	}

	logger.Info("application initialized",
		slog.Float64("weak_threshold", params.WeakThreshold),
		slog.Float64("strong_threshold", params.StrongThreshold),
		slog.Int("cache_size", cfg.Engine.CacheSize))

	return &application{
		config:       cfg,
		logger:       logger,
		jwtService:   jwtService,
		userService:  userService,
		chartService: chartService,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	return app.serve(ctx, app.setupRouter())
}
