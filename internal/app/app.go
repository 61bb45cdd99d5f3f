package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/mathfacts/backend/internal/db"
	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/seed"
)

type App struct {
	Log      *logger.Logger
	Config   *Config
	Postgres *db.PostgresService
	Router   *gin.Engine
}

func New() (*App, error) {
	log, err := logger.New(logger.GetEnvMode())
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	cfg := LoadConfig(log)
	if cfg.JWTSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY must be set")
	}

	postgres, err := db.NewPostgresService(log)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := postgres.AutoMigrateAll(); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	r := wireRepos(postgres.DB, log)
	if err := seed.Catalog(context.Background(), postgres.DB, r.problem, log); err != nil {
		return nil, fmt.Errorf("seeding problem catalog: %w", err)
	}

	s := wireServices(postgres.DB, log, cfg, r)
	h := wireHandlers(s)
	am := wireMiddleware(log, s)
	router := wireRouter(cfg, am, h)

	return &App{
		Log:      log,
		Config:   cfg,
		Postgres: postgres,
		Router:   router,
	}, nil
}

func (a *App) Run() error {
	a.Log.Info("Starting server", "port", a.Config.Port)
	return a.Router.Run(":" + a.Config.Port)
}

func (a *App) Close() {
	if a.Postgres != nil {
		if err := a.Postgres.Close(); err != nil {
			a.Log.Warn("Closing postgres connection failed", "error", err)
		}
	}
	a.Log.Sync()
}
