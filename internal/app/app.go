package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/templui/focusflow"
	"github.com/templui/focusflow/internal/config"
	"github.com/templui/focusflow/internal/db"
	"github.com/templui/focusflow/internal/repository"
	"github.com/templui/focusflow/internal/service"
)

// App holds every long-lived dependency of the server. It is built once at
// startup and handed to the routes.
type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Storage         *repository.Storage
	AuthService     *service.AuthService
	GoalService     *service.GoalService
	FocusService    *service.FocusService
	ResourceService *service.ResourceService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a, err := FromDB(cfg, database, time.Now)
	if err != nil {
		database.Close()
		return nil, err
	}
	return a, nil
}

// FromDB wires the services on top of an open, migrated database.
func FromDB(cfg *config.Config, database *sqlx.DB, now service.Clock) (*App, error) {
	storage := repository.NewStorage(database)

	a := &App{
		Cfg:             cfg,
		DB:              database,
		Storage:         storage,
		AuthService:     service.NewAuthService(storage.Users, cfg.JWTSecret, cfg.JWTExpiry, cfg.IsProduction(), now),
		GoalService:     service.NewGoalService(storage.Goals, now),
		FocusService:    service.NewFocusService(storage.DailyFocus, storage.Goals, now),
		ResourceService: service.NewResourceService(storage.Resources, now),
	}

	if cfg.SeedResources {
		_, err := a.ResourceService.Seed(context.Background(), focusflow.ResourcesFS, "content/resources")
		if err != nil {
			return nil, fmt.Errorf("failed to seed resources: %w", err)
		}
	}

	return a, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
