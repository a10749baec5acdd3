package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/calorie-api/internal/config"
	"github.com/phrazzld/calorie-api/internal/platform/postgres"
	"github.com/phrazzld/calorie-api/internal/redact"
	"github.com/phrazzld/calorie-api/internal/service"
	"github.com/phrazzld/calorie-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService auth.JWTService

	userService     service.UserService
	calorieService  service.CalorieLogService
	exerciseService service.ExerciseLogService
	friendService   service.FriendService

	registry *prometheus.Registry
}

// newApplication wires stores, services and auth around an open database
// pool. The pool is owned by the application from here on.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_seconds", cfg.Auth.TokenLifetimeSeconds))

	users := postgres.NewPostgresUserStore(db, logger)
	calories := postgres.NewPostgresCalorieLogStore(db, logger)
	exercise := postgres.NewPostgresExerciseLogStore(db, logger)
	friendships := postgres.NewPostgresFriendshipStore(db, logger)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.userService = service.NewUserService(db, users, calories, exercise, friendships,
		hasher, auth.NewBcryptVerifier(), logger)
	app.calorieService = service.NewCalorieLogService(users, calories, logger)
	app.exerciseService = service.NewExerciseLogService(users, exercise, logger)
	app.friendService = service.NewFriendService(db, users, friendships, logger)

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "calorie_api"),
	)

	logger.Info("application initialized", slog.Int("bcrypt_cost", hasher.Cost()))
	return app, nil
}

// Run serves HTTP until ctx is canceled, then drains and cleans up.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// shutdownTimeout is how long in-flight requests get to finish.
func (app *application) shutdownTimeout() time.Duration {
	if s := app.config.Server.ShutdownTimeoutSeconds; s > 0 {
		return time.Duration(s) * time.Second
	}
	return 10 * time.Second
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", redact.Error(err)))
		}
	}
	app.logger.Info("application shutdown completed")
}
