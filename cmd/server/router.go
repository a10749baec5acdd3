package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/calorie-api/internal/api"
	apiMiddleware "github.com/phrazzld/calorie-api/internal/api/middleware"
	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/redact"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthCheckTimeout = 2 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
// Which routes require a token is part of the API contract.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	metrics := apiMiddleware.NewMetrics(app.registry)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Handler)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.jwtService, app.logger)
	calorieHandler := api.NewCalorieLogHandler(app.calorieService)
	exerciseHandler := api.NewExerciseLogHandler(app.exerciseService)
	friendHandler := api.NewFriendHandler(app.friendService)

	authenticate := apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate

	r.Route("/api/v1", func(r chi.Router) {
		if app.config.Security.SanitizeInput {
			r.Use(apiMiddleware.SanitizeInput)
		}

		r.Post("/auth", authHandler.Login)

		r.Route("/users", func(r chi.Router) {
			r.Post("/create", userHandler.Create)
			r.Get("/id/{userId}", userHandler.GetByID)
			r.Get("/userName/{userName}", userHandler.GetByUsername)
			r.Get("/allData/{userId}", userHandler.AllData)
			r.With(authenticate).Put("/update/{userId}", userHandler.Update)
			r.With(authenticate).Delete("/delete/{userId}", userHandler.Delete)
		})

		r.Route("/calories", func(r chi.Router) {
			r.With(authenticate).Post("/createLog", calorieHandler.Create)
			r.Get("/user/{userId}", calorieHandler.ListByUser)
			r.Get("/log/{logId}", calorieHandler.Get)
			r.With(authenticate).Put("/log/{logId}", calorieHandler.Update)
			r.With(authenticate).Delete("/log/{logId}", calorieHandler.Delete)
			r.Get("/daterange/{begin}/{end}", calorieHandler.ListByDateRange)
			r.Get("/food/{foodName}", calorieHandler.SearchByFood)
			r.Get("/calorierange/{begin}/{end}", calorieHandler.ListByCalorieRange)
		})

		r.Route("/exercise", func(r chi.Router) {
			r.Post("/createLog", exerciseHandler.Create)
			r.Get("/user/{userId}", exerciseHandler.ListByUser)
			r.Get("/log/{logId}", exerciseHandler.Get)
			r.Put("/log/{logId}", exerciseHandler.Update)
			r.Delete("/log/{logId}", exerciseHandler.Delete)
			r.Get("/daterange/{begin}/{end}", exerciseHandler.ListByDateRange)
			r.Get("/activity/{activityName}", exerciseHandler.SearchByActivity)
			r.Get("/calorierange/{begin}/{end}", exerciseHandler.ListByCalorieRange)
		})

		r.Route("/friends", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", friendHandler.List)
			r.Post("/addFriend", friendHandler.AddFriend)
			r.Put("/confirmFriend", friendHandler.ConfirmFriend)
			r.Delete("/deleteFriend", friendHandler.DeleteFriend)
		})
	})

	r.Get("/health", app.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Route not found")
	})

	return r
}

// health reports whether the database answers a ping.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Error("health check failed", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
