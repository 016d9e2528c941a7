package app

import (
	"github.com/avc/point-roulette/internal/handlers"
	"github.com/avc/point-roulette/internal/utils/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// setupRouter создает и настраивает роутер
func setupRouter(deps *dependencies, jwtManager *jwt.Manager, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	setupMiddleware(r, logger)

	// Маршруты
	setupRoutes(r, deps, jwtManager, logger)

	return r
}

// setupMiddleware настраивает middleware для роутера
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
}

// setupRoutes настраивает маршруты приложения
func setupRoutes(r *chi.Mux, deps *dependencies, jwtManager *jwt.Manager, logger *zap.Logger) {
	// Health check эндпоинты
	r.Get("/health", deps.handlers.health.Health)
	r.Get("/ready", deps.handlers.health.Ready)

	// Публичные эндпоинты
	r.Post("/api/auth/register", deps.handlers.auth.Register)
	r.Post("/api/auth/login", deps.handlers.auth.Login)
	r.Get("/api/roulette/config", deps.handlers.roulette.GetConfig)
	r.Get("/api/products", deps.handlers.products.ListActive)

	// Защищенные эндпоинты
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(jwtManager, logger))

		r.Get("/api/users/me", deps.handlers.users.GetMe)
		r.Get("/api/points/summary", deps.handlers.points.GetSummary)
		r.Post("/api/roulette/spin", deps.handlers.roulette.Spin)
		r.Get("/api/roulette/status", deps.handlers.roulette.GetStatus)
		r.Post("/api/orders", deps.handlers.orders.Create)
		r.Get("/api/orders", deps.handlers.orders.ListMy)
	})

	// Админские эндпоинты
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(jwtManager, logger))
		r.Use(handlers.AdminOnlyMiddleware(logger))

		r.Get("/api/admin/dashboard", deps.handlers.dashboard.GetSummary)
		r.Get("/api/admin/users", deps.handlers.users.List)
		r.Put("/api/admin/budget", deps.handlers.budget.SetLimit)
		r.Get("/api/admin/budget", deps.handlers.budget.GetSummary)
		r.Get("/api/admin/spins", deps.handlers.roulette.ListSpins)
		r.Post("/api/admin/spins/{spinID}/cancel", deps.handlers.roulette.CancelSpin)
		r.Put("/api/admin/roulette/segments", deps.handlers.roulette.ReplaceSegments)
		r.Get("/api/admin/products", deps.handlers.products.ListAll)
		r.Post("/api/admin/products", deps.handlers.products.Create)
		r.Put("/api/admin/products/{productID}", deps.handlers.products.Update)
		r.Get("/api/admin/orders", deps.handlers.orders.ListAll)
		r.Patch("/api/admin/orders/{orderID}/status", deps.handlers.orders.UpdateStatus)
	})
}
