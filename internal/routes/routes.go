package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/jdelarosa/entradas/internal/auth"
	"github.com/jdelarosa/entradas/internal/handlers"
	"github.com/jdelarosa/entradas/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	checkoutHandler *handlers.CheckoutHandler,
	userHandler *handlers.UserHandler,
	tokenManager *auth.TokenManager,
) {
	authRateLimit := middleware.DefaultAuthRateLimit()
	checkoutRateLimit := middleware.DefaultCheckoutRateLimit()

	// Public routes - no authentication required
	router.Get("/events", eventHandler.ListEvents)
	router.Get("/events/{id}", eventHandler.GetEvent)
	router.With(middleware.RateLimitByIP(authRateLimit)).Post("/auth/login", authHandler.Login)
	router.With(middleware.RateLimitByIP(authRateLimit)).Post("/auth/register", authHandler.Register)
	router.With(middleware.RateLimitByIP(authRateLimit)).Post("/auth/refresh", authHandler.RefreshToken)

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenManager))

		r.Get("/users/me", userHandler.GetMe)
		r.Put("/users/me", userHandler.UpdateMe)
		r.Get("/users/me/orders", checkoutHandler.ListOrders)
		r.With(middleware.RateLimitByIP(checkoutRateLimit)).Post("/events/{id}/checkout", checkoutHandler.Checkout)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole("admin"))
			r.Get("/users", userHandler.ListUsers)
			r.Patch("/users/{id}/status", userHandler.ToggleUserStatus)
			r.Patch("/users/{id}/role", userHandler.ChangeUserRole)
		})
	})
}
