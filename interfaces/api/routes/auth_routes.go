package routes

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/interfaces/api/handlers"
	"heritage-archive/interfaces/api/middleware"
	"heritage-archive/pkg/config"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, rl *config.RateLimitConfig, session []fiber.Handler) {
	auth := api.Group("/auth", middleware.AuthRateLimiter(rl))

	// Google OAuth
	auth.Get("/google", h.Auth.GoogleLogin)
	auth.Get("/google/callback", h.Auth.GoogleCallback)

	// Pending accounts may still read their own profile
	auth.Get("/me", append(chain(session), h.Auth.GetCurrentUser)...)
	auth.Post("/logout", h.Auth.Logout)
}
