package routes

import (
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"heritage-archive/domain/services"
	"heritage-archive/infrastructure/metrics"
	websocketManager "heritage-archive/infrastructure/websocket"
	"heritage-archive/interfaces/api/handlers"
	"heritage-archive/interfaces/api/middleware"
	"heritage-archive/pkg/config"
	"heritage-archive/pkg/scalar"
)

// Deps are the pieces route groups need besides handlers.
type Deps struct {
	Config      *config.Config
	AuthService services.AuthService
	Metrics     *metrics.Metrics
	WSManager   *websocketManager.Manager
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, deps Deps) {
	// Setup health and root routes
	SetupHealthRoutes(app, h.Health)

	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Get("/swagger/*", fiberSwagger.WrapHandler)
	scalar.SetupRoutes(app)

	// API version group
	api := app.Group("/api/v1", middleware.RateLimiter(&deps.Config.RateLimit, deps.Config.JWT.Secret))

	// Every route below /auth/me needs a session and a fresh profile
	session := []fiber.Handler{
		middleware.Protected(deps.Config.JWT.Secret),
		middleware.LoadProfile(deps.AuthService),
	}

	// Setup all route groups
	SetupAuthRoutes(api, h, &deps.Config.RateLimit, session)
	writeLimit := middleware.WriteRateLimiter(&deps.Config.RateLimit)
	SetupFamilyRoutes(api, h, session, writeLimit)
	SetupMessageRoutes(api, h, session, writeLimit)
	SetupAdminRoutes(api, h, session)

	// Setup WebSocket routes (needs app, not api group)
	if deps.WSManager != nil {
		SetupWebSocketRoutes(app, deps.WSManager, deps.Config.JWT.Secret, deps.AuthService)
	}
}

func chain(session []fiber.Handler, extra ...fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(session)+len(extra))
	out = append(out, session...)
	return append(out, extra...)
}
