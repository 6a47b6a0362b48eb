package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"heritage-archive/domain/services"
	websocketManager "heritage-archive/infrastructure/websocket"
	"heritage-archive/interfaces/api/middleware"
	websocketHandler "heritage-archive/interfaces/api/websocket"
)

// SetupWebSocketRoutes mounts the admin moderation feed. Browsers cannot set
// headers on the upgrade request, so the token may also come from ?token=.
func SetupWebSocketRoutes(app *fiber.App, manager *websocketManager.Manager, jwtSecret string, authService services.AuthService) {
	wsHandler := websocketHandler.NewWebSocketHandler(manager)

	app.Use("/ws",
		middleware.ProtectedWithQueryToken(jwtSecret),
		middleware.LoadProfile(authService),
		middleware.AdminOnly(),
		wsHandler.WebSocketUpgrade,
	)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))
}
