package routes

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/interfaces/api/handlers"
)

// SetupLogRoutes sets up log-related routes under an admin-only group
func SetupLogRoutes(admin fiber.Router, h *handlers.Handlers) {
	admin.Get("/logs", h.Log.GetLogs)
	admin.Get("/logs/files", h.Log.GetLogFiles)
}
