package routes

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/interfaces/api/handlers"
)

// SetupMessageRoutes is open to pending accounts so they can reach an admin.
func SetupMessageRoutes(api fiber.Router, h *handlers.Handlers, session []fiber.Handler, writeLimit fiber.Handler) {
	messages := api.Group("/messages", session...)
	messages.Get("/", h.Message.ListMine)
	messages.Post("/", writeLimit, h.Message.Send)
}
