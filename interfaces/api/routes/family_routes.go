package routes

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/interfaces/api/handlers"
	"heritage-archive/interfaces/api/middleware"
)

func SetupFamilyRoutes(api fiber.Router, h *handlers.Handlers, session []fiber.Handler, writeLimit fiber.Handler) {
	approved := chain(session, middleware.RequireApproved())

	family := api.Group("/family", approved...)
	family.Get("/", h.Family.ListDirectory)
	family.Post("/", writeLimit, h.Family.SubmitPerson)
	family.Get("/:id", h.Family.GetPerson)
	family.Get("/:id/comments", h.Comment.List)
	family.Post("/:id/comments", writeLimit, h.Comment.Create)

	api.Delete("/comments/:id", append(approved, h.Comment.Delete)...)
	api.Get("/dashboard", append(chain(session, middleware.RequireApproved()), h.Family.Dashboard)...)
}
