package routes

import (
	"github.com/gofiber/fiber/v2"

	"heritage-archive/interfaces/api/handlers"
	"heritage-archive/interfaces/api/middleware"
)

func SetupAdminRoutes(api fiber.Router, h *handlers.Handlers, session []fiber.Handler) {
	admin := api.Group("/admin", chain(session, middleware.AdminOnly())...)

	admin.Get("/pending", h.Admin.Pending)

	persons := admin.Group("/persons")
	persons.Post("/:id/approve", h.Admin.ApprovePerson)
	persons.Post("/:id/reject", h.Admin.RejectPerson)
	persons.Put("/:id", h.Admin.UpdatePerson)
	persons.Delete("/:id/image", h.Admin.DeletePersonImage)

	accounts := admin.Group("/accounts")
	accounts.Get("/", h.Admin.Accounts)
	accounts.Post("/:id/approve", h.Admin.ApproveAccount)
	accounts.Post("/:id/reject", h.Admin.RejectAccount)
	accounts.Put("/:id", h.Admin.UpdateAccount)
	accounts.Delete("/:id", h.Admin.DeleteAccount)

	admin.Get("/messages", h.Message.Threads)
	admin.Post("/messages/:userId/reply", h.Message.Reply)

	admin.Get("/moderation-logs", h.ModerationLog.GetModerationLogs)
	admin.Get("/moderation-logs/actions", h.ModerationLog.GetModerationActions)

	SetupLogRoutes(admin, h)
}
