package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"heritage-archive/pkg/logger"
	"heritage-archive/pkg/utils"
)

// LoggerMiddleware writes one API log line per request.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the status yet
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		entry := logger.LogEntry{
			Level:     logger.LevelInfo,
			Category:  logger.CategoryAPI,
			Action:    "request",
			Message:   c.Method() + " " + c.Path(),
			RequestID: requestIDFrom(c),
			Duration:  time.Since(start).String(),
			Data: map[string]interface{}{
				"status": status,
				"ip":     c.IP(),
			},
		}
		if user, uerr := utils.GetUserFromContext(c); uerr == nil {
			entry.UserID = user.ID
		}
		if status >= fiber.StatusInternalServerError {
			entry.Level = logger.LevelError
		}
		logger.Default().Log(entry)

		return err
	}
}

func requestIDFrom(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}

// RequestID tags every request with an X-Request-ID.
func RequestID() fiber.Handler {
	return requestid.New()
}

// Recover converts panics into 500 responses.
func Recover() fiber.Handler {
	return recover.New()
}

// CorsMiddleware allows the frontend origin to send the session cookie.
func CorsMiddleware(frontendURL string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     frontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	})
}
