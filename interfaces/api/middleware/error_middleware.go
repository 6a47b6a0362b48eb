package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"heritage-archive/pkg/apperror"
	"heritage-archive/pkg/logger"
	"heritage-archive/pkg/utils"
)

// ErrorHandler turns returned errors into the JSON envelope. Tagged errors
// keep their kind as the response code; store causes are logged, never sent.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.CodedErrorResponse(c, fe.Code, "http_error", fe.Message)
		}

		status := apperror.HTTPStatus(err)
		kind := apperror.KindOf(err)

		data := map[string]interface{}{
			"status_code": status,
			"path":        c.Path(),
			"method":      c.Method(),
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error(logger.CategoryAPI, "error_handler", "Request failed", err, data)
		} else {
			logger.Debug(logger.CategoryAPI, "error_handler", err.Error(), data)
		}

		return utils.CodedErrorResponse(c, status, string(kind), apperror.PublicMessage(err))
	}
}
