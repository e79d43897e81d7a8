package handlers

import (
	"errors"

	"catalog/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler maps errors returned by handlers and middleware to JSON
// responses. Unclassified errors become a 500 and are logged to log.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx, err error) error {
		var validationErr *apperror.ValidationError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  validationErr.Fields,
			})
		case errors.Is(err, apperror.ErrNotFound):
			return respond(c, fiber.StatusNotFound, apperror.PublicMessage(err))
		case errors.Is(err, apperror.ErrNotAuthenticated):
			c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="api"`)
			return respond(c, fiber.StatusUnauthorized, apperror.PublicMessage(err))
		case errors.Is(err, apperror.ErrPermissionDenied):
			return respond(c, fiber.StatusForbidden, apperror.PublicMessage(err))
		case errors.Is(err, apperror.ErrConflict):
			return respond(c, fiber.StatusConflict, apperror.PublicMessage(err))
		case errors.As(err, &fiberErr):
			return respond(c, fiberErr.Code, fiberErr.Message)
		}

		log.Error("unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return respond(c, fiber.StatusInternalServerError, apperror.PublicMessage(err))
	}
}

func respond(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}
