package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tutorbook-app/backend/internal/apperr"
	"go.uber.org/zap"
)

// Success sends the standard JSON envelope with HTTP 200.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

// SuccessWithCode sends the standard JSON envelope with a custom status.
func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// Error sends the standard error envelope.
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// ValidationError formats validator.v10 failures as a field error map.
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Error(c, fiber.StatusBadRequest, "invalid input")
	}

	fields := make(map[string]string)
	for _, fieldErr := range ve {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"code":    fiber.StatusBadRequest,
		"status":  "error",
		"message": "validation failed",
		"errors":  fields,
	})
}

// ServiceError maps service-layer error kinds onto HTTP statuses.
// Unknown errors become a logged 500 with a generic message.
func ServiceError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrUnauthorized):
		return Error(c, fiber.StatusUnauthorized, "invalid credentials")
	default:
		logger.Error("Unhandled service error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
