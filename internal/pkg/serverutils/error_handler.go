package serverutils

import (
	"errors"

	"smart-blog-be/internal/pkg/logger"
	"smart-blog-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var sentinelStatus = []struct {
	err  error
	code int
}{
	{service.ErrPostNotFound, fiber.StatusNotFound},
	{service.ErrUserNotFound, fiber.StatusNotFound},
	{service.ErrInvalidContent, fiber.StatusBadRequest},
	{service.ErrInvalidAction, fiber.StatusBadRequest},
	{service.ErrEmailTaken, fiber.StatusConflict},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized},
}

// ErrorHandlerMiddleware renders any handler error as the response envelope.
// Unknown errors are logged and reported as 500 without details.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code, message := StatusFor(err)
		if code >= fiber.StatusInternalServerError && log != nil {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func StatusFor(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusUnprocessableEntity, ValidationMessage(validationErrs)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.code, err.Error()
		}
	}

	return fiber.StatusInternalServerError, "Internal server error"
}
