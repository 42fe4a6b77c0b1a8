package middleware

import (
	"errors"

	"github.com/drivelane/drivelane/drivelane/database/repositories"
	"github.com/drivelane/drivelane/drivelane/services"
	"github.com/drivelane/drivelane/drivelane/web/models"
	"github.com/gofiber/fiber/v2"
)

// CustomErrorHandler maps application errors to API responses. The API
// is JSON-only, so every error comes back in the standard envelope.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	apiCode := "INTERNAL_SERVER_ERROR"
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	var notFound *repositories.NotFoundError
	var conflict *repositories.ConflictError

	switch {
	case errors.As(err, &notFound):
		code = fiber.StatusNotFound
		apiCode = "NOT_FOUND"
		message = notFound.Error()
	case errors.As(err, &conflict):
		code = fiber.StatusConflict
		apiCode = "CONFLICT"
		message = conflict.Error()
	case errors.Is(err, services.ErrSameListing):
		code = fiber.StatusBadRequest
		apiCode = "BAD_REQUEST"
		message = err.Error()
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		apiCode = "REQUEST_ERROR"
		message = fiberErr.Message
	}

	return c.Status(code).JSON(models.NewErrorResponse(apiCode, message, nil))
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		return c.Next()
	}
}
