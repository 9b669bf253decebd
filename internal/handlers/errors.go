package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// statusFor maps a classified service error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusRequestTimeout
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrFileRead):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnsupportedFormat):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrParse):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrMalformedResponse), errors.Is(err, services.ErrAIRequest):
		return fiber.StatusBadGateway
	case errors.Is(err, services.ErrWorkerStopped):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
		Kind:  services.ErrorKind(err),
	})
}
