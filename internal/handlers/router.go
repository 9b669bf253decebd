package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, extractHandler *ExtractHandler, analyzeHandler *AnalyzeHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/extract", extractHandler.HandleExtract)
	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/extract",
				"POST /api/v1/analyze",
				"GET /api/v1/health",
			},
		})
	})
}

// ErrorHandler renders errors that escape a handler in the same shape as handled ones.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	kind := "internal"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		if code == fiber.StatusRequestEntityTooLarge {
			kind = "file_read"
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
		"kind":  kind,
	})
}
