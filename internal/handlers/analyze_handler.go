package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	worker  services.Worker
	timeout time.Duration
}

// NewAnalyzeHandler bounds each analysis by timeout; zero means no deadline.
// fiber does not cancel the request context when a client disconnects, so the
// deadline is what stops abandoned analyses.
func NewAnalyzeHandler(worker services.Worker, timeout time.Duration) *AnalyzeHandler {
	return &AnalyzeHandler{
		worker:  worker,
		timeout: timeout,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: fmt.Sprintf("Invalid request payload: %v", err),
			Code:  fiber.StatusBadRequest,
			Kind:  "validation",
		})
	}

	// The id lets a client that fires overlapping requests drop superseded replies.
	analysisID := uuid.New()

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.worker.Submit(ctx, req.ResumeText, req.JobDescription)
	if err != nil {
		return writeError(c, fmt.Errorf("analysis failed: %w", err))
	}

	return c.JSON(models.AnalyzeResponse{
		ID:     analysisID.String(),
		Result: result,
	})
}
