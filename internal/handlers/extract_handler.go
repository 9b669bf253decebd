package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type ExtractHandler struct {
	uploadReader services.UploadReader
	extractor    services.DocumentExtractor
}

func NewExtractHandler(
	uploadReader services.UploadReader,
	extractor services.DocumentExtractor,
) *ExtractHandler {
	return &ExtractHandler{
		uploadReader: uploadReader,
		extractor:    extractor,
	}
}

// HandleExtract handles POST /extract with a multipart "resume" file
func (h *ExtractHandler) HandleExtract(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return writeError(c, fmt.Errorf("%w: expected a multipart file field named 'resume'", services.ErrFileRead))
	}

	doc, err := h.uploadReader.ReadUpload(file)
	if err != nil {
		return writeError(c, err)
	}

	text, err := h.extractor.ExtractText(doc)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(models.ExtractResponse{
		Filename:   doc.Filename,
		MediaType:  doc.MediaType,
		Text:       text,
		Characters: len([]rune(text)),
	})
}
