package services

import (
	"fmt"
	"log"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// DocumentExtractor converts an uploaded PDF or DOCX file into plain text.
type DocumentExtractor interface {
	ExtractText(doc *models.UploadedDocument) (string, error)
}

type documentExtractor struct {
	pdfParser  PDFParserService
	docxParser DocxParserService
}

func NewDocumentExtractor(pdfParser PDFParserService, docxParser DocxParserService) DocumentExtractor {
	return &documentExtractor{
		pdfParser:  pdfParser,
		docxParser: docxParser,
	}
}

func (e *documentExtractor) ExtractText(doc *models.UploadedDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("%w: no document", ErrFileRead)
	}

	var parse func([]byte) (string, error)
	switch doc.MediaType {
	case models.MediaTypePDF:
		parse = e.pdfParser.ExtractText
	case models.MediaTypeDOCX:
		parse = e.docxParser.ExtractText
	default:
		return "", fmt.Errorf("%w: %q, please upload a PDF or DOCX file", ErrUnsupportedFormat, doc.MediaType)
	}

	text, err := parse(doc.Content)
	if err != nil {
		log.Printf("⚠️  Failed to extract text from %q (%s): %v\n", doc.Filename, doc.MediaType, err)
		return "", fmt.Errorf("%w: %w", ErrParse, err)
	}

	log.Printf("📄 Extracted %d characters from %q\n", len(text), doc.Filename)
	return text, nil
}
