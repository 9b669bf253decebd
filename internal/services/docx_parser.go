package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type DocxParserService interface {
	ExtractText(content []byte) (string, error)
}

type docxParserService struct{}

func NewDocxParserService() DocxParserService {
	return &docxParserService{}
}

// ExtractText returns the raw text of the main document part. Every paragraph
// is followed by a blank line; tabs and line breaks are kept, all run and
// paragraph formatting is dropped.
func (d *docxParserService) ExtractText(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	text, err := wordXMLToText(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to read DOCX body: %w", err)
	}

	return text, nil
}

func wordXMLToText(documentXML string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var textBuilder strings.Builder
	inText := false
	// w:tab also names tab stop definitions inside w:tabs
	tabStops := 0
	// mc:AlternateContent holds the same content twice; only mc:Fallback is read
	choiceDepth := 0

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Choice" {
				choiceDepth++
			}
			if choiceDepth > 0 {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tabs":
				tabStops++
			case "tab":
				if tabStops == 0 {
					textBuilder.WriteString("\t")
				}
			case "br", "cr":
				textBuilder.WriteString("\n")
			}
		case xml.EndElement:
			if t.Name.Local == "Choice" {
				choiceDepth--
				continue
			}
			if choiceDepth > 0 {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "tabs":
				tabStops--
			case "p":
				textBuilder.WriteString("\n\n")
			}
		case xml.CharData:
			if inText && choiceDepth == 0 {
				textBuilder.Write(t)
			}
		}
	}

	return textBuilder.String(), nil
}
