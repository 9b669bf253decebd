package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(content []byte) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText joins the text fragments of each page with single spaces and
// appends the pages in order with no separator between them.
func (p *pdfParserService) ExtractText(content []byte) (text string, err error) {
	// The pdf package panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		textBuilder.WriteString(strings.Join(pageFragments(page), " "))
	}

	return textBuilder.String(), nil
}

// pageFragments returns the strings shown by each text operator of the page,
// in content stream order. A TJ array counts as one fragment.
func pageFragments(page pdf.Page) []string {
	fonts := make(map[string]pdf.TextEncoding)
	for _, name := range page.Fonts() {
		fonts[name] = page.Font(name).Encoder()
	}

	var enc pdf.TextEncoding
	var fragments []string
	show := func(s string) {
		if enc != nil {
			s = enc.Decode(s)
		}
		if s != "" {
			fragments = append(fragments, s)
		}
	}

	pdf.Interpret(page.V.Key("Contents"), func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		case "Tf":
			if n < 2 {
				return
			}
			enc = fonts[args[0].Name()]
		case "Tj", "'":
			if n < 1 {
				return
			}
			show(args[n-1].RawString())
		case "\"":
			if n < 3 {
				return
			}
			show(args[2].RawString())
		case "TJ":
			if n < 1 {
				return
			}
			var sb strings.Builder
			v := args[0]
			for i := 0; i < v.Len(); i++ {
				if x := v.Index(i); x.Kind() == pdf.String {
					sb.WriteString(x.RawString())
				}
			}
			show(sb.String())
		}
	})

	return fragments
}
