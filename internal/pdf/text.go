// Package pdf extracts plain text from PDF documents using MuPDF.
package pdf

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/pricelens/pricelist-extractor/internal/domain"
)

// Extractor pulls plain text out of PDF files page by page.
type Extractor struct{}

// NewExtractor creates a new text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Text returns the concatenated text of every page in the PDF at path.
func (e *Extractor) Text(path string) (string, error) {
	if err := ValidatePDFPath(path); err != nil {
		return "", err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return "", domain.ExtractionError("failed to open PDF", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return "", domain.ValidationError("PDF has no pages", nil)
	}

	var b strings.Builder
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		text, err := doc.Text(pageNum)
		if err != nil {
			return "", domain.ExtractionError(fmt.Sprintf("failed to extract text from page %d", pageNum+1), err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
