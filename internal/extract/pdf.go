// Package extract converts uploaded resume documents into plain text.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/roshan-Kawale/AI-Resume-Parser/internal/domain"
)

// PDF extracts plain text from resume documents.
type PDF struct{}

// NewPDF creates a PDF text extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// Extract parses the PDF byte stream and returns its plain text. The result
// may be empty for scanned/image-only documents; an unparsable stream maps
// to domain.ErrExtraction.
func (e *PDF) Extract(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty document: %w", domain.ErrExtraction)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %v: %w", err, domain.ErrExtraction)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}
