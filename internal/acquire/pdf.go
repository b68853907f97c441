package acquire

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFFormat extracts page text from PDF documents
type PDFFormat struct{}

// NewPDFFormat creates a new PDF format
func NewPDFFormat() *PDFFormat {
	return &PDFFormat{}
}

// Name returns the format name
func (f *PDFFormat) Name() string {
	return "pdf"
}

// Extensions lists the PDF file extension
func (f *PDFFormat) Extensions() []string {
	return []string{".pdf"}
}

// ContentTypes lists the PDF media type
func (f *PDFFormat) ContentTypes() []string {
	return []string{"application/pdf"}
}

// Sniff checks for the PDF header
func (f *PDFFormat) Sniff(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// Extract returns the text of every page in order, each followed by a
// newline. Pages without text contribute nothing.
func (f *PDFFormat) Extract(data []byte) (text string, err error) {
	// The reader panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if pageText == "" {
			continue
		}

		buf.WriteString(pageText)
		buf.WriteString("\n")
	}

	return buf.String(), nil
}
