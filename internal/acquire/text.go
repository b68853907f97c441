package acquire

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned for text documents that are not valid UTF-8
var ErrInvalidEncoding = errors.New("document is not valid UTF-8")

// TextFormat reads plain text documents
type TextFormat struct{}

// NewTextFormat creates a new plain text format
func NewTextFormat() *TextFormat {
	return &TextFormat{}
}

// Name returns the format name
func (f *TextFormat) Name() string {
	return "text"
}

// Extensions lists plain text file extensions
func (f *TextFormat) Extensions() []string {
	return []string{".txt", ".text", ".md"}
}

// ContentTypes lists plain text media types
func (f *TextFormat) ContentTypes() []string {
	return []string{"text/plain", "text/markdown"}
}

// Sniff accepts anything net/http recognises as plain text
func (f *TextFormat) Sniff(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return strings.HasPrefix(http.DetectContentType(data), "text/plain")
}

// Extract decodes the document as UTF-8. A byte order mark selects UTF-16
// or is stripped for UTF-8; anything else must already be valid UTF-8.
func (f *TextFormat) Extract(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}

	if !utf8.Valid(decoded) {
		return "", ErrInvalidEncoding
	}

	return string(decoded), nil
}
