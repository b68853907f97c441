package acquire

import (
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
)

// ErrUnsupportedFormat is returned when no registered format can read a document
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format converts raw document bytes into plain text
type Format interface {
	// Name returns the format name
	Name() string

	// Extensions lists lowercase file extensions, including the dot
	Extensions() []string

	// ContentTypes lists media types the format reads
	ContentTypes() []string

	// Sniff reports whether the bytes look like this format
	Sniff(data []byte) bool

	// Extract returns the document text
	Extract(data []byte) (string, error)
}

// Registry manages document formats
type Registry struct {
	formats []Format
}

// NewRegistry creates a registry with the built-in formats
func NewRegistry() *Registry {
	registry := &Registry{
		formats: make([]Format, 0),
	}

	// Sniffing runs in registration order; text must stay last
	registry.Register(NewPDFFormat())
	registry.Register(NewHTMLFormat())
	registry.Register(NewTextFormat())

	return registry
}

// Register registers a new format
func (r *Registry) Register(format Format) {
	r.formats = append(r.formats, format)
}

// Find picks a format for a document. The file extension of name wins,
// then the declared content type, then content sniffing.
func (r *Registry) Find(name string, contentType string, data []byte) (Format, error) {
	if ext := strings.ToLower(path.Ext(name)); ext != "" {
		for _, format := range r.formats {
			if contains(format.Extensions(), ext) {
				return format, nil
			}
		}
	}

	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			for _, format := range r.formats {
				if contains(format.ContentTypes(), mediaType) {
					return format, nil
				}
			}
		}
	}

	for _, format := range r.formats {
		if format.Sniff(data) {
			return format, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
