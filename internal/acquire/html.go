package acquire

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

// HTMLFormat extracts visible text from HTML documents, keeping block
// elements on their own lines so numbered headings still start a line
type HTMLFormat struct{}

// NewHTMLFormat creates a new HTML format
func NewHTMLFormat() *HTMLFormat {
	return &HTMLFormat{}
}

// Name returns the format name
func (f *HTMLFormat) Name() string {
	return "html"
}

// Extensions lists HTML file extensions
func (f *HTMLFormat) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// ContentTypes lists HTML media types
func (f *HTMLFormat) ContentTypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Sniff uses the net/http content sniffer
func (f *HTMLFormat) Sniff(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return strings.HasPrefix(http.DetectContentType(data), "text/html")
}

// Extract parses the document and returns its visible text
func (f *HTMLFormat) Extract(data []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	return extractVisibleText(doc), nil
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		block := false
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head", "template":
				return
			case "p", "div", "section", "article", "li", "tr", "br",
				"h1", "h2", "h3", "h4", "h5", "h6", "pre", "blockquote":
				block = true
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if block {
			buf.WriteString("\n")
		}
	}

	walk(n)
	return normalizeLines(buf.String())
}

// normalizeLines trims every line and drops blank ones
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
