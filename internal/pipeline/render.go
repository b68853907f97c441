package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/clausewise/internal/classify"
	"github.com/ppiankov/clausewise/internal/model"
)

// Format selects how a result is written to the terminal
type Format string

const (
	FormatText     Format = "text"     // Plain listing with colour badges
	FormatJSON     Format = "json"     // Machine-readable result
	FormatMarkdown Format = "markdown" // Raw Markdown report
	FormatPretty   Format = "pretty"   // Markdown report styled for the terminal
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatMarkdown, FormatPretty:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, markdown or pretty)", name)
	}
}

// Renderer writes results as text, JSON, Markdown or PDF
type Renderer struct {
	color      bool
	classifier *classify.Classifier
}

// NewRenderer creates a renderer. Color only affects terminal output.
func NewRenderer(color bool) *Renderer {
	return &Renderer{
		color:      color,
		classifier: classify.NewClassifier(),
	}
}

// Write renders the result to w in the given format
func (r *Renderer) Write(w io.Writer, result *model.Result, format Format) error {
	switch format {
	case FormatText, "":
		return r.WriteText(w, result)
	case FormatJSON:
		return r.WriteJSON(w, result)
	case FormatMarkdown:
		_, err := io.WriteString(w, r.Markdown(result))
		return err
	case FormatPretty:
		return r.WritePretty(w, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// jsonClause adds display labels next to the stored categories
type jsonClause struct {
	model.Clause
	Labels []model.Category `json:"labels"`
}

type jsonResult struct {
	*model.Result
	Clauses []jsonClause `json:"clauses"`
}

// WriteJSON writes the result as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, result *model.Result) error {
	view := jsonResult{
		Result:  result,
		Clauses: make([]jsonClause, len(result.Clauses)),
	}
	for i, c := range result.Clauses {
		view.Clauses[i] = jsonClause{Clause: c, Labels: c.Labels()}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(view)
}

// RenderJSON writes the result as JSON to path
func (r *Renderer) RenderJSON(result *model.Result, path string) error {
	var buf bytes.Buffer
	if err := r.WriteJSON(&buf, result); err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// RenderMarkdown writes the Markdown report to path
func (r *Renderer) RenderMarkdown(result *model.Result, path string) error {
	return writeFile(path, []byte(r.Markdown(result)))
}

// Markdown builds the Markdown report
func (r *Renderer) Markdown(result *model.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Clause Extraction: %s\n\n", result.Source.Subject)

	fmt.Fprintf(&sb, "- **Run:** `%s`\n", result.ID)
	fmt.Fprintf(&sb, "- **Created:** %s\n", result.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if result.Source.Path != "" {
		fmt.Fprintf(&sb, "- **Document:** `%s` (%s)\n", result.Source.Path, result.Source.Format)
	}
	if result.Source.URL != "" {
		fmt.Fprintf(&sb, "- **URL:** <%s> (%s)\n", result.Source.URL, result.Source.Format)
	}
	if result.Source.Sample {
		sb.WriteString("- **Text:** built-in sample\n")
	} else if result.Source.Pasted {
		sb.WriteString("- **Text:** pasted text appended\n")
	}
	fmt.Fprintf(&sb, "- **Clauses:** %d (%d flagged)\n\n", result.Summary.Clauses, result.Summary.Flagged)

	sb.WriteString("## Category Summary\n\n")
	sb.WriteString("| Category | Clauses |\n")
	sb.WriteString("|---|---:|\n")
	for _, cc := range result.Summary.Categories {
		fmt.Fprintf(&sb, "| %s | %d |\n", cc.Category, cc.Count)
	}
	sb.WriteString("\n")

	sb.WriteString("## Clauses\n\n")
	if len(result.Clauses) == 0 {
		sb.WriteString("_No clauses extracted._\n\n")
	}
	for _, c := range result.Clauses {
		fmt.Fprintf(&sb, "### Clause %d\n\n", c.Index)
		for _, line := range strings.Split(c.Text, "\n") {
			fmt.Fprintf(&sb, "> %s\n", strings.TrimSpace(line))
		}
		sb.WriteString("\n")

		fmt.Fprintf(&sb, "**Flags:** %s\n\n", joinLabels(c.Labels(), ", "))

		if c.Flagged() {
			hits := r.classifier.Explain(c.Text)
			sb.WriteString("Matched terms:\n\n")
			for _, cat := range c.Categories {
				fmt.Fprintf(&sb, "- %s: %s\n", cat, quoteTerms(hits[cat]))
			}
			sb.WriteString("\n")
		}
	}

	if len(result.Summary.Signals) > 0 {
		sb.WriteString("## Signals\n\n")
		for _, s := range result.Summary.Signals {
			fmt.Fprintf(&sb, "- **%s** `%s`: %s\n", s.Severity, s.Type, s.Description)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString("_Categories come from keyword matching only. They are not an interpretation of the clause._\n")

	return sb.String()
}

func joinLabels(labels []model.Category, sep string) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, sep)
}

func quoteTerms(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = "`" + t + "`"
	}
	return strings.Join(quoted, ", ")
}

// writeFile writes data, creating the parent directory if needed
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
