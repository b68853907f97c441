package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/clausewise/internal/model"
)

// badgeColors is the background palette for category badges
var badgeColors = map[model.Category]string{
	model.CategoryConfidentiality:  "#dbeafe",
	model.CategoryTermination:      "#fef3c7",
	model.CategoryIndemnity:        "#fee2e2",
	model.CategoryLiability:        "#fce7f3",
	model.CategoryArbitration:      "#d1fae5",
	model.CategoryWaiverAssignment: "#e0f2fe",
	model.CategoryNone:             "#e5e7eb",
}

const (
	badgeForeground = "#111827"
	ruleWidth       = 60
)

// WriteText prints the clause listing: a count line, then each clause
// with its flag badges, separated by rules
func (r *Renderer) WriteText(w io.Writer, result *model.Result) error {
	lg := lipgloss.NewRenderer(w)
	heading := lg.NewStyle().Bold(true)
	rule := lg.NewStyle().Faint(true).Render(strings.Repeat("─", ruleWidth))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Extracted %d clauses.\n", len(result.Clauses))

	for _, c := range result.Clauses {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s %s\n", heading.Render(fmt.Sprintf("Clause %d:", c.Index)), c.Text)
		fmt.Fprintf(&sb, "Flags: %s\n", r.badges(lg, c.Labels()))
		sb.WriteString(rule)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// badges renders category labels as coloured badges, or bracketed labels
// when colour is off
func (r *Renderer) badges(lg *lipgloss.Renderer, labels []model.Category) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		if !r.color {
			parts[i] = "[" + string(label) + "]"
			continue
		}
		parts[i] = lg.NewStyle().
			Background(lipgloss.Color(badgeColors[label])).
			Foreground(lipgloss.Color(badgeForeground)).
			Padding(0, 1).
			Render(string(label))
	}
	return strings.Join(parts, " ")
}

// WritePretty renders the Markdown report for the terminal
func (r *Renderer) WritePretty(w io.Writer, result *model.Result) error {
	style := glamour.WithAutoStyle()
	if !r.color {
		style = glamour.WithStandardStyle("notty")
	}

	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := tr.Render(r.Markdown(result))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
