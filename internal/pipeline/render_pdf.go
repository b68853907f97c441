package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ppiankov/clausewise/internal/model"
)

// WritePDF renders a printable report: a heading, the category table and
// every clause with its flags
func (r *Renderer) WritePDF(w io.Writer, result *model.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Clause Extraction: "+result.Source.Subject), false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("Clause Extraction: "+result.Source.Subject), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Run %s, %s", result.ID, result.CreatedAt.Format("2006-01-02 15:04 MST")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Extracted %d clauses, %d flagged.", result.Summary.Clauses, result.Summary.Flagged), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Category Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, cc := range result.Summary.Categories {
		pdf.SetFillColor(hexRGB(badgeColors[cc.Category]))
		pdf.CellFormat(60, 6, tr(string(cc.Category)), "1", 0, "L", true, 0, "")
		pdf.CellFormat(20, 6, strconv.Itoa(cc.Count), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Clauses", "", 1, "L", false, 0, "")
	for _, c := range result.Clauses {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Clause %d", c.Index), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(c.Text), "", "L", false)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, tr("Flags: "+joinLabels(c.Labels(), ", ")), "", "L", false)
		pdf.Ln(3)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build PDF: %w", err)
	}
	return pdf.Output(w)
}

// RenderPDF writes the PDF report to path
func (r *Renderer) RenderPDF(result *model.Result, path string) error {
	var buf bytes.Buffer
	if err := r.WritePDF(&buf, result); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// hexRGB parses "#rrggbb" into components, returning white on bad input
func hexRGB(hex string) (int, int, int) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(hex) != 7 {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
