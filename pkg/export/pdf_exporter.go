package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidthLandscape = 277.0
	lineHeight         = 5.0
)

// PDFExporter renders a dataset as a landscape grid, one row per time slot.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF with a title and a table. Cells may hold several lines
// separated by "\n"; each row grows to its tallest cell.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	colWidth := pageWidthLandscape / float64(len(data.Headers))
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(99, 102, 241)
	pdf.SetTextColor(255, 255, 255)
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for _, row := range data.Rows {
		lines := 1
		for _, header := range data.Headers {
			if n := strings.Count(row[header], "\n") + 1; n > lines {
				lines = n
			}
		}
		height := float64(lines) * lineHeight
		x, y := pdf.GetXY()
		for i, header := range data.Headers {
			pdf.Rect(x+float64(i)*colWidth, y, colWidth, height, "D")
			pdf.SetXY(x+float64(i)*colWidth, y)
			pdf.MultiCell(colWidth, lineHeight, tr(row[header]), "", "L", false)
		}
		pdf.SetXY(x, y+height)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
