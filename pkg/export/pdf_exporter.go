package export

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const pdfFontFamily = "DejaVu"

// DejaVu covers Cyrillic; the core PDF fonts stop at cp1252.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	dejaVuRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	dejaVuBold []byte
)

// PDFExporter renders datasets into a single titled table.
type PDFExporter struct {
	compress bool
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{compress: true}
}

// Render creates a PDF document with the dataset title, notes and table body.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compress)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", dejaVuRegular)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", dejaVuBold)
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont(pdfFontFamily, "B", 14)
		pdf.CellFormat(0, 10, data.Title, "", 1, "C", false, 0, "")
	}
	if len(data.Notes) > 0 {
		pdf.SetFont(pdfFontFamily, "", 9)
		for _, note := range data.Notes {
			pdf.CellFormat(0, 6, note, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	pdf.SetFont(pdfFontFamily, "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFontFamily, "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
