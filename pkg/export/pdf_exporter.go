package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const pdfFontFamily = "ExportFont"

// ErrFontRequired встроенные шрифты PDF не содержат кириллицы, без TTF текст выйдет нечитаемым
var ErrFontRequired = errors.New("export: pdf requires a unicode ttf font")

// PDFExporter выгружает Dataset в PDF-таблицу шрифтом из fontPath
type PDFExporter struct {
	title    string
	fontPath string
}

// NewPDFExporter создает PDF exporter
func NewPDFExporter(title, fontPath string) *PDFExporter {
	return &PDFExporter{title: title, fontPath: fontPath}
}

// Render рисует таблицу с заголовком в альбомной ориентации A4
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	if e.fontPath == "" {
		return nil, ErrFontRequired
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	pdf.AddUTF8Font(pdfFontFamily, "", e.fontPath)
	pdf.AddUTF8Font(pdfFontFamily, "B", e.fontPath)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load pdf font: %w", err)
	}

	pdf.AddPage()

	if e.title != "" {
		pdf.SetFont(pdfFontFamily, "B", 14)
		pdf.CellFormat(0, 10, e.title, "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(data.Headers))

	pdf.SetFont(pdfFontFamily, "B", 9)
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFontFamily, "", 8)
	for _, record := range data.Records() {
		for _, value := range record {
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (e *PDFExporter) Extension() string {
	return "pdf"
}
