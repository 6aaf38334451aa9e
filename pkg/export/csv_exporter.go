package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// utf8BOM нужен, чтобы Excel корректно открывал кириллицу
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter выгружает Dataset в CSV
type CSVExporter struct {
	comma rune
}

// NewCSVExporter создает CSV exporter
// Разделитель ';' - его ожидает Excel в русской локали
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{comma: ';'}
}

// Render кодирует dataset в CSV
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}

	buf := &bytes.Buffer{}
	buf.Write(utf8BOM)

	writer := csv.NewWriter(buf)
	writer.Comma = e.comma

	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	if err := writer.WriteAll(data.Records()); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}

	return buf.Bytes(), nil
}

// ContentType MIME тип результата
func (e *CSVExporter) ContentType() string {
	return "text/csv; charset=utf-8"
}

// Extension расширение файла
func (e *CSVExporter) Extension() string {
	return "csv"
}
