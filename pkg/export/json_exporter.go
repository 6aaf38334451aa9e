package export

import (
	"encoding/json"
	"fmt"
)

// JSONExporter выгружает Dataset в JSON массив объектов
type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Render кодирует строки dataset в JSON
func (e *JSONExporter) Render(data Dataset) ([]byte, error) {
	rows := data.Rows
	if rows == nil {
		rows = []map[string]string{}
	}
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return out, nil
}

func (e *JSONExporter) ContentType() string {
	return "application/json; charset=utf-8"
}

func (e *JSONExporter) Extension() string {
	return "json"
}
