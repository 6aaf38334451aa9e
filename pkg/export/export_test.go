package export

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"ID", "Name", "Notes"},
		Rows: []map[string]string{
			{"ID": "1", "Name": "Ivanova", "Notes": "first; second"},
			{"ID": "2", "Name": "Petrov"},
		},
	}
}

func TestDatasetRecordsFollowHeaders(t *testing.T) {
	records := sampleDataset().Records()
	assert.Equal(t, [][]string{
		{"1", "Ivanova", "first; second"},
		{"2", "Petrov", ""},
	}, records)
}

func TestCSVExporter(t *testing.T) {
	e := NewCSVExporter()

	out, err := e.Render(sampleDataset())
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, utf8BOM))
	body := string(out[len(utf8BOM):])
	assert.Equal(t, "ID;Name;Notes\n1;Ivanova;\"first; second\"\n2;Petrov;\n", body)
	assert.Equal(t, "csv", e.Extension())

	_, err = e.Render(Dataset{})
	assert.Error(t, err)
}

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter().Render(sampleDataset())
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(out, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Petrov", rows[1]["Name"])

	out, err = NewJSONExporter().Render(Dataset{Headers: []string{"ID"}})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestPDFExporterRequiresUnicodeFont(t *testing.T) {
	e := NewPDFExporter("Заявки", "")

	out, err := e.Render(Dataset{
		Headers: []string{"Учреждение"},
		Rows:    []map[string]string{{"Учреждение": "Школа №1"}},
	})
	assert.ErrorIs(t, err, ErrFontRequired)
	assert.Nil(t, out)
	assert.Equal(t, "application/pdf", e.ContentType())
	assert.Equal(t, "pdf", e.Extension())
}

func TestPDFExporterMissingFontFile(t *testing.T) {
	_, err := NewPDFExporter("Bookings", "/nonexistent/font.ttf").Render(sampleDataset())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFontRequired)

	_, err = NewPDFExporter("Bookings", "/nonexistent/font.ttf").Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterWithUnicodeFont(t *testing.T) {
	var fontPath string
	for _, candidate := range []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
	} {
		if _, err := os.Stat(candidate); err == nil {
			fontPath = candidate
			break
		}
	}
	if fontPath == "" {
		t.Skip("DejaVuSans.ttf not installed")
	}

	out, err := NewPDFExporter("Заявки на экскурсии", fontPath).Render(Dataset{
		Headers: []string{"Учреждение", "Статус"},
		Rows:    []map[string]string{{"Учреждение": "Школа №1", "Статус": "Подтверждена"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
