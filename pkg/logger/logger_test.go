package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "warn")
	require.NoError(t, err)

	log.Info("booking %d admitted", 1)
	log.Warn("date %s is full", "2026-06-03")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.NotContains(t, content, "admitted")
	assert.Contains(t, content, `"msg":"date 2026-06-03 is full"`)
	assert.Contains(t, content, `"level":"warn"`)
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNopLogger(t *testing.T) {
	log := NewNop()
	log.Error("ignored %v", "value")
	assert.NoError(t, log.Close())
}
