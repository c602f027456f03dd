package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/pkg/logger"
)

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "warn")

	log.Info().Msg("verborgen")
	log.Warn().Int64("document_id", 3).Msg("bestand niet verwijderd")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "bestand niet verwijderd", entry["message"])
	assert.EqualValues(t, 3, entry["document_id"])
}

func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter(&buf, "DEBUG").Component("documenten").Debug().Msg("upload")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "documenten", entry["component"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("niets") })
}
