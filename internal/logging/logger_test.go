package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := initLogger(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", "tibo", "RATU")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "RATU", entry["tibo"])
	assert.Same(t, logger, Logger)
}

func TestInitLoggerTextDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := initLogger(&buf, "bogus", "text")

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
