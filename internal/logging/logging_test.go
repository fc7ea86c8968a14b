package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(FormatJSON, "debug", &buf)
	require.NoError(t, err)

	log.Debug("evicted entry", "cache", "users")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "evicted entry", rec["msg"])
	assert.Equal(t, "users", rec["cache"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNew_LevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(FormatText, "WARN", &buf)
	require.NoError(t, err)

	log.Info("dropped")
	assert.Empty(t, buf.String())
	log.Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestNew_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := New(FormatText, "loud", nil)
	assert.Error(t, err)

	_, err = New("xml", "info", nil)
	assert.Error(t, err)
}
