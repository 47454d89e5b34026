package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-store/internal/pkg/config"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, lv, err := New(&buf, config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "id", "p1")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "p1", line["id"])

	buf.Reset()
	lv.Set(slog.LevelDebug)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(&buf, config.LogConfig{Level: "info"})
	require.NoError(t, err)

	logger.Info("catalog loaded", "count", 3)
	assert.Contains(t, buf.String(), "msg=\"catalog loaded\" count=3")
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New(&bytes.Buffer{}, config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)

	_, _, err = New(&bytes.Buffer{}, config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
