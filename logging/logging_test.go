package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Format: "json", Level: "debug", Output: filepath.Join(t.TempDir(), "luca.log")}, zapcore.AddSync(&buf))
		assert.NoError(t, err)

		logger.Debug("reloaded", zap.String("file", "ledger.json"))
		assert.NoError(t, logger.Sync())

		var entry map[string]any
		assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "reloaded", entry["msg"].(string))
		assert.Equal(t, "ledger.json", entry["file"].(string))
		assert.Equal(t, "debug", entry["level"].(string))
	})

	t.Run("Logfmt", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Format: "logfmt", Output: filepath.Join(t.TempDir(), "luca.log")}, zapcore.AddSync(&buf))
		assert.NoError(t, err)

		logger.Info("listening", zap.Int("port", 8080))
		assert.Contains(t, buf.String(), "msg=listening")
		assert.Contains(t, buf.String(), "port=8080")
	})

	t.Run("LevelFilters", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "warn", Output: filepath.Join(t.TempDir(), "luca.log")}, zapcore.AddSync(&buf))
		assert.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown")
		assert.False(t, strings.Contains(buf.String(), "hidden"))
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("FileOutput", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "luca.log")
		logger, err := New(Config{Format: "json", Output: path})
		assert.NoError(t, err)

		logger.Info("written")
		assert.NoError(t, logger.Sync())

		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"written"`)
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		_, err := New(Config{Level: "loud"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `invalid log level "loud"`)
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		_, err := New(Config{Format: "xml"})
		assert.EqualError(t, err, `invalid log format "xml"`)
	})
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Error("discarded")
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
