// internal/infrastructure/logger/logger_test.go
package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecord(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	return record
}

func TestJSONLogger(t *testing.T) {
	t.Run("Writes one JSON record per line", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewJSONLogger(&buf, DebugLevel)

		log.Info("Something happened", map[string]interface{}{"count": 3})

		line := strings.TrimSpace(buf.String())
		record := decodeRecord(t, line)
		assert.Equal(t, "INFO", record["level"])
		assert.Equal(t, "Something happened", record["message"])
		assert.Equal(t, float64(3), record["count"])
		assert.NotEmpty(t, record["timestamp"])
	})

	t.Run("Suppresses records below the minimum level", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewJSONLogger(&buf, WarnLevel)

		log.Debug("hidden", nil)
		log.Info("hidden", nil)
		log.Warn("visible", nil)
		log.Error("visible", nil)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "WARN", decodeRecord(t, lines[0])["level"])
		assert.Equal(t, "ERROR", decodeRecord(t, lines[1])["level"])
	})

	t.Run("WithFields carries fields on every record", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewJSONLogger(&buf, InfoLevel).WithFields(map[string]interface{}{
			"request_id": "abc-123",
		})

		log.Info("first", nil)
		log.Info("second", map[string]interface{}{"extra": true})

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			assert.Equal(t, "abc-123", decodeRecord(t, line)["request_id"])
		}
		assert.Equal(t, true, decodeRecord(t, lines[1])["extra"])
	})

	t.Run("Per-call fields win over carried fields", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewJSONLogger(&buf, InfoLevel).WithFields(map[string]interface{}{
			"source": "carried",
		})

		log.Info("msg", map[string]interface{}{"source": "call"})

		record := decodeRecord(t, strings.TrimSpace(buf.String()))
		assert.Equal(t, "call", record["source"])
	})

	t.Run("Fatal logs then exits", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewJSONLogger(&buf, InfoLevel)

		exitCode := -1
		log.exit = func(code int) { exitCode = code }

		log.Fatal("going down", nil)

		assert.Equal(t, 1, exitCode)
		record := decodeRecord(t, strings.TrimSpace(buf.String()))
		assert.Equal(t, "FATAL", record["level"])
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel(" WARNING "))
	assert.Equal(t, ErrorLevel, ParseLevel("Error"))
	assert.Equal(t, FatalLevel, ParseLevel("FATAL"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
	assert.Equal(t, InfoLevel, ParseLevel("nonsense"))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "LEVEL(42)", Level(42).String())
}
