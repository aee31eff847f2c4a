package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "default config", config: nil},
		{name: "json config", config: &Config{Level: "debug", Format: "json"}},
		{name: "console config", config: &Config{Level: "info", Format: "console", Output: io.Discard}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.config))
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	log.Info("gallery listed")

	entry := decode(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "gallery listed", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Output: buf})

	log.With().Str("component", "deletion").Int("objects", 3).Logger().Info("folder removed")

	entry := decode(t, buf)
	assert.Equal(t, "deletion", entry["component"])
	assert.Equal(t, float64(3), entry["objects"])
}

func TestLogger_WarnWith(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "warn", Output: buf})

	log.WarnWith("metadata delete failed", errors.New("connection reset"), map[string]any{
		"folder": "Picnic",
	})

	entry := decode(t, buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "connection reset", entry["error"])
	assert.Equal(t, "Picnic", entry["folder"])
}

func TestLogger_Context(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Output: buf})

	ctx := log.WithContext(context.Background())
	FromContext(ctx).Info("from context")

	assert.Equal(t, "from context", decode(t, buf)["message"])
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFunc  func(*Logger)
		expected bool
	}{
		{"debug level logs debug", "debug", func(l *Logger) { l.Debug("d") }, true},
		{"info level skips debug", "info", func(l *Logger) { l.Debug("d") }, false},
		{"error level logs error", "error", func(l *Logger) { l.Error("e") }, true},
		{"error level skips warn", "error", func(l *Logger) { l.Warn("w") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.logFunc(New(&Config{Level: tt.level, Output: buf}))

			if tt.expected {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestHTTPEvent_LevelByStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "debug", Output: buf})

	log.HTTPEvent(503).Msg("request")
	assert.Equal(t, "error", decode(t, buf)["level"])

	buf.Reset()
	log.HTTPEvent(404).Msg("request")
	assert.Equal(t, "warn", decode(t, buf)["level"])

	buf.Reset()
	log.HTTPEvent(200).Msg("request")
	assert.Equal(t, "info", decode(t, buf)["level"])
}

func BenchmarkLogger_Info(b *testing.B) {
	log := New(&Config{Level: "info", Output: io.Discard})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		log.Info("benchmark message")
	}
}
