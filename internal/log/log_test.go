package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/stylevars/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	original := log.GetLevel()
	defer func() {
		log.SetOutput(nil)
		log.SetLevel(original)
	}()

	t.Run("Warn level skips Debug and Info", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelWarn)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Error level only logs Error", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelError)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.NotContains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Debug level logs everything", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelDebug)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.Contains(t, output, "debug message")
		assert.Contains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	original := log.GetLevel()
	log.SetLevel(log.LevelDebug)
	defer func() {
		log.SetOutput(nil)
		log.SetLevel(original)
	}()

	t.Run("messages carry prefix and level label", func(t *testing.T) {
		buf.Reset()
		log.Warn("skipping <style> block with lang %q", "postcss")

		assert.Equal(t, "[stylevars] WARN: skipping <style> block with lang \"postcss\"\n", buf.String())
	})

	t.Run("each message ends with newline", func(t *testing.T) {
		buf.Reset()
		log.Info("message 1")
		log.Info("message 2")

		lines := strings.Split(buf.String(), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "message 1")
		assert.Contains(t, lines[1], "message 2")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		want  log.Level
		isErr bool
	}{
		{name: "debug", want: log.LevelDebug},
		{name: "INFO", want: log.LevelInfo},
		{name: " warn ", want: log.LevelWarn},
		{name: "error", want: log.LevelError},
		{name: "trace", want: log.LevelWarn, isErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := log.ParseLevel(tt.name)
			if tt.isErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
