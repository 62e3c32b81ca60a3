package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	testData := map[string]struct {
		level    string
		expected slog.Level
	}{
		"debug":   {"debug", slog.LevelDebug},
		"info":    {"info", slog.LevelInfo},
		"warn":    {"warn", slog.LevelWarn},
		"warning": {"WARNING", slog.LevelWarn},
		"error":   {" error ", slog.LevelError},
		"unknown": {"verbose", slog.LevelInfo},
		"empty":   {"", slog.LevelInfo},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, ParseLogLevel(td.level))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "info", FormatText)
		require.Nil(t, err)

		logger.Debug("hidden")
		logger.Info("loaded artifacts", "trees", 2)
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=\"loaded artifacts\" trees=2")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(&buf, "debug", FormatJSON)
		require.Nil(t, err)

		logger.Debug("predicted loan amount", "prediction", 470.0)

		var record map[string]any
		require.Nil(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "DEBUG", record["level"])
		assert.Equal(t, "predicted loan amount", record["msg"])
		assert.Equal(t, 470.0, record["prediction"])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewLogger(&bytes.Buffer{}, "info", "xml")
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestInit(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	require.Nil(t, Init("warn", FormatJSON))
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))

	assert.ErrorIs(t, Init("info", "xml"), ErrUnknownFormat)
}
