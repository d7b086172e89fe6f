package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultWriter(t *testing.T) {
	cfg := Config{
		Level:  slog.LevelInfo,
		Format: "json",
	}

	logger := New(cfg)
	require.NotNil(t, logger)
	require.NotNil(t, logger.Logger)
}

func TestNew_CustomWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:  slog.LevelInfo,
		Format: "json",
		Writer: &buf,
	}

	logger := New(cfg)
	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "\"level\":\"INFO\"")
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantFormat  string
	}{
		{
			name:        "production uses json",
			environment: "production",
			wantFormat:  "json",
		},
		{
			name:        "development uses pretty",
			environment: "development",
			wantFormat:  "pretty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := Config{
				Level:       slog.LevelInfo,
				Environment: tt.environment,
				Writer:      &buf,
			}

			logger := New(cfg)
			logger.Info("test")

			output := buf.String()
			if tt.wantFormat == "json" {
				assert.Contains(t, output, `"msg":"test"`)
			} else {
				// Pretty format carries ANSI codes around the message
				assert.Contains(t, output, "test")
				assert.Contains(t, output, colorReset)
			}
		})
	}
}

func TestNew_ExplicitFormatWinsOverEnvironment(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:       slog.LevelInfo,
		Format:      "json",
		Environment: "development",
		Writer:      &buf,
	}

	logger := New(cfg)
	logger.Info("test")

	assert.Contains(t, buf.String(), `"msg":"test"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // defaults to info
		{"", slog.LevelInfo},        // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name         string
		handlerLevel slog.Level
		checkLevel   slog.Level
		wantEnabled  bool
	}{
		{
			name:         "debug handler allows debug",
			handlerLevel: slog.LevelDebug,
			checkLevel:   slog.LevelDebug,
			wantEnabled:  true,
		},
		{
			name:         "info handler blocks debug",
			handlerLevel: slog.LevelInfo,
			checkLevel:   slog.LevelDebug,
			wantEnabled:  false,
		},
		{
			name:         "info handler allows error",
			handlerLevel: slog.LevelInfo,
			checkLevel:   slog.LevelError,
			wantEnabled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, &slog.HandlerOptions{
				Level: tt.handlerLevel,
			})

			enabled := handler.Enabled(context.Background(), tt.checkLevel)
			assert.Equal(t, tt.wantEnabled, enabled)
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	logger := slog.New(handler)
	logger.Info("tagged file", "path", "track.mp3", "artist", "value")

	output := buf.String()
	assert.Contains(t, output, "tagged file")
	assert.Contains(t, output, "path=track.mp3")
	assert.Contains(t, output, "artist=value")
	assert.Contains(t, output, "INF")
}

func TestPrettyHandler_LevelFormatting(t *testing.T) {
	tests := []struct {
		level      slog.Level
		wantString string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantString, func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})

			logger := slog.New(handler)
			logger.Log(context.Background(), tt.level, "test")

			assert.Contains(t, buf.String(), tt.wantString)
		})
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	handlerWithAttrs := handler.WithAttrs([]slog.Attr{
		slog.String("run_id", "run-abc"),
		slog.Int("workers", 4),
	})

	logger := slog.New(handlerWithAttrs)
	logger.Info("tagging run started")

	output := buf.String()
	assert.Contains(t, output, "run_id=run-abc")
	assert.Contains(t, output, "workers=4")
	assert.Contains(t, output, "tagging run started")
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	// Empty group returns the same handler
	handlerWithEmptyGroup := handler.WithGroup("")
	assert.Equal(t, handler, handlerWithEmptyGroup)

	handlerWithGroup := handler.WithGroup("run")
	assert.NotEqual(t, handler, handlerWithGroup)

	logger := slog.New(handlerWithGroup)
	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	})

	logger := slog.New(handler)
	logger.Info("test message")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		level     slog.Level
		wantStr   string
		wantColor string
	}{
		{slog.LevelDebug, "DBG", colorMagenta},
		{slog.LevelInfo, "INF", colorGreen},
		{slog.LevelWarn, "WRN", colorYellow},
		{slog.LevelError, "ERR", colorRed},
	}

	for _, tt := range tests {
		t.Run(tt.wantStr, func(t *testing.T) {
			str, color := formatLevel(tt.level)
			assert.Equal(t, tt.wantStr, str)
			assert.Equal(t, tt.wantColor, color)
		})
	}
}

func TestFormatValue(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		value slog.Value
		want  string
	}{
		{
			name:  "string",
			value: slog.StringValue("test"),
			want:  "test",
		},
		{
			name:  "time",
			value: slog.TimeValue(now),
			want:  now.Format(time.RFC3339),
		},
		{
			name:  "duration",
			value: slog.DurationValue(5 * time.Second),
			want:  "5s",
		},
		{
			name:  "int",
			value: slog.IntValue(42),
			want:  "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatValue(tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		Level:  slog.LevelWarn,
		Format: "json",
		Writer: &buf,
	}

	logger := New(cfg)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestNewPrettyHandler_NilOptions(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, nil)

	require.NotNil(t, handler)
	require.NotNil(t, handler.opts)

	logger := slog.New(handler)
	logger.Info("test")

	assert.Contains(t, buf.String(), "test")
}

func TestPrettyHandler_NoAttributes(t *testing.T) {
	var buf bytes.Buffer
	handler := NewPrettyHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	logger := slog.New(handler)
	logger.Info("simple message")

	output := buf.String()
	assert.Contains(t, output, "simple message")
	assert.Contains(t, output, "INF")
	parts := strings.Split(output, "simple message")
	if len(parts) > 1 {
		assert.NotContains(t, parts[1], "=")
	}
}
