package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jmallory/taskdeck-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"mixed case", "INFO"},
		{"invalid level falls back to info", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.Same(t, log, slog.Default())
		})
	}
}

func TestContextPlumbing(t *testing.T) {
	t.Parallel()

	base := slog.Default()
	tagged := base.With("component", "test")

	t.Run("FromContext falls back to default", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("WithLogger round trip", func(t *testing.T) {
		t.Parallel()

		ctx := WithLogger(context.Background(), tagged)
		assert.Same(t, tagged, FromContext(ctx))
	})

	t.Run("FromContextOrDefault prefers context logger", func(t *testing.T) {
		t.Parallel()

		ctx := WithLogger(context.Background(), tagged)
		assert.Same(t, tagged, FromContextOrDefault(ctx, base))
		assert.Same(t, base, FromContextOrDefault(context.Background(), base))
		assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
	})
}
