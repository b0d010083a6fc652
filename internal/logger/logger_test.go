package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/sakewinkel/console/internal/config"
)

func TestBuild_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{level: "debug", want: zapcore.DebugLevel},
		{level: "WARN", want: zapcore.WarnLevel},
		{level: "verbose", want: zapcore.InfoLevel},
		{level: "", want: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := Build(config.Observability{LogLevel: tt.level, ServiceName: "console-tracking"})
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestBuild_ConsoleEncoding(t *testing.T) {
	logger, err := Build(config.Observability{LogLevel: "info", LogEncoding: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
