package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup(t *testing.T) {
	restore := zap.ReplaceGlobals(zap.NewNop())
	t.Cleanup(restore)

	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{name: "production", debug: false, wantDebug: false},
		{name: "debug", debug: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Setup(tt.debug, "jdtools", "test")
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Same(t, logger, zap.L())
			assert.Equal(t, tt.wantDebug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
		})
	}
}
