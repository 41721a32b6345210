package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggersAreUsable(t *testing.T) {
	assert.NotPanics(t, func() {
		AppLogger.Info("noop")
		LogDuration(context.Background(), "noop")()
	})
}

func TestInitLogger_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	InitLogger(dir)
	defer Sync()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NotNil(t, TimerLogger)
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "req-42")
	assert.Equal(t, "req-42", TraceID(ctx))
	assert.Equal(t, "", TraceID(context.Background()))
}
