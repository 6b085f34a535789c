package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger(t *testing.T) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return &Logger{zap: zap.New(core)}, logs
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, NewDefaultConfig().Validate())
	assert.NoError(t, Config{Level: "debug", Format: "json"}.Validate())
	assert.Error(t, Config{Level: "loud", Format: "json"}.Validate())
	assert.Error(t, Config{Level: "info", Format: "xml"}.Validate())
}

func TestNew(t *testing.T) {
	logger, err := New(Config{Level: "warn", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = New(Config{Level: "bogus", Format: "json"})
	require.Error(t, err)
}

func TestLogger_AttachesContextFields(t *testing.T) {
	logger, logs := observedLogger(t)

	ctx := WithUserID(context.Background(), "user-42")
	ctx = WithRequestID(ctx, "req-7")
	logger.Info(ctx, "profile built")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "user-42", fields["user.id"])
	assert.Equal(t, "req-7", fields["request.id"])
}

func TestLogger_PlainContext(t *testing.T) {
	logger, logs := observedLogger(t)

	logger.Warn(context.Background(), "no correlation")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].ContextMap())
}

func TestLogger_WithAndNamed(t *testing.T) {
	logger, logs := observedLogger(t)

	logger.With(zap.String("component", "store")).Named("ingest").
		Info(context.Background(), "appended")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ingest", entries[0].LoggerName)
	assert.Equal(t, "store", entries[0].ContextMap()["component"])
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()), "absent logger falls back to nop")

	logger := NewNop()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestContextFields_Accessors(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, UserIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(ctx))

	ctx = WithUserID(ctx, "user-1")
	assert.Equal(t, "user-1", UserIDFromContext(ctx))
}
