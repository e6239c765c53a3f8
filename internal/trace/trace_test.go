package trace

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledByDefault(t *testing.T) {
	t.Setenv("LOG_TRACING_ENABLED", "")
	require.NoError(t, Init("stockchat-test", nil))
	assert.False(t, Enabled())

	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()
	_, _, ok := GetTraceFields(ctx)
	assert.False(t, ok)
}

func TestEnabledProducesTraceFields(t *testing.T) {
	t.Setenv("LOG_TRACING_ENABLED", "true")
	var buf bytes.Buffer
	require.NoError(t, Init("stockchat-test", &buf))
	t.Cleanup(func() {
		_ = Shutdown(context.Background())
		enabled = false
	})

	ctx, span := StartSpan(context.Background(), "unit")
	traceID, spanID, ok := GetTraceFields(ctx)
	span.End()

	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)
}
