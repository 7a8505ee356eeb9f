package xq

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*bytes.Buffer, *slog.Logger) {
	var buf bytes.Buffer
	return &buf, slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestWithTraceLogger(t *testing.T) {
	buf, logger := newBufferLogger()
	_, other := newBufferLogger()

	ctx := WithTraceLogger(context.Background(), logger)
	ctx = WithTraceLogger(ctx, other)

	getTraceLogFromContext(ctx).Debug("first logger wins")
	if TracingEnabled {
		require.Contains(t, buf.String(), "first logger wins")
	}
}

func TestSpans(t *testing.T) {
	if !TracingEnabled {
		t.Skip("tracing disabled")
	}

	ctx, parent := WithSpan(context.Background(), "outer")
	require.Len(t, parent.ID, 16)
	require.Empty(t, parent.ParentID)
	require.False(t, parent.Start.IsZero())

	_, child := WithSpan(ctx, "inner")
	require.Equal(t, parent.ID, child.ParentID)
	require.NotEqual(t, parent.ID, child.ID)

	buf, logger := newBufferLogger()
	ctx = WithTraceLogger(context.Background(), logger)
	_, span := StartSpan(ctx, "work")
	span.End()

	out := buf.String()
	for _, want := range []string{"START", "END", "span_id", "span_name", "work", "duration"} {
		require.Contains(t, out, want)
	}
}

func TestTraceEventAndError(t *testing.T) {
	buf, logger := newBufferLogger()
	ctx := WithTraceLogger(context.Background(), logger)
	ctx, _ = WithSpan(ctx, "events")

	TraceEvent(ctx, "decoded value", slog.String("format", "yaml"))
	TraceError(ctx, errors.New("boom"), "evaluation failed", slog.Int("index", 3))

	out := buf.String()
	if !TracingEnabled {
		require.Empty(t, out)
		return
	}
	for _, want := range []string{"decoded value", "yaml", "evaluation failed", "boom", "ERROR", "span_id"} {
		require.Contains(t, out, want)
	}
}

func TestTracingToggle(t *testing.T) {
	if !TracingEnabled {
		t.Skip("tracing disabled")
	}
	defer SetTracingEnabled(true)

	buf, logger := newBufferLogger()
	ctx := WithTraceLogger(context.Background(), logger)

	SetTracingEnabled(false)
	TraceEvent(ctx, "hidden")
	require.Empty(t, buf.String())

	SetTracingEnabled(true)
	TraceEvent(ctx, "shown")
	require.Contains(t, buf.String(), "shown")
}

func TestCompileIsTraced(t *testing.T) {
	if !TracingEnabled {
		t.Skip("tracing disabled")
	}

	buf, logger := newBufferLogger()
	ctx := WithTraceLogger(context.Background(), logger)

	_, err := Compile(ctx, ".a")
	require.NoError(t, err)
	require.Contains(t, buf.String(), "xq.Compile")
	require.Contains(t, buf.String(), "compiled query")
}

func TestNullLogger(t *testing.T) {
	ctx := context.Background()
	require.NotNil(t, getTraceLogFromContext(ctx))
	require.NotPanics(t, func() {
		TraceEvent(ctx, "nobody listens")
		TraceError(ctx, errors.New("x"), "nobody listens")
	})
}
