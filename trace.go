//go:build !notrace

package xq

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"runtime"
	"time"
)

type traceLoggerKey struct{}
type spanIDKey struct{}

// Span is ended by the code that started it.
type Span interface {
	End()
}

// SpanInfo holds information about a tracing span
type SpanInfo struct {
	ID       string
	ParentID string
	Name     string
	Start    time.Time
	Tags     map[string]string
}

type span struct {
	ctx  context.Context
	info *SpanInfo
}

func (s *span) End() {
	if !TracingEnabled {
		return
	}
	getTraceLogFromContext(s.ctx).Debug("END",
		slog.String("span_id", s.info.ID),
		slog.String("span_name", s.info.Name),
		slog.Duration("duration", time.Since(s.info.Start)),
	)
}

// TracingEnabled turns trace output on and off for the whole process.
var TracingEnabled = true

// the null logger is a logger that does nothing
var nullLogger = slog.New(slog.DiscardHandler)

func SetTracingEnabled(enabled bool) {
	TracingEnabled = enabled
}

// WithTraceLogger attaches tlog to ctx. A logger that is already attached
// is kept.
func WithTraceLogger(ctx context.Context, tlog *slog.Logger) context.Context {
	if _, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger); ok {
		return ctx
	}
	return context.WithValue(ctx, traceLoggerKey{}, tlog)
}

// WithSpan opens a span named name as a child of the span in ctx, if any.
func WithSpan(ctx context.Context, name string) (context.Context, *SpanInfo) {
	info := &SpanInfo{
		ID:    generateSpanID(),
		Name:  name,
		Start: time.Now(),
	}
	if parent, ok := ctx.Value(spanIDKey{}).(*SpanInfo); ok {
		info.ParentID = parent.ID
	}
	return context.WithValue(ctx, spanIDKey{}, info), info
}

// StartSpan is WithSpan plus START/END log records.
func StartSpan(ctx context.Context, spanName string) (context.Context, Span) {
	ctx, info := WithSpan(ctx, spanName)
	if TracingEnabled {
		attrs := []any{
			slog.String("span_id", info.ID),
			slog.String("span_name", info.Name),
		}
		if info.ParentID != "" {
			attrs = append(attrs, slog.String("parent_id", info.ParentID))
		}
		getTraceLogFromContext(ctx).Debug("START", attrs...)
	}
	return ctx, &span{ctx: ctx, info: info}
}

func spanAttrs(ctx context.Context, attrs []slog.Attr) []any {
	args := make([]any, 0, len(attrs)+1)
	if info, ok := ctx.Value(spanIDKey{}).(*SpanInfo); ok {
		args = append(args, slog.String("span_id", info.ID))
	}
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// TraceEvent logs msg at debug level, tagged with the current span.
func TraceEvent(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !TracingEnabled {
		return
	}
	getTraceLogFromContext(ctx).Debug(msg, spanAttrs(ctx, attrs)...)
}

// TraceError logs err at error level, tagged with the current span.
func TraceError(ctx context.Context, err error, msg string, attrs ...slog.Attr) {
	if !TracingEnabled {
		return
	}
	args := spanAttrs(ctx, attrs)
	args = append(args, slog.String("error", err.Error()))
	getTraceLogFromContext(ctx).Error(msg, args...)
}

func getTraceLogFromContext(ctx context.Context) *slog.Logger {
	tlog, ok := ctx.Value(traceLoggerKey{}).(*slog.Logger)
	if !ok {
		return nullLogger
	}
	if pc, _, _, ok := runtime.Caller(2); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			tlog = tlog.With(slog.String("fn", fn.Name()))
		}
	}
	return tlog
}

func generateSpanID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
