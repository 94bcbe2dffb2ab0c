package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedTracer(t *testing.T) (*Tracer, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return New("test", zap.New(core)), logs
}

func TestStartSpanPropagation(t *testing.T) {
	tracer, _ := newObservedTracer(t)
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	child, childCtx := tracer.StartSpan(ctx, "child")

	assert.NotEmpty(t, root.TraceID)
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.Empty(t, root.ParentID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))

	got, ok := FromContext(childCtx)
	require.True(t, ok)
	assert.Same(t, tracer, got)
}

func TestTraceSubmitsChildSpan(t *testing.T) {
	tracer, logs := newObservedTracer(t)

	_, ctx := tracer.StartSpan(context.Background(), "root")
	err := Trace(ctx, "work", func(ctx context.Context, span *Span) error {
		span.SetTag("method", "quad")
		return errors.New("failed")
	})
	require.Error(t, err)
	tracer.Close()

	entries := logs.FilterMessage("span completed with error").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "work", fields["operation"])
	assert.Equal(t, "quad", fields["method"])
	assert.Equal(t, "failed", fields["error"])
}

func TestTraceWithoutTracer(t *testing.T) {
	called := false
	err := Trace(context.Background(), "work", func(ctx context.Context, span *Span) error {
		called = true
		span.SetTag("ok", "true")
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestSubmitAfterClose(t *testing.T) {
	tracer, logs := newObservedTracer(t)
	tracer.Close()
	tracer.Close()

	span, _ := tracer.StartSpan(context.Background(), "late")
	span.Finish()
	tracer.Submit(span)
	assert.Zero(t, logs.Len())
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer, logs := newObservedTracer(t)

	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/ping", func(c *gin.Context) {
		assert.Equal(t, TraceID("trace-1"), GetTraceID(c.Request.Context()))
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceHeader, "trace-1")
	req.Header.Set(SpanHeader, "parent-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	tracer.Close()

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace-1", w.Header().Get(TraceHeader))
	assert.NotEmpty(t, w.Header().Get(SpanHeader))

	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET /ping", fields["operation"])
	assert.Equal(t, "parent-1", fields["parent_id"])
	assert.Equal(t, "200", fields["http.status"])
}
