/*
Package tracing provides lightweight request tracing.

# Overview

Spans carry a trace ID and parent span ID through context.Context and the
X-Trace-ID / X-Span-ID headers. Finished spans are handed to a buffered
collector that logs them through zap.

# Usage

	tracer := tracing.New("integrator", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Inside a handler, nested work gets a child span
	err := tracing.Trace(ctx, "integration.quad", func(ctx context.Context, span *tracing.Span) error {
		span.SetTag("method", "quad")
		return run(ctx)
	})
*/
package tracing
