// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package trace extracts a jaeger trace/span id pair from a context so
// that pkg/model/rest can stamp outbound responses with it.
package trace

import (
	"context"

	"github.com/opentracing/opentracing-go"
	jaeger "github.com/uber/jaeger-client-go"
)

// SpanFromContext returns the active opentracing span carried by ctx, if any.
func SpanFromContext(ctx context.Context) (opentracing.Span, bool) {
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return nil, false
	}
	return span, true
}

// GetTraceIDAndSpanID extracts jaeger identifiers from span. The bool
// return is false when span was not produced by the jaeger tracer
// (e.g. a noop span in tests), in which case the ids are meaningless.
func GetTraceIDAndSpanID(span opentracing.Span) (traceID string, spanID string, ok bool) {
	sc, isJaeger := span.Context().(jaeger.SpanContext)
	if !isJaeger {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
