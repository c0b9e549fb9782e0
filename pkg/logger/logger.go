// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package logger declares the Logger interface every logging core
// (currently only logrus) implements, and that pkg/logger/log exposes
// as a process-wide singleton.
package logger

import (
	"context"

	"github.com/repofleet/coordinator/pkg/logger/conf"
)

// Logger is a structured, leveled logger that carries request context
// (trace/span ids, hoster prefix, ...) across a WithContext call.
type Logger interface {
	Log(level conf.Level, args ...interface{})
	Logf(level conf.Level, format string, args ...interface{})

	// WithContext returns a derived Logger that annotates every entry
	// with fields pulled from ctx (currently none are extracted, but
	// this is the seam gin's request context and the trace package
	// hook into).
	WithContext(ctx context.Context) Logger
	// WithField returns a derived Logger with one extra structured field.
	WithField(key string, value interface{}) Logger

	Trace(args ...interface{})
	Tracef(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}
