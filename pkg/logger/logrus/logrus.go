// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package logrus wraps sirupsen/logrus behind the logger.Logger
// interface. It is the only core InitGlobalLogger wires up today; the
// "zap" Core tag is accepted by configuration but not yet backed by an
// implementation (see logger/conf.Core).
package logrus

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/repofleet/coordinator/pkg/logger"
	"github.com/repofleet/coordinator/pkg/logger/conf"
)

type logrusWrapper struct {
	entry *logrus.Entry
}

func levelToLogrus(level conf.Level) logrus.Level {
	switch level {
	case conf.TraceLevel:
		return logrus.TraceLevel
	case conf.DebugLevel:
		return logrus.DebugLevel
	case conf.InfoLevel:
		return logrus.InfoLevel
	case conf.WarnLevel:
		return logrus.WarnLevel
	case conf.ErrorLevel:
		return logrus.ErrorLevel
	case conf.FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// NewLogrusWrapper builds a logger.Logger backed by a fresh logrus.Logger
// configured from cfg.
func NewLogrusWrapper(cfg *conf.LogConfig) (logger.Logger, error) {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetLevel(levelToLogrus(cfg.Level))

	switch cfg.Formatter {
	case conf.JSONFormater:
		base.SetFormatter(&logrus.JSONFormatter{})
	default:
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &logrusWrapper{entry: logrus.NewEntry(base)}, nil
}

func (w *logrusWrapper) Log(level conf.Level, args ...interface{}) {
	w.entry.Log(levelToLogrus(level), args...)
}

func (w *logrusWrapper) Logf(level conf.Level, format string, args ...interface{}) {
	w.entry.Logf(levelToLogrus(level), format, args...)
}

func (w *logrusWrapper) WithContext(ctx context.Context) logger.Logger {
	return &logrusWrapper{entry: w.entry.WithContext(ctx)}
}

func (w *logrusWrapper) WithField(key string, value interface{}) logger.Logger {
	return &logrusWrapper{entry: w.entry.WithField(key, value)}
}

func (w *logrusWrapper) Trace(args ...interface{})                 { w.entry.Trace(args...) }
func (w *logrusWrapper) Tracef(format string, args ...interface{}) { w.entry.Tracef(format, args...) }
func (w *logrusWrapper) Debug(args ...interface{})                 { w.entry.Debug(args...) }
func (w *logrusWrapper) Debugf(format string, args ...interface{}) { w.entry.Debugf(format, args...) }
func (w *logrusWrapper) Info(args ...interface{})                  { w.entry.Info(args...) }
func (w *logrusWrapper) Infof(format string, args ...interface{})  { w.entry.Infof(format, args...) }
func (w *logrusWrapper) Warn(args ...interface{})                  { w.entry.Warn(args...) }
func (w *logrusWrapper) Warnf(format string, args ...interface{})  { w.entry.Warnf(format, args...) }
func (w *logrusWrapper) Error(args ...interface{})                 { w.entry.Error(args...) }
func (w *logrusWrapper) Errorf(format string, args ...interface{}) { w.entry.Errorf(format, args...) }
func (w *logrusWrapper) Fatal(args ...interface{})                 { w.entry.Fatal(args...) }
func (w *logrusWrapper) Fatalf(format string, args ...interface{}) { w.entry.Fatalf(format, args...) }
