// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Provides a standard means for go logging

// Package log implements structured, context-first logging.
//
// For logging:
//
//	log.Info(ctx, "message", log.F{field: 42})
//	log.Error(ctx, "failed", events.NewErrorInfo(err))
//	log.Debug(...)
//
// Entries are written as one JSON object per line with the message,
// level and @timestamp keys, unless the output is a terminal, where
// they are rendered as charm text. log.Debug is only emitted when the
// level has been lowered with SetLevel.
package log

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// nolint:gochecknoglobals // Why: sets up overwritable writers
var (
	stdOutLock           = new(sync.RWMutex)
	stdOut     io.Writer = os.Stdout

	std = newLogger(stdOut)
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(formatterFor(w))
	return l
}

// SetOutput can be used to set the output for the module. The format
// is picked for w: charm text on a terminal, JSON otherwise.
// Note: this function should not be used in production code outside of service startup.
// SetOutput can be used for tests that need to redirect or filter logs
func SetOutput(w io.Writer) {
	stdOutLock.Lock()
	defer stdOutLock.Unlock()

	stdOut = w
	std.SetOutput(w)
	std.SetFormatter(formatterFor(w))
}

// Output returns the writer logs are currently written to.
func Output() io.Writer {
	stdOutLock.RLock()
	defer stdOutLock.RUnlock()
	return stdOut
}

// SetLevel sets the minimum level that is emitted. Valid levels are
// debug, info, warn and error. Unknown levels are ignored.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	std.SetLevel(lvl)
}

// Debug emits a log at DEBUG level.
func Debug(ctx context.Context, message string, m ...Marshaler) {
	write(ctx, logrus.DebugLevel, message, m)
}

// Info emits a log at INFO level. This is not filtered and meant for non-debug information.
func Info(ctx context.Context, message string, m ...Marshaler) {
	write(ctx, logrus.InfoLevel, message, m)
}

// Warn emits a log at WARN level. Warn logs are meant to be investigated if they reach high volumes.
func Warn(ctx context.Context, message string, m ...Marshaler) {
	write(ctx, logrus.WarnLevel, message, m)
}

// Error emits a log at ERROR level.  Error logs must be investigated
func Error(ctx context.Context, message string, m ...Marshaler) {
	write(ctx, logrus.ErrorLevel, message, m)
}

func write(ctx context.Context, lvl logrus.Level, message string, mm Many) {
	if !std.IsLevelEnabled(lvl) {
		return
	}

	entry := F{}
	if ctx != nil {
		if info := contextFields(ctx); info != nil {
			info.MarshalLog(entry.Set)
		}
	}
	mm.MarshalLog(entry.Set)

	le := std.WithFields(logrus.Fields(entry))
	if ctx != nil {
		le = le.WithContext(ctx)
	}
	le.Log(lvl, message)
}
