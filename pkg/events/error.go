// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Provides capabilities for logging errors

// Package events defines standard logging structures for errors.
//
//	log.Error(ctx, "export failed", events.NewErrorInfo(err))
package events

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/log"
)

// ErrorInfo tracks the error info for logging purposes.
type ErrorInfo struct {
	RawError error
	Kind     string
	Error    string
	Message  string
	Stack    []string
	Cause    *ErrorInfo
	Custom   log.Marshaler

	nested bool
}

// MarshalLog implements log.Marshaler. The outermost error is logged
// under the error. prefix, causes are nested below error.cause.
func (e *ErrorInfo) MarshalLog(addField func(key string, value interface{})) {
	if e == nil {
		return
	}
	prefix := "error."
	if e.nested {
		prefix = ""
	} else {
		addField(prefix+"error", e.Error)
	}
	addField(prefix+"kind", e.Kind)
	addField(prefix+"message", e.Message)
	if len(e.Stack) > 0 {
		addField(prefix+"stack", strings.Join(e.Stack, "\n\t"))
	}
	if e.Cause != nil {
		addField(prefix+"cause", e.Cause)
	}
	if e.Custom != nil {
		e.Custom.MarshalLog(addField)
	}
}

// NewErrorInfo converts an error into ErrorInfo meant for logging.
//
// In the case of errors wrapped with github.com/pkg/errors.Wrap, NewErrorInfo
// collapses (message, stack) pairs within the error chain into a single
// level of the error.
func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	info := newInfo(err, "error")
	info.Error = err.Error()
	return info
}

// NewErrorInfoFromPanic converts the panic result into an appropriate
// error info for logging
func NewErrorInfoFromPanic(r interface{}) *ErrorInfo {
	if r == nil {
		return nil
	}

	if err, ok := r.(error); ok {
		return NewErrorInfo(err)
	}

	result := NewErrorInfo(errors.Errorf("%v", r))
	result.Kind = "panic"
	return result
}

func newInfo(err error, kind string) *ErrorInfo {
	custom, _ := err.(log.Marshaler) //nolint:errorlint // Why: only the outer error carries custom fields
	info := &ErrorInfo{
		RawError: err,
		Kind:     kind,
		Message:  errMessage(err),
		Stack:    errStack(err),
		Custom:   custom,
	}

	inner := errors.Unwrap(err)
	if inner == nil {
		return info
	}
	cause := newInfo(inner, "cause")
	cause.nested = true

	// a pkg/errors withStack wrapper carries no message of its own,
	// fold it into the cause that does.
	if info.Message == "" && info.Custom == nil && len(info.Stack) > 0 &&
		cause.Message != "" && len(cause.Stack) == 0 && cause.Custom == nil {
		info.Message = cause.Message
		info.Cause = cause.Cause
		return info
	}
	info.Cause = cause
	return info
}

// Err lazily yields the result of NewErrorInfo when logged, and
// caches it for future use.
func Err(err error) *LazyErrInfo {
	return &LazyErrInfo{err: err}
}

// LazyErrInfo holds an unserialized error and marshals it on-demand.
type LazyErrInfo struct {
	err  error
	info *ErrorInfo
	once sync.Once
}

// ErrorInfo returns the computed ErrorInfo.
func (l *LazyErrInfo) ErrorInfo() *ErrorInfo {
	l.once.Do(func() {
		l.info = NewErrorInfo(l.err)
	})
	return l.info
}

// MarshalLog implements log.Marshaler.
func (l *LazyErrInfo) MarshalLog(addField func(field string, value interface{})) {
	l.ErrorInfo().MarshalLog(addField)
}

func errMessage(err error) string {
	full := err.Error()
	var sub string
	if err = errors.Unwrap(err); err != nil {
		sub = err.Error()
	}
	return strings.TrimSuffix(strings.TrimSuffix(full, sub), ": ")
}

func errStack(err error) []string {
	// github.com/pkg/errors implements the tracer interface
	type tracer interface {
		StackTrace() errors.StackTrace
	}

	t, ok := err.(tracer) //nolint:errorlint // Why: each level reports its own stack
	if !ok {
		return nil
	}

	stack := make([]string, 0, len(t.StackTrace()))
	for _, frame := range t.StackTrace() {
		// frames are acquired by runtime.Callers, so frame = pc + 1
		pc := uintptr(frame) - 1
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.HasPrefix(fn.Name(), "runtime.") || strings.HasPrefix(fn.Name(), "testing.") {
			continue
		}
		file, line := fn.FileLine(pc)
		stack = append(stack, fmt.Sprintf("%s:%d `%s`", shortFile(file), line, fn.Name()))
	}
	return stack
}

// shortFile keeps the last two path elements of file.
func shortFile(file string) string {
	i := strings.LastIndex(file, "/")
	if i <= 0 {
		return file
	}
	if j := strings.LastIndex(file[:i], "/"); j >= 0 {
		return file[j+1:]
	}
	return file
}
