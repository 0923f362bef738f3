// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Error utilities shared by the archivebox packages.

// Package orerr implements error utilities: sentinel errors, errors
// carrying log fields and errors describing shutdown or exceeded limits.
package orerr

import (
	"errors"

	"github.com/getoutreach/archivebox/pkg/log"
)

// A SentinelError is a constant which ought to be compared using errors.Is.
type SentinelError string

// Error returns s as a string.
func (s SentinelError) Error() string {
	return string(s)
}

// ShutdownError indicates the producing side of an operation has been
// shut down, for example because its consumer went away. An inner
// error may be provided via Err.
type ShutdownError struct {
	Err error
}

// Error implements the err interface.
func (e ShutdownError) Error() string {
	if e.Err != nil {
		return "shutdown: " + e.Err.Error()
	}
	return "shutdown"
}

// Unwrap returns the inner error.
func (e ShutdownError) Unwrap() error {
	return e.Err
}

// LimitExceededError indicates some limit has exceeded. The actual
// limit that has exceeded is indicated via the Kind field. An inner
// error may be provided via Err.
type LimitExceededError struct {
	// Kind refers to the kind of limit which has been exceeded.
	Kind string

	// Limit is the configured limit, if known.
	Limit int64

	Err error
}

// Error implements the err interface.
func (e LimitExceededError) Error() string {
	return e.Kind + " limit exceeded"
}

// Unwrap returns the inner error.
func (e LimitExceededError) Unwrap() error {
	return e.Err
}

// MarshalLog implements log.Marshaler.
func (e LimitExceededError) MarshalLog(addField func(field string, value interface{})) {
	addField("limit.kind", e.Kind)
	if e.Limit > 0 {
		addField("limit.value", e.Limit)
	}
}

// New creates a new error wrapping all the error options onto it.
//
// For convenience, if err is nil, this function returns nil.
func New(err error, opts ...ErrOption) error {
	if err == nil {
		return nil
	}

	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

// ErrOption just wraps an error.
type ErrOption func(err error) error

// WithInfo attaches the provided logs to the error.
//
// It is a functional option for use with New.
func WithInfo(info ...log.Marshaler) ErrOption {
	return func(err error) error {
		return Info(err, info...)
	}
}

// Info adds extra logging info to an error.
func Info(err error, info ...log.Marshaler) error {
	return withInfo{err, log.Many(info)}
}

// withInfo just embeds error and log.Marshaler, so both interface are
// satisfied.
type withInfo struct {
	error
	log.Marshaler
}

// Unwrap returns the underlying error.
// This method is required by errors.Unwrap.
func (e withInfo) Unwrap() error {
	return e.error
}

// IsOneOf returns true if the supplied error is identical to an error supplied
// in the remaining function error arguments
func IsOneOf(err error, errs ...error) bool {
	for _, e := range errs {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
