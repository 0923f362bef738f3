// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Buffers writes up to a fixed number of bytes.

package orio

import "github.com/getoutreach/archivebox/pkg/orerr"

// ErrLimitExceeded is wrapped by the error returned when writes exceed
// the capacity of a LimitedWriter.
const ErrLimitExceeded orerr.SentinelError = "size limit exceeded"

// LimitedWriter collects writes into memory up to a max of N bytes.
// A non-positive N means no limit.
//
// It returns an orerr.LimitExceededError wrapping ErrLimitExceeded if
// the write exceeds this limit. The bytes that fit are still kept.
type LimitedWriter struct {
	buf []byte
	N   int64
}

func (l *LimitedWriter) Write(p []byte) (int, error) {
	if l.N <= 0 {
		l.buf = append(l.buf, p...)
		return len(p), nil
	}

	var err error
	size := len(p)
	if int64(size)+int64(len(l.buf)) > l.N {
		size = int(l.N - int64(len(l.buf)))
		err = orerr.LimitExceededError{Kind: "size", Limit: l.N, Err: ErrLimitExceeded}
	}

	l.buf = append(l.buf, p[:size]...)
	return size, err
}

// Bytes returns the collected bytes.
func (l *LimitedWriter) Bytes() []byte {
	return l.buf
}

// Len returns the number of collected bytes.
func (l *LimitedWriter) Len() int {
	return len(l.buf)
}
