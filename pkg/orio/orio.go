// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Small io helpers shared by the archive codecs.

// Package orio implements IO utilities.
package orio

import "io"

// WriteCloser provides a simple way to create an io.WriteCloser by
// combining io.Writer and io.Closer
type WriteCloser struct {
	io.Writer
	io.Closer
}

// NopWriteCloser returns a WriteCloser whose Close does nothing.
func NopWriteCloser(w io.Writer) io.WriteCloser {
	return WriteCloser{Writer: w, Closer: nopCloser{}}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SequencedReadCloser reads from the first ReadCloser it was created
// with and closes all of them, in order, when Close is called.
type SequencedReadCloser struct {
	io.ReadCloser
	rcs []io.Closer
}

// Close closes all of the contained closers in the order they were
// given. If one fails to close, its error is returned and the rest are
// NOT closed.
func (s *SequencedReadCloser) Close() error {
	for _, c := range s.rcs {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

// NewSequencedReadCloser reads from r and closes r followed by the
// provided closers. Typical use is a decompressor stacked over a file.
func NewSequencedReadCloser(r io.ReadCloser, closers ...io.Closer) *SequencedReadCloser {
	return &SequencedReadCloser{ReadCloser: r, rcs: append([]io.Closer{r}, closers...)}
}

// SequencedWriteCloser writes to the first WriteCloser and closes all
// of them, in order, when Close is called. Unlike SequencedReadCloser
// every closer is closed and the first error is returned, since a
// compressor must always flush into the layer below it.
type SequencedWriteCloser struct {
	io.WriteCloser
	wcs []io.Closer
}

// Close closes all the contained closers in order.
func (s *SequencedWriteCloser) Close() error {
	var first error
	for _, c := range s.wcs {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewSequencedWriteCloser writes to w and closes w followed by the
// provided closers.
func NewSequencedWriteCloser(w io.WriteCloser, closers ...io.Closer) *SequencedWriteCloser {
	return &SequencedWriteCloser{WriteCloser: w, wcs: append([]io.Closer{w}, closers...)}
}
