// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: A bounded in-memory pipe.

package orio

import (
	"io"
	"sync"

	"github.com/getoutreach/archivebox/pkg/orerr"
)

// ErrClosedPipe is returned by writes once the reading end has been
// closed, and by reads once the reading end itself has been closed.
const ErrClosedPipe orerr.SentinelError = "read/write on closed pipe"

// DefaultPipeSize is used when NewPipe is given a non-positive size.
const DefaultPipeSize = 64 * 1024

// pipe is a ring buffer shared by a PipeReader and a PipeWriter.
//
// Unlike io.Pipe, writes complete as soon as the data fits in the
// buffer, so a producer can run ahead of the consumer by up to size
// bytes and no further.
type pipe struct {
	mu   sync.Mutex
	cond *sync.Cond

	buf  []byte
	head int
	n    int

	// rerr is set once the reader is closed, werr once the writer is.
	rerr error
	werr error
}

// NewPipe creates a bounded pipe holding at most size bytes.
func NewPipe(size int) (*PipeReader, *PipeWriter) {
	if size <= 0 {
		size = DefaultPipeSize
	}
	p := &pipe{buf: make([]byte, size)}
	p.cond = sync.NewCond(&p.mu)
	return &PipeReader{p}, &PipeWriter{p}
}

func (p *pipe) read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rerr != nil {
		return 0, ErrClosedPipe
	}
	if len(b) == 0 {
		return 0, nil
	}

	for p.n == 0 && p.werr == nil && p.rerr == nil {
		p.cond.Wait()
	}
	if p.rerr != nil {
		return 0, ErrClosedPipe
	}
	if p.n == 0 {
		return 0, p.werr
	}

	read := 0
	for read < len(b) && p.n > 0 {
		end := p.head + p.n
		if end > len(p.buf) {
			end = len(p.buf)
		}
		c := copy(b[read:], p.buf[p.head:end])
		read += c
		p.n -= c
		p.head = (p.head + c) % len(p.buf)
	}
	p.cond.Broadcast()
	return read, nil
}

func (p *pipe) write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	written := 0
	for written < len(b) {
		for p.n == len(p.buf) && p.rerr == nil && p.werr == nil {
			p.cond.Wait()
		}
		if p.rerr != nil {
			return written, p.rerr
		}
		if p.werr != nil {
			return written, ErrClosedPipe
		}

		tail := (p.head + p.n) % len(p.buf)
		end := len(p.buf)
		if tail < p.head {
			end = p.head
		}
		c := copy(p.buf[tail:end], b[written:])
		written += c
		p.n += c
		p.cond.Broadcast()
	}
	return written, nil
}

func (p *pipe) closeRead(err error) {
	if err == nil {
		err = ErrClosedPipe
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rerr == nil {
		p.rerr = err
	}
	p.n = 0
	p.cond.Broadcast()
}

func (p *pipe) closeWrite(err error) {
	if err == nil {
		err = io.EOF
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.werr == nil {
		p.werr = err
	}
	p.cond.Broadcast()
}

// buffered returns the number of bytes waiting to be read.
func (p *pipe) buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n
}

// PipeReader is the read half of a pipe created by NewPipe.
type PipeReader struct {
	p *pipe
}

// Read reads data from the pipe, blocking until data is available or
// the write half is closed. Once the writer has closed and the buffer
// is drained, Read returns the error the writer closed with, io.EOF by
// default.
func (r *PipeReader) Read(b []byte) (int, error) {
	return r.p.read(b)
}

// Close closes the reader. Subsequent writes fail with ErrClosedPipe.
func (r *PipeReader) Close() error {
	return r.CloseWithError(nil)
}

// CloseWithError closes the reader. Subsequent and blocked writes fail
// with err, or ErrClosedPipe when err is nil. Buffered data is dropped.
func (r *PipeReader) CloseWithError(err error) error {
	r.p.closeRead(err)
	return nil
}

// Buffered returns the number of bytes that can be read without
// blocking.
func (r *PipeReader) Buffered() int {
	return r.p.buffered()
}

// PipeWriter is the write half of a pipe created by NewPipe.
type PipeWriter struct {
	p *pipe
}

// Write copies b into the pipe, blocking while the buffer is full.
// It fails once the read half is closed.
func (w *PipeWriter) Write(b []byte) (int, error) {
	return w.p.write(b)
}

// Close closes the writer. Reads drain the buffer and then return io.EOF.
func (w *PipeWriter) Close() error {
	return w.CloseWithError(nil)
}

// CloseWithError closes the writer. Reads drain the buffer and then
// return err, or io.EOF when err is nil.
func (w *PipeWriter) CloseWithError(err error) error {
	w.p.closeWrite(err)
	return nil
}
