// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains exports produced in the background
// and consumed as a stream.

package archive

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/async"
	"github.com/getoutreach/archivebox/pkg/events"
	"github.com/getoutreach/archivebox/pkg/log"
	"github.com/getoutreach/archivebox/pkg/metrics"
	"github.com/getoutreach/archivebox/pkg/orerr"
	"github.com/getoutreach/archivebox/pkg/orio"
)

// PumpState is the state of the producer behind a Stream.
type PumpState int32

const (
	PumpIdle PumpState = iota
	PumpProducing
	PumpCompleted
	PumpFailed
)

func (s PumpState) String() string {
	switch s {
	case PumpIdle:
		return "idle"
	case PumpProducing:
		return "producing"
	case PumpCompleted:
		return "completed"
	case PumpFailed:
		return "failed"
	}
	return "unknown"
}

// nolint:gochecknoglobals // Why: shared producer pool
var producers = async.NewTasks("archive.stream")

// Stream is an export that is written by a background producer while
// it is being read. It implements io.ReadCloser.
//
// Reads block until the producer has written data or finished. Once
// the producer finishes, reads drain the buffer and return io.EOF, or
// the producer's error if it failed. Closing the stream early makes the
// producer's pending and future writes fail, so it exits promptly.
type Stream struct {
	id     string
	r      *orio.PipeReader
	cancel func(error)

	state atomic.Int32
	done  chan struct{}

	mu  sync.Mutex
	err error
}

// ExportAsStream starts exporting the archive in the background and
// returns the stream to read it from immediately. Failures, including
// invalid options, are reported by Read.
//
// Canceling ctx stops the producer; reads then fail with an
// *ExportError wrapping the context error.
func (v *View) ExportAsStream(ctx context.Context, optFns ...ExportOptionFunc) *Stream {
	opts, optErr := v.a.cfg.exportOptions(optFns)
	bufSize := orio.DefaultPipeSize
	if optErr == nil {
		bufSize = opts.PipeBufferSize
	}

	r, w := orio.NewPipe(bufSize)
	ctx, cancel := orerr.CancelWithError(ctx)
	s := &Stream{id: uuid.NewString(), r: r, cancel: cancel, done: make(chan struct{})}
	ctx = log.NewContext(ctx, log.F{"archive.stream": s.id})

	s.state.Store(int32(PumpProducing))
	producers.Run(ctx, async.Func(func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				info := events.NewErrorInfoFromPanic(r)
				log.Error(ctx, "export stream producer panicked", info)
				err = exportError("write", "", v.Format(), errors.New(info.Message))
			}
			s.finish(ctx, err)
			w.CloseWithError(err)
			cancel(nil)
		}()

		if optErr != nil {
			return optErr
		}
		return exportTo(ctx, v.a, v.b, w, opts)
	}))
	return s
}

// finish records the result of the producer.
func (s *Stream) finish(ctx context.Context, err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	switch {
	case err == nil:
		s.state.Store(int32(PumpCompleted))
	case metrics.Status(err) == "canceled":
		s.state.Store(int32(PumpFailed))
		log.Debug(ctx, "export stream abandoned", events.Err(err))
	default:
		s.state.Store(int32(PumpFailed))
	}
	close(s.done)
}

// ID identifies the stream in logs.
func (s *Stream) ID() string {
	return s.id
}

// Read reads the exported bytes.
func (s *Stream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Close abandons the stream. The producer's writes fail from now on
// and it exits without finishing the export. Close does not wait for
// the producer; use Wait for that.
func (s *Stream) Close() error {
	shutdown := &orerr.ShutdownError{Err: ErrStreamClosed}
	s.cancel(shutdown)
	return s.r.CloseWithError(shutdown)
}

// State returns the current state of the producer.
func (s *Stream) State() PumpState {
	return PumpState(s.state.Load())
}

// Done is closed once the producer has exited.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the producer has exited, or ctx is done, and
// returns the producer's error.
func (s *Stream) Wait(ctx context.Context) error {
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
