// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Package async has helper utilities for running async code
// with proper logging.
//
// When starting go routines, use Tasks.Run:
//
//	// this starts a go routine
//	tasks.Run(ctx, async.Func(func(ctx context.Context) error {
//	   .... do whatever needs to be done ...
//	   .... just return error to report it ....
//	}))
//
// To wait for all go-routines to terminate, use Tasks.Wait.
package async

import (
	"context"
	"errors"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/getoutreach/archivebox/pkg/events"
	"github.com/getoutreach/archivebox/pkg/log"
	"github.com/getoutreach/archivebox/pkg/orerr"
)

// Runner is the default interface for a runner function
type Runner interface {
	Run(ctx context.Context) error
}

// Closer is the interface for closing a runner function. Implement this for cleaning up things.
type Closer interface {
	Close(ctx context.Context) error
}

// Tasks runs tasks
type Tasks struct {
	Name string
	sync.WaitGroup
}

// NewTasks creates new instance of Tasks
func NewTasks(name string) *Tasks {
	return &Tasks{Name: name}
}

// Run executes a single asynchronous task.
//
// The task context carries the task name as a log field and passes
// through deadlines. Errors other than cancellation or shutdown are
// logged.
func (t *Tasks) Run(ctx context.Context, r Runner) {
	t.WaitGroup.Add(1)
	go func() {
		defer t.WaitGroup.Done()
		ctx2 := log.NewContext(ctx, log.F{"task": t.Name})
		if err := r.Run(ctx2); err != nil && !isShutdown(err) {
			log.Error(ctx2, t.Name, events.NewErrorInfo(err))
		}
	}()
}

func isShutdown(err error) bool {
	var shutdown orerr.ShutdownError
	var shutdownPtr *orerr.ShutdownError
	return errors.Is(err, context.Canceled) || errors.As(err, &shutdown) || errors.As(err, &shutdownPtr)
}

// RunClose closes any references a runner might be using
func RunClose(ctx context.Context, r Runner) error {
	switch r := r.(type) {
	case Closer:
		return r.Close(ctx)
	case io.Closer:
		return r.Close()
	}
	return nil
}

// RunGroup runs a group of runner tasks and exits when the first run group errors out
func RunGroup(rg []Runner) Runner {
	ru := Func(func(ctx context.Context) error {
		g, ctx := errgroup.WithContext(ctx)
		for idx := range rg {
			r := rg[idx]
			g.Go(func() error {
				defer func() {
					if err := RunClose(ctx, r); err != nil {
						log.Error(ctx, "Error when closing:", events.NewErrorInfo(err))
					}
				}()

				return r.Run(ctx)
			})
		}
		return g.Wait()
	})
	return ru
}

// Func is a helper that implements the Runner interface
type Func func(ctx context.Context) error

// Run implements the Runner interface
func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
