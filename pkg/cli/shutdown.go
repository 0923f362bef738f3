// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains shutdown related code for CLIs.

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
)

// registerShutdownHandler registers a signal notifier that translates various term
// signals into context cancel. The returned func stops listening.
func registerShutdownHandler(cancel context.CancelFunc) (stop func()) {
	// handle ^C gracefully
	c := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		select {
		case <-c:
			cancel()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(c)
		close(done)
	}
}

// setupPanicHandler sets up a panic handler that will print the panic message
// and stack trace to stderr, and then set the exit code to 2.
func setupPanicHandler(exitCode *int) {
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr, "stacktrace from panic: %s\n%s\n", r, string(debug.Stack()))

		// Go sets panic exit codes to 2
		(*exitCode) = 2
	}
}
