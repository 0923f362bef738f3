// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: See package comment

// Package cli contains utilities for running urfave/cli applications
// built on archivebox.
package cli

import (
	"context"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/getoutreach/archivebox/pkg/app"
	"github.com/getoutreach/archivebox/pkg/events"
	"github.com/getoutreach/archivebox/pkg/log"
)

// DebugFlag is the global flag that lowers the log level to debug.
const DebugFlag = "debug"

// Run runs a with args and returns the process exit code. Logs are
// redirected to logOut so they never mix with command output, ^C and
// other term signals cancel ctx, and a panic is reported with exit
// code 2.
func Run(ctx context.Context, a *cli.App, args []string, logOut io.Writer) (exitCode int) {
	app.SetName(a.Name)
	if a.Version == "" {
		a.Version = app.Version
	}

	prevOut := log.Output()
	log.SetOutput(logOut)
	defer log.SetOutput(prevOut)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := registerShutdownHandler(cancel)
	defer stop()

	a.Flags = append(a.Flags, &cli.BoolFlag{Name: DebugFlag, Usage: "enable debug logging"})
	before := a.Before
	a.Before = func(c *cli.Context) error {
		if c.Bool(DebugFlag) {
			log.SetLevel("debug")
		}
		if before != nil {
			return before(c)
		}
		return nil
	}

	exitCode = 0
	prevExiter := cli.OsExiter
	cli.OsExiter = func(code int) { exitCode = code }
	defer func() { cli.OsExiter = prevExiter }()

	defer setupPanicHandler(&exitCode)

	ctx = log.NewContext(ctx, app.Info())
	if err := a.RunContext(ctx, args); err != nil {
		log.Error(ctx, "failed to run", events.NewErrorInfo(err))
		if coder, ok := err.(cli.ExitCoder); ok && coder.ExitCode() != 0 {
			return coder.ExitCode()
		}
		return 1
	}
	return exitCode
}
