// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Entrypoint for the archivebox command line tool.

// Package main implements the archivebox binary.
package main

import (
	"context"
	"os"

	"github.com/getoutreach/archivebox/internal/commands"
	"github.com/getoutreach/archivebox/pkg/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), commands.New(), os.Args, os.Stderr))
}
