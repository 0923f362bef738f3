// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: The list command prints the entries of an archive.

package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/getoutreach/archivebox/pkg/asset"
	"github.com/getoutreach/archivebox/pkg/filter"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "print the entries of an archive in path order",
		ArgsUsage: "<archive>",
		Flags: []cli.Flag{
			formatFlag(),
			includeFlag(),
			excludeFlag(),
			maxEntrySizeFlag(),
			&cli.BoolFlag{Name: "long", Aliases: []string{"l"}, Usage: "print entry sizes"},
		},
		Action: list,
	}
}

func list(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	a, err := openArchive(c, c.Args().First())
	if err != nil {
		return err
	}

	for p, n := range a.Content(filter.All()) {
		name := p.String()
		if n.IsDir() {
			name += "/"
		}
		if !c.Bool("long") {
			fmt.Fprintln(c.App.Writer, name)
			continue
		}

		var size int64
		if !n.IsDir() {
			if size, err = asset.SizeOf(n.Asset()); err != nil {
				return err
			}
		}
		fmt.Fprintf(c.App.Writer, "%10d %s\n", size, name)
	}
	return nil
}
