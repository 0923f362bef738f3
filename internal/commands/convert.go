// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: The convert command rewrites an archive in another format.

package commands

import (
	"github.com/urfave/cli/v2"
)

func newConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "rewrite an archive in the format of the output file",
		ArgsUsage: "<input> <output>",
		Flags: []cli.Flag{
			formatFlag(),
			outFormatFlag(),
			includeFlag(),
			excludeFlag(),
			maxEntrySizeFlag(),
			overwriteFlag(),
			levelFlag(),
		},
		Action: convert,
	}
}

func convert(c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	a, err := openArchive(c, c.Args().Get(0))
	if err != nil {
		return err
	}
	return saveArchive(c, a, c.Args().Get(1))
}
