// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: The pack and unpack commands convert between archives
// and their serialized form.

package commands

import (
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/getoutreach/archivebox/pkg/archive"
	"github.com/getoutreach/archivebox/pkg/events"
	"github.com/getoutreach/archivebox/pkg/log"
)

func newPackCommand() *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "serialize an archive, keeping its name",
		ArgsUsage: "<input> <output>",
		Flags: []cli.Flag{
			formatFlag(),
			includeFlag(),
			excludeFlag(),
			maxEntrySizeFlag(),
			overwriteFlag(),
			&cli.StringFlag{Name: flagName, Usage: "name stored in the output, the input file name when empty"},
		},
		Action: pack,
	}
}

func newUnpackCommand() *cli.Command {
	return &cli.Command{
		Name:      "unpack",
		Usage:     "write a serialized archive out in the format of the output file",
		ArgsUsage: "<input> <output>",
		Flags: []cli.Flag{
			outFormatFlag(),
			overwriteFlag(),
			levelFlag(),
		},
		Action: unpack,
	}
}

func pack(c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	a, err := openArchive(c, c.Args().Get(0))
	if err != nil {
		return err
	}
	if name := c.String(flagName); name != "" {
		a.SetName(name)
	}

	out := c.Args().Get(1)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !c.Bool(flagOverwrite) {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(out, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(archive.ErrFileExists, "%q", out)
		}
		return err
	}

	if err := archive.Encode(c.Context, f, a); err != nil {
		f.Close()
		if rerr := os.Remove(out); rerr != nil {
			log.Warn(c.Context, "failed to remove partial output", log.F{"file": out}, events.NewErrorInfo(rerr))
		}
		return err
	}
	return errors.Wrap(f.Close(), "failed to close output")
}

func unpack(c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer f.Close()

	a, err := archive.Decode(c.Context, f, archive.WithConfig(conf))
	if err != nil {
		return err
	}
	log.Info(c.Context, "unpacked archive", log.F{"archive.name": a.Name(), "archive.entries": a.Len()})
	return saveArchive(c, a, c.Args().Get(1))
}
