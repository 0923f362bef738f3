// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: The create command builds an archive from host files.

package commands

import (
	"io/fs"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/getoutreach/archivebox/pkg/archive"
	"github.com/getoutreach/archivebox/pkg/asset"
	"github.com/getoutreach/archivebox/pkg/filter"
	"github.com/getoutreach/archivebox/pkg/log"
	"github.com/getoutreach/archivebox/pkg/vpath"
)

func newCreateCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "create an archive from files and directories",
		ArgsUsage: "<output> <path>...",
		Flags: []cli.Flag{
			outFormatFlag(),
			includeFlag(),
			excludeFlag(),
			overwriteFlag(),
			levelFlag(),
		},
		Action: create,
	}
}

func create(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return cli.Exit("expected "+c.Command.ArgsUsage, 2)
	}
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	keep, err := pathFilter(c)
	if err != nil {
		return err
	}

	out := c.Args().First()
	a := archive.New(filepath.Base(out), archive.WithConfig(conf))
	for _, src := range c.Args().Slice()[1:] {
		if err := addTree(c, a, src, keep); err != nil {
			return err
		}
	}
	log.Info(c.Context, "archive created", log.F{"archive.entries": a.Len()})
	return saveArchive(c, a, out)
}

// addTree adds src to a under the base name of src. Directories are
// added recursively. Files are read when the archive is exported.
func addTree(c *cli.Context, a *archive.Archive, src string, keep filter.Filter) error {
	base := filepath.Dir(filepath.Clean(src))
	return filepath.WalkDir(src, func(host string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := c.Context.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(base, host)
		if err != nil {
			return err
		}
		p, err := vpath.Normalize(filepath.ToSlash(rel))
		if err != nil {
			return errors.Wrapf(err, "cannot archive %q", host)
		}
		if p.IsRoot() || !keep.Include(p) {
			return nil
		}

		switch {
		case d.IsDir():
			return a.AddDirectory(p)
		case d.Type().IsRegular():
			return a.Add(p, asset.File(host))
		default:
			log.Warn(c.Context, "skipping irregular file", log.F{"file": host})
			return nil
		}
	})
}
