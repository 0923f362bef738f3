// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Builds the archivebox command line application.

// Package commands implements the archivebox command line tool, which
// lists, creates and converts archives.
package commands

import (
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/getoutreach/archivebox/pkg/archive"
	"github.com/getoutreach/archivebox/pkg/filter"
)

// Flag names shared by several commands.
const (
	flagFormat       = "format"
	flagOutFormat    = "out-format"
	flagInclude      = "include"
	flagExclude      = "exclude"
	flagOverwrite    = "overwrite"
	flagLevel        = "level"
	flagMaxEntrySize = "max-entry-size"
	flagName         = "name"
)

// New returns the archivebox application.
func New() *cli.App {
	return &cli.App{
		Name:  "archivebox",
		Usage: "inspect and convert zip and tar archives",
		Commands: []*cli.Command{
			newListCommand(),
			newCreateCommand(),
			newConvertCommand(),
			newPackCommand(),
			newUnpackCommand(),
		},
	}
}

// Flags shared by several commands.

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"f"},
		Usage:   "format of the input, detected from the file name when empty",
	}
}

func outFormatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagOutFormat,
		Aliases: []string{"o"},
		Usage:   "format of the output, detected from the file name when empty",
	}
}

func includeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  flagInclude,
		Usage: "only keep entries whose path matches one of these regular expressions",
	}
}

func excludeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  flagExclude,
		Usage: "drop entries whose path matches one of these regular expressions",
	}
}

func overwriteFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  flagOverwrite,
		Usage: "replace the output file if it exists",
	}
}

func levelFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  flagLevel,
		Usage: "compression level from 1 (fastest) to 9 (smallest), 0 for the format default",
	}
}

func maxEntrySizeFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:  flagMaxEntrySize,
		Usage: "reject input entries larger than this many bytes, 0 for no limit",
	}
}

// loadConfig returns the archive config from the config directory.
func loadConfig() (archive.Config, error) {
	conf, err := archive.LoadConfig()
	if err != nil {
		return archive.Config{}, errors.Wrap(err, "failed to load config")
	}
	return conf, nil
}

// resolveFormat returns the format named by flag, or the format of
// fileName when the flag is unset.
func resolveFormat(c *cli.Context, flag, fileName string) (archive.Format, error) {
	if s := c.String(flag); s != "" {
		return archive.ParseFormat(s)
	}
	return archive.FormatOf(fileName)
}

// pathFilter builds the filter selected by the include and exclude
// flags.
func pathFilter(c *cli.Context) (filter.Filter, error) {
	includes := c.StringSlice(flagInclude)
	excludes := c.StringSlice(flagExclude)
	for _, expr := range append(append([]string{}, includes...), excludes...) {
		if _, err := regexp.Compile(expr); err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", expr)
		}
	}

	fs := []filter.Filter{filter.All()}
	if len(includes) > 0 {
		fs = append(fs, filter.Regex(includes...))
	}
	if len(excludes) > 0 {
		fs = append(fs, filter.Exclude(excludes...))
	}
	return filter.And(fs...), nil
}

// importOptions returns the import options selected by flags.
func importOptions(c *cli.Context) ([]archive.ImportOptionFunc, error) {
	f, err := pathFilter(c)
	if err != nil {
		return nil, err
	}
	opts := []archive.ImportOptionFunc{archive.WithFilter(f)}
	if c.IsSet(flagMaxEntrySize) {
		opts = append(opts, archive.WithMaxEntrySize(c.Int64(flagMaxEntrySize)))
	}
	return opts, nil
}

// exportOptions returns the export options selected by flags.
func exportOptions(c *cli.Context) []archive.ExportOptionFunc {
	var opts []archive.ExportOptionFunc
	if c.IsSet(flagLevel) {
		opts = append(opts, archive.WithCompressionLevel(c.Int(flagLevel)))
	}
	return opts
}

// requireArgs fails with a usage error unless exactly n arguments were
// given.
func requireArgs(c *cli.Context, n int) error {
	if c.Args().Len() != n {
		return cli.Exit("expected "+c.Command.ArgsUsage, 2)
	}
	return nil
}

// openArchive imports the archive file at path.
func openArchive(c *cli.Context, path string) (*archive.Archive, error) {
	conf, err := loadConfig()
	if err != nil {
		return nil, err
	}
	f, err := resolveFormat(c, flagFormat, path)
	if err != nil {
		return nil, err
	}
	opts, err := importOptions(c)
	if err != nil {
		return nil, err
	}

	a := archive.New(filepath.Base(path), archive.WithConfig(conf))
	v, err := a.As(f)
	if err != nil {
		return nil, err
	}
	if err := v.ImportFromFile(c.Context, path, opts...); err != nil {
		return nil, err
	}
	return a, nil
}

// saveArchive exports a to path.
func saveArchive(c *cli.Context, a *archive.Archive, path string) error {
	f, err := resolveFormat(c, flagOutFormat, path)
	if err != nil {
		return err
	}
	v, err := a.As(f)
	if err != nil {
		return err
	}
	return v.ExportToFile(c.Context, path, c.Bool(flagOverwrite), exportOptions(c)...)
}
