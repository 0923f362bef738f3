// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains options for imports and exports.

package archive

import (
	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/filter"
)

// ImportOptions are the options for importing an archive format.
type ImportOptions struct {
	// Filter selects the entries that are added. Rejected entries are
	// still read past. Nil accepts everything.
	Filter filter.Filter

	// MaxEntrySize limits the size of a single file entry. 0 means no
	// limit.
	MaxEntrySize int64

	// TempDir is where sources that cannot be read at random offsets
	// are spooled, for formats that need it. Empty means memory.
	TempDir string
}

// ImportOptionFunc is an option function that mutates an ImportOptions struct.
type ImportOptionFunc func(*ImportOptions) error

// WithFilter is an ImportOptionFunc that only imports entries accepted
// by f.
func WithFilter(f filter.Filter) ImportOptionFunc {
	return func(opts *ImportOptions) error {
		opts.Filter = f
		return nil
	}
}

// WithMaxEntrySize is an ImportOptionFunc that fails the import when a
// file entry is larger than n bytes.
func WithMaxEntrySize(n int64) ImportOptionFunc {
	return func(opts *ImportOptions) error {
		if n < 0 {
			return errors.Wrapf(ErrIllegalArgument, "max entry size %d is negative", n)
		}
		opts.MaxEntrySize = n
		return nil
	}
}

// WithTempDir is an ImportOptionFunc that sets the spool directory.
func WithTempDir(dir string) ImportOptionFunc {
	return func(opts *ImportOptions) error {
		opts.TempDir = dir
		return nil
	}
}

func (c Config) importOptions(optFns []ImportOptionFunc) (*ImportOptions, error) {
	opts := &ImportOptions{MaxEntrySize: c.MaxEntrySize, TempDir: c.TempDir}
	for _, fn := range optFns {
		if err := fn(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// ExportOptions are the options for exporting to an archive format.
type ExportOptions struct {
	// Filter selects the nodes that are written. Nil writes everything.
	Filter filter.Filter

	// CompressionLevel is 0 for the format default, or 1 to 9.
	CompressionLevel int

	// StagingDir is where ExportToFile writes before moving the result
	// into place. Empty means the directory of the target.
	StagingDir string

	// PipeBufferSize bounds the buffer of a streamed export.
	PipeBufferSize int
}

// ExportOptionFunc is an option function that mutates an ExportOptions struct.
type ExportOptionFunc func(*ExportOptions) error

// WithExportFilter is an ExportOptionFunc that only writes nodes
// accepted by f.
func WithExportFilter(f filter.Filter) ExportOptionFunc {
	return func(opts *ExportOptions) error {
		opts.Filter = f
		return nil
	}
}

// WithCompressionLevel is an ExportOptionFunc that sets the level used
// by compressing formats.
func WithCompressionLevel(level int) ExportOptionFunc {
	return func(opts *ExportOptions) error {
		if level < 0 || level > 9 {
			return errors.Wrapf(ErrIllegalArgument, "compression level %d is not within 0-9", level)
		}
		opts.CompressionLevel = level
		return nil
	}
}

// WithStagingDir is an ExportOptionFunc that sets where ExportToFile
// stages its output.
func WithStagingDir(dir string) ExportOptionFunc {
	return func(opts *ExportOptions) error {
		opts.StagingDir = dir
		return nil
	}
}

// WithPipeBufferSize is an ExportOptionFunc that bounds how far a
// streamed export runs ahead of its reader.
func WithPipeBufferSize(n int) ExportOptionFunc {
	return func(opts *ExportOptions) error {
		if n <= 0 {
			return errors.Wrapf(ErrIllegalArgument, "pipe buffer size %d is not positive", n)
		}
		opts.PipeBufferSize = n
		return nil
	}
}

func (c Config) exportOptions(optFns []ExportOptionFunc) (*ExportOptions, error) {
	c = c.withDefaults()
	opts := &ExportOptions{
		CompressionLevel: c.CompressionLevel,
		StagingDir:       c.TempDir,
		PipeBufferSize:   c.PipeBufferSize,
	}
	for _, fn := range optFns {
		if err := fn(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}
