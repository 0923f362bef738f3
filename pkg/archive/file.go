// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains imports from and exports to files on
// the host filesystem.

package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/events"
	"github.com/getoutreach/archivebox/pkg/log"
)

// ImportFromFile imports the file at path. See ImportFrom.
func (v *View) ImportFromFile(ctx context.Context, path string, optFns ...ImportOptionFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return importError("open", path, v.Format(), err)
	}
	defer f.Close()

	return v.ImportFrom(ctx, f, optFns...)
}

// ExportToFile writes the archive to path. Unless overwrite is set, it
// fails with ErrFileExists when path exists.
//
// The archive is first written to a temporary file in the staging
// directory, the directory of path by default, and moved into place
// once complete, so path never holds a partial archive.
func (v *View) ExportToFile(ctx context.Context, path string, overwrite bool, optFns ...ExportOptionFunc) error {
	opts, err := v.a.cfg.exportOptions(optFns)
	if err != nil {
		return err
	}
	fail := func(err error) error {
		return exportError("file", path, v.Format(), err)
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fail(errors.Wrapf(ErrFileExists, "%q", path))
		}
	}

	logger := log.With(log.F{"archive.target": path})

	stagingDir := opts.StagingDir
	if stagingDir == "" {
		stagingDir = filepath.Dir(path)
	}
	tmp, err := os.CreateTemp(stagingDir, ".archivebox-*")
	if err != nil {
		return fail(err)
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			logger.Warn(ctx, "failed to remove staged export", log.F{"staged": tmp.Name()}, events.NewErrorInfo(err))
		}
	}()

	if err := exportTo(ctx, v.a, v.b, tmp, opts); err != nil {
		if cerr := tmp.Close(); cerr != nil {
			logger.Warn(ctx, "failed to close staged export", events.NewErrorInfo(cerr))
		}
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		logger.Warn(ctx, "failed to set mode of staged export", events.NewErrorInfo(err))
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}

	if err := moveIntoPlace(tmp.Name(), path, overwrite); err != nil {
		return fail(err)
	}
	return nil
}

// moveIntoPlace moves the staged file src to dst. Without overwrite it
// fails with ErrFileExists if dst appeared in the meantime. When src and
// dst are on different filesystems the content is copied.
func moveIntoPlace(src, dst string, overwrite bool) error {
	if overwrite {
		if err := os.Rename(src, dst); err == nil {
			return nil
		}
	} else {
		err := os.Link(src, dst)
		if err == nil {
			return nil
		}
		if os.IsExist(err) {
			return errors.Wrapf(ErrFileExists, "%q", dst)
		}
	}

	return copyFile(src, dst, overwrite)
}

func copyFile(src, dst string, overwrite bool) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(dst, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(ErrFileExists, "%q", dst)
		}
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
