// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the import walk shared by all formats.

package archive

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/asset"
	"github.com/getoutreach/archivebox/pkg/events"
	"github.com/getoutreach/archivebox/pkg/log"
	"github.com/getoutreach/archivebox/pkg/metrics"
	"github.com/getoutreach/archivebox/pkg/orio"
	"github.com/getoutreach/archivebox/pkg/vpath"
)

// importFrom reads every entry of r through b into a.
//
// Directory entries accepted by the filter are added as directories.
// File entries accepted by the filter are buffered and added, others
// are read past. The first failure stops the import with an
// *ImportError; entries added before it stay in the archive.
func importFrom(ctx context.Context, a *Archive, b Binding, r io.Reader, opts *ImportOptions) (err error) {
	start := time.Now()
	ctx = log.NewContext(ctx, log.F{"archive.name": a.name, "archive.format": string(b.Format())})

	entries := 0
	defer func() {
		metrics.ReportLatency(metrics.OpImport, string(b.Format()), time.Since(start).Seconds(), err)
		metrics.CountEntries(metrics.OpImport, string(b.Format()), entries)
		if err == nil {
			log.Debug(ctx, "imported archive", log.F{"archive.entries": entries})
		}
	}()

	fail := func(op, name string, cause error) error {
		return importError(op, name, b.Format(), cause)
	}

	er, err := b.NewEntryReader(ctx, r, opts)
	if err != nil {
		return fail("open", "", err)
	}
	defer func() {
		if cerr := er.Close(); cerr != nil {
			if err == nil {
				err = fail("close", "", cerr)
				return
			}
			log.Warn(ctx, "failed to close entry reader", events.NewErrorInfo(cerr))
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return fail("read", "", err)
		}

		h, rc, err := er.Next()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fail("read", "", err)
		}

		added, err := importEntry(a, h, rc, opts)
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return fail("add", h.Name, err)
		}
		if added {
			entries++
		}
	}
}

// importEntry applies a single entry to a and reports whether anything
// was added.
func importEntry(a *Archive, h *Header, r io.Reader, opts *ImportOptions) (bool, error) {
	p, err := entryPath(h.Name)
	if err != nil {
		return false, err
	}

	include := !p.IsRoot() && opts.Filter.Include(p)
	switch {
	case h.Type == HeaderTypeDirectory && include:
		return true, a.AddDirectory(p)
	case h.Type == HeaderTypeFile && include:
		lw := &orio.LimitedWriter{N: opts.MaxEntrySize}
		if _, err := io.Copy(lw, r); err != nil {
			return false, errors.Wrapf(err, "failed to read entry %q", h.Name)
		}
		return true, a.Add(p, asset.Bytes(lw.Bytes()))
	default:
		// keep the cursor valid for formats that read sequentially
		if _, err := io.Copy(io.Discard, r); err != nil {
			return false, errors.Wrapf(err, "failed to skip entry %q", h.Name)
		}
		return false, nil
	}
}

// entryPath converts a stored entry name to a Path. A trailing
// separator is not significant.
func entryPath(name string) (vpath.Path, error) {
	return vpath.Normalize(strings.TrimSuffix(name, vpath.Separator))
}
