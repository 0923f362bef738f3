// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the export walk shared by all formats.

package archive

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/asset"
	"github.com/getoutreach/archivebox/pkg/events"
	"github.com/getoutreach/archivebox/pkg/log"
	"github.com/getoutreach/archivebox/pkg/metrics"
	"github.com/getoutreach/archivebox/pkg/orerr"
	"github.com/getoutreach/archivebox/pkg/vpath"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// exportTo writes the nodes of a through b to w in path order and
// finalizes the format. Every failure is returned as an *ExportError.
// w is not closed.
func exportTo(ctx context.Context, a *Archive, b Binding, w io.Writer, opts *ExportOptions) (err error) {
	start := time.Now()
	ctx = log.NewContext(ctx, log.F{"archive.name": a.name, "archive.format": string(b.Format())})

	entries := 0
	defer func() {
		metrics.ReportLatency(metrics.OpExport, string(b.Format()), time.Since(start).Seconds(), err)
		metrics.CountEntries(metrics.OpExport, string(b.Format()), entries)
		if err == nil {
			log.Debug(ctx, "exported archive", log.F{"archive.entries": entries})
		}
	}()

	fail := func(op, name string, cause error) error {
		return exportError(op, name, b.Format(), cause)
	}

	ew, err := b.NewEntryWriter(w, opts)
	if err != nil {
		return fail("open", "", err)
	}

	closed := false
	defer func() {
		if closed {
			return
		}
		cerr := ew.Close()
		switch {
		case cerr == nil:
		case orerr.IsOneOf(err, context.Canceled, ErrStreamClosed):
			// the reader is gone, nothing can be flushed to it
			log.Debug(ctx, "entry writer closed after export was abandoned", events.Err(cerr))
		default:
			log.Warn(ctx, "failed to close entry writer", events.NewErrorInfo(cerr))
		}
	}()

	modTime := start.Truncate(time.Second)
	for p, n := range a.Content(opts.Filter) {
		if err := ctx.Err(); err != nil {
			return fail("write", p.String(), err)
		}

		if err := exportEntry(ew, p, n, modTime); err != nil {
			return fail("write", p.String(), err)
		}
		entries++
	}

	closed = true
	if err := ew.Close(); err != nil {
		return fail("finalize", "", err)
	}
	return nil
}

// exportEntry writes a single node.
func exportEntry(ew EntryWriter, p vpath.Path, n *Node, modTime time.Time) error {
	h := &Header{Name: entryName(p, n.IsDir()), ModTime: modTime}
	if n.IsDir() {
		h.Type, h.Mode = HeaderTypeDirectory, dirMode
		if _, err := ew.OpenEntry(h); err != nil {
			return err
		}
		return ew.CloseEntry()
	}

	size, err := asset.SizeOf(n.asset)
	if err != nil {
		return err
	}
	h.Type, h.Mode, h.Size = HeaderTypeFile, fileMode, size

	w, err := ew.OpenEntry(h)
	if err != nil {
		return err
	}

	rc, err := n.asset.Open()
	if err != nil {
		return err
	}
	written, err := io.Copy(w, rc)
	if cerr := rc.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if written != size {
		return errors.Errorf("asset produced %d bytes, expected %d", written, size)
	}
	return ew.CloseEntry()
}

// entryName converts a Path to a stored entry name: no leading
// separator, and a trailing one for directories.
func entryName(p vpath.Path, dir bool) string {
	name, _ := p.Rel(vpath.Root)
	if dir {
		return name + vpath.Separator
	}
	return name
}
