// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains format views of an archive.

package archive

import (
	"context"
	"io"

	"github.com/getoutreach/archivebox/pkg/async"
)

// View is an archive seen as a particular format. It imports that
// format into the archive and exports the archive in that format.
type View struct {
	a *Archive
	b Binding
}

// As returns a view of a as format f. It fails with
// ErrUnsupportedFormat when no binding is registered for f.
func (a *Archive) As(f Format) (*View, error) {
	b, err := lookup(f)
	if err != nil {
		return nil, err
	}
	return &View{a: a, b: b}, nil
}

// Format returns the format of the view.
func (v *View) Format() Format {
	return v.b.Format()
}

// Archive returns the archive behind the view.
func (v *View) Archive() *Archive {
	return v.a
}

// ImportFrom reads every entry of r into the archive. See ImportOptions
// for the available options; the default imports everything.
//
// The import is not atomic: when it fails, the entries added before the
// failure stay in the archive.
func (v *View) ImportFrom(ctx context.Context, r io.Reader, optFns ...ImportOptionFunc) error {
	opts, err := v.a.cfg.importOptions(optFns)
	if err != nil {
		return err
	}
	return importFrom(ctx, v.a, v.b, r, opts)
}

// ExportTo writes the archive to w and finalizes the format. w is not
// closed.
func (v *View) ExportTo(ctx context.Context, w io.Writer, optFns ...ExportOptionFunc) error {
	opts, err := v.a.cfg.exportOptions(optFns)
	if err != nil {
		return err
	}
	return exportTo(ctx, v.a, v.b, w, opts)
}

// ExportAll exports a to every writer in targets concurrently, one
// format per writer. It returns the first error; the remaining exports
// are canceled.
func ExportAll(ctx context.Context, a *Archive, targets map[Format]io.Writer, optFns ...ExportOptionFunc) error {
	views := make(map[Format]*View, len(targets))
	for f := range targets {
		v, err := a.As(f)
		if err != nil {
			return err
		}
		views[f] = v
	}

	exports := make([]async.Runner, 0, len(targets))
	for f, w := range targets {
		v := views[f]
		exports = append(exports, async.Func(func(ctx context.Context) error {
			return v.ExportTo(ctx, w, optFns...)
		}))
	}
	return async.RunGroup(exports).Run(ctx)
}
