// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Error taxonomy for archive mutation, import and export.

package archive

import (
	"strings"

	"github.com/getoutreach/archivebox/pkg/orerr"
)

const (
	// ErrIllegalArgument is returned when a required argument to a
	// mutation is missing. Nothing is mutated.
	ErrIllegalArgument orerr.SentinelError = "illegal argument"

	// ErrPathIsDirectory is returned when adding an asset where a
	// directory already exists.
	ErrPathIsDirectory orerr.SentinelError = "path is a directory"

	// ErrPathIsFile is returned when a file occupies the path, or one of
	// its ancestors, that must be a directory.
	ErrPathIsFile orerr.SentinelError = "path is a file"

	// ErrArchiveImport is matched by every *ImportError.
	ErrArchiveImport orerr.SentinelError = "archive import failed"

	// ErrArchiveExport is matched by every *ExportError.
	ErrArchiveExport orerr.SentinelError = "archive export failed"

	// ErrFileExists is returned when exporting to an existing file
	// without overwrite.
	ErrFileExists orerr.SentinelError = "file already exists"

	// ErrUnsupportedFormat is returned when no binding is registered for
	// a format.
	ErrUnsupportedFormat orerr.SentinelError = "unsupported archive format"

	// ErrStreamClosed is the cause carried by the shutdown error a
	// producer sees once the reader of its stream has closed it.
	ErrStreamClosed orerr.SentinelError = "export stream closed by reader"
)

// ImportError wraps any failure while reading an archive format into
// an Archive. Entries applied before the failure are kept.
type ImportError struct {
	// Op is the step that failed, e.g. "open", "read" or "add".
	Op string

	// Path is the entry being processed, if any.
	Path string

	Format Format
	Err    error
}

func (e *ImportError) Error() string {
	return codecErrorString("import", e.Op, e.Format, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrArchiveImport) hold for every ImportError.
func (e *ImportError) Is(target error) bool {
	return target == ErrArchiveImport
}

// ExportError wraps any failure while writing an Archive in an archive
// format.
type ExportError struct {
	// Op is the step that failed, e.g. "open", "write" or "finalize".
	Op string

	// Path is the entry being processed, if any.
	Path string

	Format Format
	Err    error
}

func (e *ExportError) Error() string {
	return codecErrorString("export", e.Op, e.Format, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrArchiveExport) hold for every ExportError.
func (e *ExportError) Is(target error) bool {
	return target == ErrArchiveExport
}

func codecErrorString(kind, op string, f Format, path string, err error) string {
	var sb strings.Builder
	sb.WriteString(kind)
	if f != "" {
		sb.WriteString(" " + string(f))
	}
	if op != "" {
		sb.WriteString(" " + op)
	}
	if path != "" {
		sb.WriteString(" " + path)
	}
	if err != nil {
		sb.WriteString(": " + err.Error())
	}
	return sb.String()
}

// codecInfo is the log info attached to import and export errors.
type codecInfo struct {
	op     string
	format Format
	path   string
}

// MarshalLog implements log.Marshaler.
func (c codecInfo) MarshalLog(addField func(key string, v interface{})) {
	addField("archive.op", c.op)
	addField("archive.format", string(c.format))
	if c.path != "" {
		addField("archive.entry", c.path)
	}
}

// importError returns an *ImportError carrying its fields as log info.
func importError(op, path string, f Format, cause error) error {
	return orerr.New(&ImportError{Op: op, Path: path, Format: f, Err: cause},
		orerr.WithInfo(codecInfo{op: op, format: f, path: path}))
}

// exportError returns an *ExportError carrying its fields as log info.
func exportError(op, path string, f Format, cause error) error {
	return orerr.New(&ExportError{Op: op, Path: path, Format: f, Err: cause},
		orerr.WithInfo(codecInfo{op: op, format: f, path: path}))
}
