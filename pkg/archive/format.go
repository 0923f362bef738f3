// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the format binding interfaces and the
// registry of supported formats.

package archive

import (
	"context"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Format names an archive format.
type Format string

const (
	Zip    Format = "zip"
	Tar    Format = "tar"
	TarGz  Format = "tar.gz"
	TarBz2 Format = "tar.bz2"
	TarXz  Format = "tar.xz"
	TarZst Format = "tar.zst"
	TarLz4 Format = "tar.lz4"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Header is a generic struct containing information about an entry
// in an archive.
type Header struct {
	// Name is the name of the entry as stored in the archive: no leading
	// separator, and a trailing separator for directories.
	Name string

	// Mode is the mode of the entry
	Mode int64

	// Size is the size of the entry, 0 for directories
	Size int64

	// ModTime is the modification time stored with the entry
	ModTime time.Time

	// Type is the type of entry this is
	// (file, directory, etc)
	Type HeaderType
}

// HeaderType is the type of entry a Header is for in an archive
type HeaderType string

const (
	// HeaderTypeFile is a file entry
	HeaderTypeFile HeaderType = "file"

	// HeaderTypeDirectory is a directory entry
	HeaderTypeDirectory HeaderType = "directory"

	// HeaderTypeOther is any entry that is neither, such as a link.
	// Importers skip them.
	HeaderTypeOther HeaderType = "other"
)

// EntryReader reads the entries of an archive format in order.
type EntryReader interface {
	// Next returns the next entry in the archive, or returns io.EOF if
	// there are no more entries. The returned reader is only valid until
	// the following call to Next.
	Next() (*Header, io.ReadCloser, error)

	// Close releases the reader. It does not close the source.
	Close() error
}

// EntryWriter writes the entries of an archive format.
type EntryWriter interface {
	// OpenEntry starts a new entry and returns the writer for its
	// content. Directory entries take no content.
	OpenEntry(h *Header) (io.Writer, error)

	// CloseEntry finishes the entry started by OpenEntry.
	CloseEntry() error

	// Close finalizes the format stream, including any compression
	// layer. It does not close the destination.
	Close() error
}

// Binding supplies the format specific primitives used by the generic
// import and export walks.
type Binding interface {
	// Format is the name the binding is registered under.
	Format() Format

	// Extensions are the file name extensions of the format, without
	// the leading dot, most common first.
	Extensions() []string

	// NewEntryWriter starts writing the format to w.
	NewEntryWriter(w io.Writer, opts *ExportOptions) (EntryWriter, error)

	// NewEntryReader starts reading the format from r.
	NewEntryReader(ctx context.Context, r io.Reader, opts *ImportOptions) (EntryReader, error)
}

// nolint:gochecknoglobals // Why: registry of bindings
var (
	bindingsMu sync.RWMutex
	bindings   = map[Format]Binding{}
)

// RegisterFormat makes a binding available to As and ParseFormat,
// replacing any binding registered for the same format.
func RegisterFormat(b Binding) {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	bindings[b.Format()] = b
}

// Formats returns the registered formats, sorted by name.
func Formats() []Format {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()

	out := make([]Format, 0, len(bindings))
	for f := range bindings {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func lookup(f Format) (Binding, error) {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()

	b, ok := bindings[f]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", string(f))
	}
	return b, nil
}

// ParseFormat resolves a format name or extension, such as "zip",
// "jar", ".tgz" or "tar.gz", case insensitively.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")

	bindingsMu.RLock()
	defer bindingsMu.RUnlock()

	if _, ok := bindings[Format(s)]; ok {
		return Format(s), nil
	}
	for f, b := range bindings {
		if slices.Contains(b.Extensions(), s) {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// FormatOf returns the format of a file name from its longest
// registered extension, so "app.tar.gz" is TarGz rather than a plain
// gzip stream.
func FormatOf(fileName string) (Format, error) {
	lower := strings.ToLower(fileName)

	bindingsMu.RLock()
	defer bindingsMu.RUnlock()

	var (
		best    Format
		bestLen int
	)
	for f, b := range bindings {
		for _, ext := range append([]string{string(f)}, b.Extensions()...) {
			if len(ext) > bestLen && strings.HasSuffix(lower, "."+ext) {
				best, bestLen = f, len(ext)
			}
		}
	}
	if best == "" {
		return "", errors.Wrapf(ErrUnsupportedFormat, "no format for %q", fileName)
	}
	return best, nil
}

func init() { //nolint:gochecknoinits // Why: registers the built in bindings
	RegisterFormat(zipBinding{})
	for _, b := range tarBindings() {
		RegisterFormat(b)
	}
}
