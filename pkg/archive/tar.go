// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the tar family of format bindings.

package archive

import (
	"archive/tar"
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/orio"
)

// _ ensures that the tarBinding type implements the Binding interface
var _ Binding = tarBinding{}

// tarBinding reads and writes POSIX tar archives, optionally wrapped in
// a compression layer.
type tarBinding struct {
	format     Format
	extensions []string
	comp       Compression
}

func tarBindings() []Binding {
	return []Binding{
		tarBinding{Tar, []string{"tar"}, identityCompression{}},
		tarBinding{TarGz, []string{"tgz", "gz", "taz"}, gzipCompression{}},
		tarBinding{TarBz2, []string{"tbz2", "tbz", "bz2"}, bz2Compression{}},
		tarBinding{TarXz, []string{"txz", "xz"}, xzCompression{}},
		tarBinding{TarZst, []string{"tzst", "zst", "zstd"}, zstdCompression{}},
		tarBinding{TarLz4, []string{"tlz4", "lz4"}, lz4Compression{}},
	}
}

// NewTarBinding returns a binding for tar archives wrapped in comp,
// registered under f. Use it with RegisterFormat to add compression
// layers.
func NewTarBinding(f Format, comp Compression, extensions ...string) Binding {
	return tarBinding{f, extensions, comp}
}

func (t tarBinding) Format() Format {
	return t.format
}

func (t tarBinding) Extensions() []string {
	return t.extensions
}

// NewEntryWriter returns a tar writer over the compression layer.
func (t tarBinding) NewEntryWriter(w io.Writer, opts *ExportOptions) (EntryWriter, error) {
	cw, err := t.comp.WrapWriter(w, opts.CompressionLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s compressor", t.format)
	}
	// Ensure we close in the order of tar -> compressor
	tw := tar.NewWriter(cw)
	return &tarEntryWriter{tw: tw, wc: orio.NewSequencedWriteCloser(tw, cw)}, nil
}

// NewEntryReader returns a tar reader over the decompression layer.
func (t tarBinding) NewEntryReader(_ context.Context, r io.Reader, _ *ImportOptions) (EntryReader, error) {
	cr, err := t.comp.WrapReader(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s stream", t.format)
	}

	// Ensure we close in the order of tar -> container (compressed data)
	tr := tar.NewReader(cr)
	return &tarEntryReader{tr: tr, rc: orio.NewSequencedReadCloser(io.NopCloser(tr), cr)}, nil
}

// tarEntryWriter implements the EntryWriter interface for tar files.
type tarEntryWriter struct {
	tw *tar.Writer
	wc io.Closer
}

func (t *tarEntryWriter) OpenEntry(h *Header) (io.Writer, error) {
	th := &tar.Header{
		Name:    h.Name,
		Mode:    h.Mode,
		ModTime: h.ModTime,
		Size:    h.Size,
	}
	if h.Type == HeaderTypeDirectory {
		th.Typeflag = tar.TypeDir
		th.Size = 0
	} else {
		th.Typeflag = tar.TypeReg
	}

	if err := t.tw.WriteHeader(th); err != nil {
		return nil, err
	}
	return t.tw, nil
}

// CloseEntry is a no-op: tar pads the entry when the next header or
// the trailer is written, and reports short content then.
func (t *tarEntryWriter) CloseEntry() error {
	return nil
}

// Close writes the tar trailer and flushes the compression layer. The
// compressor is closed even when the trailer cannot be written.
func (t *tarEntryWriter) Close() error {
	return t.wc.Close()
}

// tarEntryReader implements the EntryReader interface for tar files.
type tarEntryReader struct {
	tr *tar.Reader
	rc io.Closer
}

// Next advances to the next entry in the archive.
func (t *tarEntryReader) Next() (*Header, io.ReadCloser, error) {
	th, err := t.tr.Next()
	if err != nil {
		return nil, nil, err
	}

	h := &Header{
		Name:    th.Name,
		Size:    th.Size,
		Mode:    th.Mode,
		ModTime: th.ModTime,
		Type:    HeaderTypeOther,
	}

	//nolint:staticcheck // Why: TypeRegA is still found in old archives
	switch th.Typeflag {
	case tar.TypeReg, tar.TypeRegA:
		h.Type = HeaderTypeFile
	case tar.TypeDir:
		h.Type = HeaderTypeDirectory
	}

	return h, io.NopCloser(t.tr), nil
}

// Close closes the decompression layer.
func (t *tarEntryReader) Close() error {
	return t.rc.Close()
}
