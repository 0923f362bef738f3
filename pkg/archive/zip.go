// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the zip format binding.

package archive

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/events"
	"github.com/getoutreach/archivebox/pkg/log"
)

// _ ensures that the zipBinding type implements the Binding interface
var _ Binding = zipBinding{}

// zipBinding reads and writes zip archives with deflated entries.
type zipBinding struct{}

func (zipBinding) Format() Format {
	return Zip
}

func (zipBinding) Extensions() []string {
	return []string{"zip", "jar", "war", "ear"}
}

// NewEntryWriter returns a zip writer. The zip format has no separate
// compression layer, the level applies to each deflated entry.
func (zipBinding) NewEntryWriter(w io.Writer, opts *ExportOptions) (EntryWriter, error) {
	zw := zip.NewWriter(w)
	if level := opts.CompressionLevel; level > 0 {
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}
	return &zipEntryWriter{zw: zw}, nil
}

// NewEntryReader returns a reader over the zip central directory.
//
// Note: Due to how zip files work, the reader needs random access to
// the source. Sources that are not io.ReaderAt and io.Seeker are
// spooled to a file in opts.TempDir, or to memory when it is empty.
func (zipBinding) NewEntryReader(ctx context.Context, r io.Reader, opts *ImportOptions) (EntryReader, error) {
	ra, size, cleanup, err := randomAccess(ctx, r, opts.TempDir)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		if cerr := cleanup(); cerr != nil {
			log.Warn(ctx, "failed to remove zip spool", events.NewErrorInfo(cerr))
		}
		return nil, err
	}

	return &zipEntryReader{r: zr, cleanup: cleanup}, nil
}

// randomAccess returns a view of the rest of r that can be read at any
// offset, and a function releasing it.
func randomAccess(ctx context.Context, r io.Reader, tempDir string) (io.ReaderAt, int64, func() error, error) {
	noop := func() error { return nil }

	if ra, ok := r.(interface {
		io.ReaderAt
		io.Seeker
	}); ok {
		cur, err := ra.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, 0, nil, err
		}
		end, err := ra.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, nil, err
		}
		return io.NewSectionReader(ra, cur, end-cur), end - cur, noop, nil
	}

	if tempDir == "" {
		byt, err := io.ReadAll(r)
		if err != nil {
			return nil, 0, nil, err
		}
		return bytes.NewReader(byt), int64(len(byt)), noop, nil
	}

	f, err := os.CreateTemp(tempDir, "archivebox-zip-*")
	if err != nil {
		return nil, 0, nil, errors.Wrap(err, "failed to create zip spool")
	}
	cleanup := func() error {
		cerr := f.Close()
		if err := os.Remove(f.Name()); err != nil {
			return err
		}
		return cerr
	}

	log.Debug(ctx, "spooling zip source", log.F{"spool": f.Name()})
	size, err := io.Copy(f, r)
	if err != nil {
		if cerr := cleanup(); cerr != nil {
			log.Warn(ctx, "failed to remove zip spool", events.NewErrorInfo(cerr))
		}
		return nil, 0, nil, errors.Wrap(err, "failed to spool zip source")
	}
	return f, size, cleanup, nil
}

// zipEntryWriter implements the EntryWriter interface for zip files.
type zipEntryWriter struct {
	zw *zip.Writer
}

func (z *zipEntryWriter) OpenEntry(h *Header) (io.Writer, error) {
	fh := &zip.FileHeader{
		Name:     h.Name,
		Method:   zip.Deflate,
		Modified: h.ModTime,
	}
	mode := os.FileMode(h.Mode).Perm()
	if h.Type == HeaderTypeDirectory {
		fh.Method = zip.Store
		mode |= os.ModeDir
	}
	fh.SetMode(mode)

	return z.zw.CreateHeader(fh)
}

// CloseEntry is a no-op: the zip writer finishes an entry when the
// next one is created or the archive is closed.
func (z *zipEntryWriter) CloseEntry() error {
	return nil
}

// Close writes the central directory.
func (z *zipEntryWriter) Close() error {
	return z.zw.Close()
}

// zipEntryReader implements the EntryReader interface for zip files.
type zipEntryReader struct {
	r       *zip.Reader
	pos     int
	cleanup func() error
}

// Next advances to the next entry in the archive.
func (z *zipEntryReader) Next() (*Header, io.ReadCloser, error) {
	// if we've reached the end of the archive, return io.EOF
	if z.pos >= len(z.r.File) {
		return nil, nil, io.EOF
	}

	// get the next entry in the archive
	// and increment the position in the array
	f := z.r.File[z.pos]
	z.pos++

	inf := f.FileInfo()
	h := &Header{
		Name:    f.Name,
		Size:    inf.Size(),
		Mode:    int64(inf.Mode().Perm()),
		ModTime: f.Modified,
		Type:    HeaderTypeFile,
	}

	if inf.IsDir() || strings.HasSuffix(f.Name, "/") {
		h.Type = HeaderTypeDirectory
		return h, io.NopCloser(strings.NewReader("")), nil
	} else if !inf.Mode().IsRegular() {
		h.Type = HeaderTypeOther
	}

	r, err := f.Open()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create reader for file %q", f.Name)
	}

	return h, r, nil
}

// Close removes any spool file.
func (z *zipEntryReader) Close() error {
	return z.cleanup()
}
