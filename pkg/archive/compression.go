// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the compression layers wrapped around
// tar streams.

package archive

import (
	"bufio"
	"compress/bzip2"
	"io"

	dsbzip2 "github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"github.com/getoutreach/archivebox/pkg/orio"
)

// Compression wraps the raw byte stream of a format. Closing a wrapped
// writer flushes the compressed stream but never closes w, and closing
// a wrapped reader never closes r.
type Compression interface {
	// WrapWriter compresses into w. level is 0 for the default, or 1 to 9.
	WrapWriter(w io.Writer, level int) (io.WriteCloser, error)

	// WrapReader decompresses r.
	WrapReader(r io.Reader) (io.ReadCloser, error)
}

// _ ensures the compression layers implement the Compression interface
var (
	_ Compression = identityCompression{}
	_ Compression = gzipCompression{}
	_ Compression = bz2Compression{}
	_ Compression = xzCompression{}
	_ Compression = zstdCompression{}
	_ Compression = lz4Compression{}
)

// identityCompression leaves the stream untouched.
type identityCompression struct{}

func (identityCompression) WrapWriter(w io.Writer, _ int) (io.WriteCloser, error) {
	return orio.NopWriteCloser(w), nil
}

func (identityCompression) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

// gzipCompression is a Compression for gzip compressed streams
type gzipCompression struct{}

func (gzipCompression) WrapWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	return gzip.NewWriterLevel(w, level)
}

func (gzipCompression) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// bz2Compression is a Compression for bzip2 compressed streams. The
// standard library only decompresses bzip2.
type bz2Compression struct{}

func (bz2Compression) WrapWriter(w io.Writer, level int) (io.WriteCloser, error) {
	return dsbzip2.NewWriter(w, &dsbzip2.WriterConfig{Level: level})
}

func (bz2Compression) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(bzip2.NewReader(r)), nil
}

// xzCompression is a Compression for xz compressed streams. The level
// is ignored.
type xzCompression struct{}

func (xzCompression) WrapWriter(w io.Writer, _ int) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}

func (xzCompression) WrapReader(r io.Reader) (io.ReadCloser, error) {
	xzr, err := xz.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}

	return io.NopCloser(xzr), nil
}

// zstdCompression is a Compression for zstandard compressed streams
type zstdCompression struct{}

func (zstdCompression) WrapWriter(w io.Writer, level int) (io.WriteCloser, error) {
	encLevel := zstd.SpeedDefault
	if level > 0 {
		encLevel = zstd.EncoderLevelFromZstd(level)
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(encLevel))
}

func (zstdCompression) WrapReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}

// lz4Compression is a Compression for lz4 frame compressed streams
type lz4Compression struct{}

// nolint:gochecknoglobals // Why: lookup table
var lz4Levels = []lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func (lz4Compression) WrapWriter(w io.Writer, level int) (io.WriteCloser, error) {
	lw := lz4.NewWriter(w)
	if level > 0 && level <= len(lz4Levels) {
		if err := lw.Apply(lz4.CompressionLevelOption(lz4Levels[level-1])); err != nil {
			return nil, err
		}
	}
	return lw, nil
}

func (lz4Compression) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
