package archive_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/archive"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    archive.Format
		wantErr bool
	}{
		{in: "zip", want: archive.Zip},
		{in: "JAR", want: archive.Zip},
		{in: ".war", want: archive.Zip},
		{in: "tar", want: archive.Tar},
		{in: "tar.gz", want: archive.TarGz},
		{in: "tgz", want: archive.TarGz},
		{in: "tbz2", want: archive.TarBz2},
		{in: "tar.xz", want: archive.TarXz},
		{in: "zstd", want: archive.TarZst},
		{in: "lz4", want: archive.TarLz4},
		{in: "7z", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := archive.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Assert(t, errors.Is(err, archive.ErrUnsupportedFormat))
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]archive.Format{
		"app.jar":         archive.Zip,
		"dist/app.tar.gz": archive.TarGz,
		"app.TGZ":         archive.TarGz,
		"app.tar":         archive.Tar,
		"app.tar.bz2":     archive.TarBz2,
		"app.tar.zst":     archive.TarZst,
	}
	for name, want := range tests {
		got, err := archive.FormatOf(name)
		assert.NilError(t, err, name)
		assert.Equal(t, got, want, name)
	}

	_, err := archive.FormatOf("README")
	assert.Assert(t, errors.Is(err, archive.ErrUnsupportedFormat))
}

func TestFormats(t *testing.T) {
	assert.DeepEqual(t, archive.Formats(), []archive.Format{
		archive.Tar, archive.TarBz2, archive.TarGz, archive.TarLz4,
		archive.TarXz, archive.TarZst, archive.Zip,
	})
}

func TestAsUnsupported(t *testing.T) {
	_, err := archive.New("a").As(archive.Format("rar"))
	assert.Assert(t, errors.Is(err, archive.ErrUnsupportedFormat))
}

// closeCounter is a compression layer that passes bytes through and
// counts how often it is closed.
type closeCounter struct {
	closes *int
}

type countingWriteCloser struct {
	io.Writer
	closes *int
}

func (c countingWriteCloser) Close() error {
	*c.closes++
	return nil
}

func (c closeCounter) WrapWriter(w io.Writer, _ int) (io.WriteCloser, error) {
	return countingWriteCloser{Writer: w, closes: c.closes}, nil
}

func (c closeCounter) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func TestTarCloseAlwaysClosesCompressor(t *testing.T) {
	tests := []struct {
		name    string
		w       io.Writer
		wantErr bool
	}{
		{name: "success", w: &bytes.Buffer{}},
		{name: "trailer fails", w: failingWriter{}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			closes := 0
			b := archive.NewTarBinding("tar.counted", closeCounter{closes: &closes})

			ew, err := b.NewEntryWriter(tc.w, &archive.ExportOptions{})
			assert.NilError(t, err)
			err = ew.Close()
			if tc.wantErr {
				assert.Assert(t, err != nil)
			} else {
				assert.NilError(t, err)
			}
			assert.Equal(t, closes, 1)
		})
	}
}
