package orio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/getoutreach/archivebox/pkg/orio"
)

type recordingCloser struct {
	name   string
	err    error
	closed *[]string
}

func (r recordingCloser) Close() error {
	*r.closed = append(*r.closed, r.name)
	return r.err
}

type readCloser struct {
	io.Reader
	io.Closer
}

func TestSequencedReadCloser(t *testing.T) {
	var closed []string
	inner := readCloser{
		Reader: strings.NewReader("hello"),
		Closer: recordingCloser{name: "inner", closed: &closed},
	}
	rc := orio.NewSequencedReadCloser(inner, recordingCloser{name: "outer", closed: &closed})

	b, err := io.ReadAll(rc)
	assert.NilError(t, err)
	assert.Equal(t, string(b), "hello")
	assert.NilError(t, rc.Close())
	assert.DeepEqual(t, closed, []string{"inner", "outer"})
}

func TestSequencedReadCloserStopsOnError(t *testing.T) {
	var closed []string
	boom := errors.New("boom")
	inner := readCloser{
		Reader: strings.NewReader(""),
		Closer: recordingCloser{name: "inner", err: boom, closed: &closed},
	}
	rc := orio.NewSequencedReadCloser(inner, recordingCloser{name: "outer", closed: &closed})
	assert.Equal(t, rc.Close(), boom)
	assert.DeepEqual(t, closed, []string{"inner"})
}

func TestSequencedWriteCloserClosesAll(t *testing.T) {
	var closed []string
	boom := errors.New("boom")
	var buf bytes.Buffer
	inner := orio.WriteCloser{
		Writer: &buf,
		Closer: recordingCloser{name: "inner", err: boom, closed: &closed},
	}
	wc := orio.NewSequencedWriteCloser(inner, recordingCloser{name: "outer", closed: &closed})

	_, err := wc.Write([]byte("data"))
	assert.NilError(t, err)
	assert.Equal(t, wc.Close(), boom)
	assert.DeepEqual(t, closed, []string{"inner", "outer"})
	assert.Equal(t, buf.String(), "data")
}

func TestNopWriteCloser(t *testing.T) {
	var buf bytes.Buffer
	wc := orio.NopWriteCloser(&buf)
	_, err := wc.Write([]byte("x"))
	assert.NilError(t, err)
	assert.NilError(t, wc.Close())
	assert.Equal(t, buf.String(), "x")
}
