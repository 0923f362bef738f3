// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Defines the Asset capability and its standard implementations.

// Package asset contains byte producing resources that can be stored in
// an archive. An Asset is a capability, not a buffer: every call to Open
// produces a fresh reader, so the same archive can be exported any number
// of times.
package asset

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Asset produces a fresh readable byte sequence on demand.
type Asset interface {
	// Open returns a new reader positioned at the start of the content.
	// Callers must close it.
	Open() (io.ReadCloser, error)
}

// Sized is implemented by assets that know their length without being
// read. Exporters use it to avoid buffering entries whose size must be
// declared up front.
type Sized interface {
	Size() (int64, error)
}

// _ ensures the implementations satisfy the interfaces
var (
	_ Asset = Bytes(nil)
	_ Sized = Bytes(nil)
	_ Asset = String("")
	_ Sized = String("")
	_ Asset = File("")
	_ Sized = File("")
	_ Asset = Func(nil)
)

// Bytes is an in-memory asset. The slice must not be modified after it
// has been handed to an archive.
type Bytes []byte

// Open implements Asset.
func (b Bytes) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Size implements Sized.
func (b Bytes) Size() (int64, error) {
	return int64(len(b)), nil
}

// String is an in-memory asset backed by a string.
type String string

// Open implements Asset.
func (s String) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

// Size implements Sized.
func (s String) Size() (int64, error) {
	return int64(len(s)), nil
}

// Empty returns an asset with no content.
func Empty() Asset {
	return Bytes(nil)
}

// File is an asset that reads a file on the host filesystem each time
// it is opened.
type File string

// Open implements Asset.
func (f File) Open() (io.ReadCloser, error) {
	fh, err := os.Open(string(f))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open asset file %q", string(f))
	}
	return fh, nil
}

// Size implements Sized.
func (f File) Size() (int64, error) {
	inf, err := os.Stat(string(f))
	if err != nil {
		return 0, errors.Wrapf(err, "failed to stat asset file %q", string(f))
	}
	return inf.Size(), nil
}

// Func adapts a function to the Asset interface.
type Func func() (io.ReadCloser, error)

// Open implements Asset.
func (f Func) Open() (io.ReadCloser, error) {
	return f()
}

// ReadAll opens a and returns its full content.
func ReadAll(a Asset) ([]byte, error) {
	rc, err := a.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	byt, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read asset")
	}
	return byt, nil
}

// SizeOf returns the size of a, reading it completely when it does not
// implement Sized.
func SizeOf(a Asset) (int64, error) {
	if s, ok := a.(Sized); ok {
		return s.Size()
	}

	rc, err := a.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n, err := io.Copy(io.Discard, rc)
	if err != nil {
		return 0, errors.Wrap(err, "failed to size asset")
	}
	return n, nil
}
