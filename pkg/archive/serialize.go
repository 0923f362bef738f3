// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the binary serialization of archives.

package archive

import (
	"bytes"
	"context"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/getoutreach/archivebox/pkg/log"
	"github.com/getoutreach/archivebox/pkg/orio"
)

// The serialized form of an archive is a sequence of CBOR items:
//
//  1. a text string holding the archive name
//  2. an indefinite length byte string whose chunks are the archive
//     exported as zip, ended by the CBOR break byte
//  3. a trailer map holding the serialization version
//
// Decoders read the first two items and skip everything after them, so
// items may be appended in later versions.
const serialVersion = 1

// serialTrailer is the third item of the serialized form.
type serialTrailer struct {
	Version int `cbor:"v"`
}

// snippetSize is how much of the input a decode error reports.
const snippetSize = 64

// nolint:gochecknoglobals // Why: immutable codec modes
var (
	serialEncMode cbor.EncMode
	serialDecMode cbor.DecMode
)

func init() { //nolint:gochecknoinits // Why: builds the codec modes once
	var err error
	serialEncMode, err = cbor.EncOptions{IndefLength: cbor.IndefLengthAllowed}.EncMode()
	if err != nil {
		panic("archive: CBOR encoder initialization failed: " + err.Error())
	}
	serialDecMode, err = cbor.DecOptions{IndefLength: cbor.IndefLengthAllowed}.DecMode()
	if err != nil {
		panic("archive: CBOR decoder initialization failed: " + err.Error())
	}
}

// chunkWriter writes every Write as one chunk of an open indefinite
// length byte string.
type chunkWriter struct {
	enc *cbor.Encoder
}

func (c chunkWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := c.enc.Encode(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Encode writes the serialized form of a to w.
func Encode(ctx context.Context, w io.Writer, a *Archive) error {
	fail := func(err error) error {
		return exportError("serialize", "", Zip, err)
	}

	enc := serialEncMode.NewEncoder(w)
	if err := enc.Encode(a.name); err != nil {
		return fail(err)
	}
	if err := enc.StartIndefiniteByteString(); err != nil {
		return fail(err)
	}

	v, err := a.As(Zip)
	if err != nil {
		return fail(err)
	}
	if err := v.ExportTo(ctx, chunkWriter{enc}); err != nil {
		return err
	}

	if err := enc.EndIndefinite(); err != nil {
		return fail(err)
	}
	if err := enc.Encode(serialTrailer{Version: serialVersion}); err != nil {
		return fail(err)
	}
	return nil
}

// Decode reads a serialized archive from r, consuming r to its end.
func Decode(ctx context.Context, r io.Reader, opts ...Option) (*Archive, error) {
	tail := &orio.BufferedWriter{N: snippetSize}
	fail := func(err error) error {
		return importError("deserialize", "", Zip, errors.Wrapf(err, "at offset %d after %q",
			tail.Offset(), string(tail.Bytes())))
	}

	dec := serialDecMode.NewDecoder(io.TeeReader(r, tail))

	var name string
	if err := dec.Decode(&name); err != nil {
		return nil, fail(errors.Wrap(err, "failed to read archive name"))
	}

	var payload []byte
	if err := dec.Decode(&payload); err != nil {
		return nil, fail(errors.Wrap(err, "failed to read zip payload"))
	}

	a := New(name, opts...)
	v, err := a.As(Zip)
	if err != nil {
		return nil, fail(err)
	}
	if err := v.ImportFrom(ctx, bytes.NewReader(payload)); err != nil {
		return nil, err
	}

	// items after the payload are optional
	var trailer serialTrailer
	if err := dec.Decode(&trailer); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *cbor.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fail(errors.Wrap(err, "failed to read trailer"))
		}
	}
	for {
		err := dec.Skip()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fail(errors.Wrap(err, "failed to skip trailing item"))
		}
	}
	if trailer.Version > serialVersion {
		log.Debug(ctx, "decoded archive written by a newer version",
			log.F{"archive.name": name, "serial.version": trailer.Version})
	}

	return a, nil
}

// WriteTo implements io.WriterTo, writing the serialized form of a.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := Encode(context.Background(), cw, a)
	return cw.n, err
}

// ReadFrom implements io.ReaderFrom. It replaces the name and content
// of a with the serialized archive read from r. On failure a is left
// unchanged.
func (a *Archive) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	decoded, err := Decode(context.Background(), cr, WithConfig(a.cfg))
	if err != nil {
		return cr.n, err
	}
	a.name = decoded.name
	a.replaceContent(decoded)
	return cr.n, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *Archive) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := a.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *Archive) UnmarshalBinary(data []byte) error {
	if a.root == nil {
		*a = *New("")
	}
	_, err := a.ReadFrom(bytes.NewReader(data))
	return err
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
