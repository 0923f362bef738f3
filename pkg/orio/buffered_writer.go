// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Keeps the tail of a stream for error reporting.

package orio

// BufferedWriter buffers the last N bytes written to it.
//
// It does not error if more writes happen but uses a circular buffer
// and keeps only the last N bytes. Decoders tee their input through it
// so a failure can report the bytes that preceded it.
//
// Use Bytes() to access the buffer.
type BufferedWriter struct {
	buf   []byte
	total int64
	N     int
}

func (b *BufferedWriter) Write(p []byte) (int, error) {
	b.total += int64(len(p))
	offset, size := 0, len(p)
	if bufSize := len(b.buf); size+bufSize >= b.N {
		if size >= b.N {
			offset = size - b.N
			b.buf = b.buf[:0]
		} else {
			b.buf = b.buf[bufSize-(b.N-size):]
		}
	}
	b.buf = append(b.buf, p[offset:]...)
	return size, nil
}

// Bytes returns the last N bytes written.
func (b *BufferedWriter) Bytes() []byte {
	return b.buf
}

// Offset returns the total number of bytes written so far.
func (b *BufferedWriter) Offset() int64 {
	return b.total
}
