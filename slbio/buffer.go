package slbio

import (
	"errors"
	"io"
)

// NewBuffer returns a Buffer holding b, positioned at the start.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{buff: b}
}

// Buffer is an in-memory io.ReadWriteSeeker. It operates similar to bytes.Buffer,
// but reads do not consume data, and writes overwrite data at the current position.
// Seeking past the end and writing fills the gap with zeros.
// The zero value is an empty Buffer ready to use.
type Buffer struct {
	buff []byte
	off  int
}

// Read implements io.Reader
func (b *Buffer) Read(buff []byte) (int, error) {
	if b.off >= len(b.buff) {
		if len(buff) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}

	n := copy(buff, b.buff[b.off:])
	b.off += n
	return n, nil
}

// ReadByte implements io.ByteReader
func (b *Buffer) ReadByte() (byte, error) {
	if b.Len() == 0 {
		return 0, io.EOF
	}
	by := b.buff[b.off]
	b.off++
	return by, nil
}

// Write implements io.Writer
func (b *Buffer) Write(buff []byte) (int, error) {
	n := copy(b.buff[b.grow(len(buff)):], buff)
	b.off += n
	return n, nil
}

// WriteByte implements io.ByteWriter
func (b *Buffer) WriteByte(by byte) error {
	b.buff[b.grow(1)] = by
	b.off++
	return nil
}

// Seek implements io.Seeker
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.off) + offset
	case io.SeekEnd:
		abs = int64(len(b.buff)) + offset
	default:
		return 0, errors.New("slbio.Buffer.Seek: invalid whence")
	}

	if abs < 0 {
		return 0, errors.New("slbio.Buffer.Seek: negative position")
	}

	b.off = int(abs)
	return abs, nil
}

// Len returns the length of the unread portion of the buffer
func (b *Buffer) Len() int {
	if b.off >= len(b.buff) {
		return 0
	}
	return len(b.buff) - b.off
}

// Size returns the length of the whole buffer.
func (b *Buffer) Size() int {
	return len(b.buff)
}

// Bytes returns the buffer's contents.
// The slice is only valid until the next write.
func (b *Buffer) Bytes() []byte {
	return b.buff
}

// grow makes room for n bytes at the current offset, returning the offset.
func (b *Buffer) grow(n int) int {
	end := b.off + n
	if end <= len(b.buff) {
		return b.off
	}

	if end <= cap(b.buff) {
		l := len(b.buff)
		b.buff = b.buff[:end]
		clear(b.buff[l:])
		return b.off
	}

	// must allocate
	nb := make([]byte, end, max(end, 2*cap(b.buff)))
	copy(nb, b.buff)
	b.buff = nb
	return b.off
}
