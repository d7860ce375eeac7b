// Package slbio provides the stream primitives the SLB codec is written against,
// as well as its error types.
//
// Reader and Writer wrap an io.ReadSeeker and io.WriteSeeker respectively. They add fixed-width little-endian
// reads and writes, and DoAtPosition; the save-seek-run-restore step used to follow offsets.
// Neither is safe for concurrent use, and the wrapped stream must not be moved by anyone else during a call;
// offset dereferencing depends on the saved position staying valid.
package slbio

import (
	"errors"
	"fmt"
	"io"
)

// MaxOffset is the largest stream position that can be stored in an offset field.
const MaxOffset = 1<<32 - 1

// Read reads from r, completely filling the buffer.
// In an ideal read, only a single int equality check is performed. If the read reports the whole buffer is read, returned errors are ignored.
// A reader that runs out of data part way through returns io.ErrUnexpectedEOF, and io.EOF if nothing was read at all.
func Read(buff []byte, r io.Reader) error {
	n, err := r.Read(buff)
	if n == len(buff) {
		return nil
	}

	end := n
	for end < len(buff) && err == nil && n > 0 {
		n, err = r.Read(buff[end:])
		end += n
	}

	if end != len(buff) {
		switch {
		case end > len(buff):
			return fmt.Errorf("bad io.Reader implementation: reported %v bytes read, but buffer is only %v bytes", end, len(buff))
		case errors.Is(err, io.EOF) && end == 0:
			return io.EOF
		case errors.Is(err, io.EOF):
			return io.ErrUnexpectedEOF
		case err != nil:
			return err
		default: // err == nil
			return fmt.Errorf("%w: want %v bytes but only got %v", io.ErrNoProgress, len(buff), end)
		}
	}
	return nil
}

// Write writes buff to w, handling errors of io.Writer with as little overhead as possible.
// In an ideal write, only a single int equality check is performed. It returns any error from Write().
func Write(buff []byte, w io.Writer) error {
	n, err := w.Write(buff)
	if n == len(buff) {
		return err
	}

	end := n
	for end < len(buff) && err == nil && n > 0 {
		n, err = w.Write(buff[end:])
		end += n
	}

	if end != len(buff) {
		switch {
		case end > len(buff):
			return fmt.Errorf("bad io.Writer implementation: Write() reported %v bytes written, but was only given %v bytes", end, len(buff))
		case err == nil:
			return fmt.Errorf("%w: want %v bytes but only wrote %v bytes", io.ErrShortWrite, len(buff), end)
		default:
			return err
		}
	}
	return nil
}
