package slbio

import (
	"errors"
	"io"
)

// NewReader returns a Reader reading from r.
func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{r: r}
}

// Reader reads fixed-width little-endian values from a seekable stream.
type Reader struct {
	r    io.ReadSeeker
	buff [8]byte
}

// Position returns the current absolute position.
func (r *Reader) Position() (int64, error) {
	return r.r.Seek(0, io.SeekCurrent)
}

// SetPosition moves to the absolute position pos.
func (r *Reader) SetPosition(pos int64) error {
	_, err := r.r.Seek(pos, io.SeekStart)
	return err
}

// Size returns the length of the stream. The position is left unchanged.
func (r *Reader) Size() (int64, error) {
	pos, err := r.Position()
	if err != nil {
		return 0, err
	}

	size, err := r.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}

	return size, r.SetPosition(pos)
}

// Skip moves the position n bytes forward without reading.
func (r *Reader) Skip(n int) error {
	_, err := r.r.Seek(int64(n), io.SeekCurrent)
	return err
}

// DoAtPosition moves to pos, calls fn and moves back to where it was.
// The position is restored even if fn fails; fn's error is returned, joined with the error from restoring if that fails too.
func (r *Reader) DoAtPosition(pos int64, fn func() error) error {
	return doAtPosition(r.r, pos, fn)
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	buff := make([]byte, n)
	return buff, Read(buff, r.r)
}

// ReadUint8 reads a uint8.
func (r *Reader) ReadUint8() (uint8, error) {
	err := Read(r.buff[:1], r.r)
	return r.buff[0], err
}

// ReadInt8 reads an int8.
func (r *Reader) ReadInt8() (int8, error) {
	n, err := r.ReadUint8()
	return int8(n), err
}

// ReadUint16 reads a uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	err := Read(r.buff[:2], r.r)
	return DecodeUint16(r.buff[:]), err
}

// ReadInt16 reads an int16.
func (r *Reader) ReadInt16() (int16, error) {
	n, err := r.ReadUint16()
	return int16(n), err
}

// ReadUint32 reads a uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	err := Read(r.buff[:4], r.r)
	return DecodeUint32(r.buff[:]), err
}

// ReadInt32 reads an int32.
func (r *Reader) ReadInt32() (int32, error) {
	n, err := r.ReadUint32()
	return int32(n), err
}

// ReadUint64 reads a uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	err := Read(r.buff[:8], r.r)
	return DecodeUint64(r.buff[:]), err
}

// ReadInt64 reads an int64.
func (r *Reader) ReadInt64() (int64, error) {
	n, err := r.ReadUint64()
	return int64(n), err
}

// ReadFloat32 reads an IEEE 754 float32.
func (r *Reader) ReadFloat32() (float32, error) {
	err := Read(r.buff[:4], r.r)
	return DecodeFloat32(r.buff[:]), err
}

// ReadFloat64 reads an IEEE 754 float64.
func (r *Reader) ReadFloat64() (float64, error) {
	err := Read(r.buff[:8], r.r)
	return DecodeFloat64(r.buff[:]), err
}

// ValueAtPosition is DoAtPosition for callbacks returning a value.
func ValueAtPosition[T any](r *Reader, pos int64, fn func() (T, error)) (T, error) {
	var v T
	err := r.DoAtPosition(pos, func() (err error) {
		v, err = fn()
		return err
	})
	return v, err
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.WriteSeeker) *Writer {
	return &Writer{w: w}
}

// Writer writes fixed-width little-endian values to a seekable stream.
type Writer struct {
	w    io.WriteSeeker
	buff [8]byte
}

// Position returns the current absolute position.
func (w *Writer) Position() (int64, error) {
	return w.w.Seek(0, io.SeekCurrent)
}

// SetPosition moves to the absolute position pos.
func (w *Writer) SetPosition(pos int64) error {
	_, err := w.w.Seek(pos, io.SeekStart)
	return err
}

// DoAtPosition moves to pos, calls fn and moves back to where it was.
// The position is restored even if fn fails; fn's error is returned, joined with the error from restoring if that fails too.
func (w *Writer) DoAtPosition(pos int64, fn func() error) error {
	return doAtPosition(w.w, pos, fn)
}

// WriteBytes writes b.
func (w *Writer) WriteBytes(b []byte) error {
	return Write(b, w.w)
}

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) error {
	var zeros [16]byte
	for n > 0 {
		l := min(n, len(zeros))
		if err := Write(zeros[:l], w.w); err != nil {
			return err
		}
		n -= l
	}
	return nil
}

// Align writes zero bytes until the position is a multiple of alignment.
// Nothing is written if it already is.
func (w *Writer) Align(alignment int) error {
	pos, err := w.Position()
	if err != nil {
		return err
	}

	a := int64(alignment)
	return w.WriteZeros(int((a - pos%a) % a))
}

// WriteUint8 writes a uint8.
func (w *Writer) WriteUint8(n uint8) error {
	w.buff[0] = n
	return Write(w.buff[:1], w.w)
}

// WriteInt8 writes an int8.
func (w *Writer) WriteInt8(n int8) error {
	return w.WriteUint8(uint8(n))
}

// WriteUint16 writes a uint16.
func (w *Writer) WriteUint16(n uint16) error {
	EncodeUint16(w.buff[:], n)
	return Write(w.buff[:2], w.w)
}

// WriteInt16 writes an int16.
func (w *Writer) WriteInt16(n int16) error {
	return w.WriteUint16(uint16(n))
}

// WriteUint32 writes a uint32.
func (w *Writer) WriteUint32(n uint32) error {
	EncodeUint32(w.buff[:], n)
	return Write(w.buff[:4], w.w)
}

// WriteInt32 writes an int32.
func (w *Writer) WriteInt32(n int32) error {
	return w.WriteUint32(uint32(n))
}

// WriteUint64 writes a uint64.
func (w *Writer) WriteUint64(n uint64) error {
	EncodeUint64(w.buff[:], n)
	return Write(w.buff[:8], w.w)
}

// WriteInt64 writes an int64.
func (w *Writer) WriteInt64(n int64) error {
	return w.WriteUint64(uint64(n))
}

// WriteFloat32 writes an IEEE 754 float32.
func (w *Writer) WriteFloat32(f float32) error {
	EncodeFloat32(w.buff[:], f)
	return Write(w.buff[:4], w.w)
}

// WriteFloat64 writes an IEEE 754 float64.
func (w *Writer) WriteFloat64(f float64) error {
	EncodeFloat64(w.buff[:], f)
	return Write(w.buff[:8], w.w)
}

func doAtPosition(s io.Seeker, pos int64, fn func() error) (err error) {
	saved, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	if _, err := s.Seek(pos, io.SeekStart); err != nil {
		return err
	}

	defer func() {
		if _, serr := s.Seek(saved, io.SeekStart); serr != nil {
			err = errors.Join(err, serr)
		}
	}()

	return fn()
}
