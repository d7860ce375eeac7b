package slbio_test

import (
	"io"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
)

func TestBufferWriteSeekOverwrite(t *testing.T) {
	var b slbio.Buffer

	_, err := b.Write([]byte{1, 2, 3, 4})
	td.CmpNoError(t, err)

	pos, err := b.Seek(1, io.SeekStart)
	td.CmpNoError(t, err)
	td.Cmp(t, pos, int64(1))

	_, err = b.Write([]byte{9})
	td.CmpNoError(t, err)
	td.Cmp(t, b.Bytes(), []byte{1, 9, 3, 4})

	pos, err = b.Seek(0, io.SeekCurrent)
	td.CmpNoError(t, err)
	td.Cmp(t, pos, int64(2))
}

func TestBufferWritePastEnd(t *testing.T) {
	b := slbio.NewBuffer([]byte{1})

	_, err := b.Seek(3, io.SeekStart)
	td.CmpNoError(t, err)
	td.CmpNoError(t, b.WriteByte(7))

	td.Cmp(t, b.Bytes(), []byte{1, 0, 0, 7})
	td.Cmp(t, b.Size(), 4)

	var empty slbio.Buffer
	_, err = empty.Seek(100, io.SeekStart)
	td.CmpNoError(t, err)
	n, err := empty.Write([]byte{1, 2})
	td.CmpNoError(t, err)
	td.Cmp(t, n, 2)
	td.Cmp(t, empty.Size(), 102)
	td.Cmp(t, empty.Bytes()[:100], make([]byte, 100))
	td.Cmp(t, empty.Bytes()[100:], []byte{1, 2})
}

func TestBufferRead(t *testing.T) {
	b := slbio.NewBuffer([]byte{1, 2, 3})

	got := make([]byte, 2)
	n, err := b.Read(got)
	td.CmpNoError(t, err)
	td.Cmp(t, n, 2)
	td.Cmp(t, got, []byte{1, 2})
	td.Cmp(t, b.Len(), 1)

	n, err = b.Read(got)
	td.CmpNoError(t, err)
	td.Cmp(t, n, 1)

	_, err = b.Read(got)
	td.Cmp(t, err, io.EOF)
}

func TestBufferSeekErrors(t *testing.T) {
	var b slbio.Buffer

	_, err := b.Seek(-1, io.SeekStart)
	td.CmpError(t, err)

	_, err = b.Seek(0, 42)
	td.CmpError(t, err)

	pos, err := b.Seek(0, io.SeekEnd)
	td.CmpNoError(t, err)
	td.Cmp(t, pos, int64(0))
}
