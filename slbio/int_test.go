package slbio_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
)

func TestUint32(t *testing.T) {
	testCases := []uint32{
		0, 1, 2, 3, 4,
		246, 247, 248, 249, 250, 251, 252, 253, 254, 255, 256, 257,
		1 << 8, 1 << 16, 1 << 24, 1<<32 - 1,
	}

	buff := make([]byte, 4)
	for _, tC := range testCases {
		t.Run(fmt.Sprint(tC), func(t *testing.T) {
			slbio.EncodeUint32(buff, tC)
			td.Cmp(t, slbio.DecodeUint32(buff), tC)
		})
	}
}

func TestUint32LittleEndian(t *testing.T) {
	buff := make([]byte, 4)
	slbio.EncodeUint32(buff, 0x00C0FFEE)
	td.Cmp(t, buff, []byte{0xEE, 0xFF, 0xC0, 0x00})
}

func TestUint64(t *testing.T) {
	testCases := []uint64{
		0, 1, 255, 256, 1 << 32, 1<<64 - 1, 0x0102030405060708,
	}

	buff := make([]byte, 8)
	for _, tC := range testCases {
		t.Run(fmt.Sprint(tC), func(t *testing.T) {
			slbio.EncodeUint64(buff, tC)
			td.Cmp(t, slbio.DecodeUint64(buff), tC)
		})
	}

	slbio.EncodeUint64(buff, 0x0102030405060708)
	td.Cmp(t, buff, []byte{8, 7, 6, 5, 4, 3, 2, 1})
}

func TestFloat(t *testing.T) {
	testCases := []float64{
		0, 1, -1, math.Pi, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1),
	}

	buff := make([]byte, 8)
	for _, tC := range testCases {
		t.Run(fmt.Sprint(tC), func(t *testing.T) {
			slbio.EncodeFloat64(buff, tC)
			td.Cmp(t, slbio.DecodeFloat64(buff), tC)

			slbio.EncodeFloat32(buff, float32(tC))
			td.Cmp(t, slbio.DecodeFloat32(buff), float32(tC))
		})
	}
}
