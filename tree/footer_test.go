package tree_test

import (
	"errors"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

func TestFooter(t *testing.T) {
	var b slbio.Buffer
	w := slbio.NewWriter(&b)

	slots, err := tree.Write(w, &pair{A: 0xAB, Name: "hi"}, mustBuild(pairType))
	td.CmpNoError(t, err)
	td.CmpNoError(t, tree.WriteFooter(w, slots))

	td.Cmp(t, b.Bytes(), []byte{
		0xAB, 5, 0, 0, 0, 2, 'h', 'i', 0,
		0, 0, 0, // alignment
		1, 0, 0, 0,
		1, 0, 0, 0,
		0xEE, 0xFF, 0xC0, 0x00,
	})

	r := slbio.NewReader(slbio.NewBuffer(b.Bytes()))
	footer, err := tree.ReadFooter(r)
	td.CmpNoError(t, err)
	td.Cmp(t, footer, tree.Footer{Start: 12, Slots: []uint32{1}})
	td.Cmp(t, footer.Size(), int64(12))

	pos, err := r.Position()
	td.CmpNoError(t, err)
	td.Cmp(t, pos, int64(0))
}

func TestFooterEmpty(t *testing.T) {
	var b slbio.Buffer
	td.CmpNoError(t, tree.WriteFooter(slbio.NewWriter(&b), nil))
	td.Cmp(t, b.Bytes(), []byte{0, 0, 0, 0, 0xEE, 0xFF, 0xC0, 0x00})

	footer, err := tree.ReadFooter(slbio.NewReader(slbio.NewBuffer(b.Bytes())))
	td.CmpNoError(t, err)
	td.Cmp(t, footer.Start, int64(0))
	td.CmpLen(t, footer.Slots, 0)
}

func TestFooterFromHeader(t *testing.T) {
	var b slbio.Buffer
	w := slbio.NewWriter(&b)

	slots, err := tree.Write(w, sampleHeader(), mustBuild(headerType))
	td.CmpNoError(t, err)
	td.CmpNoError(t, tree.WriteFooter(w, slots))
	td.Cmp(t, b.Size()%4, 0)

	footer, err := tree.ReadFooter(slbio.NewReader(slbio.NewBuffer(b.Bytes())))
	td.CmpNoError(t, err)
	td.Cmp(t, footer.Slots, slots)

	// every slot holds an offset into the data
	for _, slot := range footer.Slots {
		target := slbio.DecodeUint32(b.Bytes()[slot:])
		td.CmpLt(t, int64(target), footer.Start)
	}
}

func TestReadFooterMalformed(t *testing.T) {
	testCases := []struct {
		desc     string
		data     []byte
		contains string
	}{
		{
			desc:     "too short",
			data:     []byte{0xEE, 0xFF, 0xC0, 0x00},
			contains: "too short",
		},
		{
			desc:     "bad magic",
			data:     []byte{0, 0, 0, 0, 0xEF, 0xBE, 0xAD, 0xDE},
			contains: "magic",
		},
		{
			desc:     "too many slots",
			data:     []byte{9, 0, 0, 0, 0xEE, 0xFF, 0xC0, 0x00},
			contains: "does not fit",
		},
		{
			desc: "slot outside the data",
			data: []byte{
				0, 0, 0, 0,
				4, 0, 0, 0,
				1, 0, 0, 0,
				0xEE, 0xFF, 0xC0, 0x00,
			},
			contains: "outside the data",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := tree.ReadFooter(slbio.NewReader(slbio.NewBuffer(tC.data)))
			td.CmpTrue(t, errors.Is(err, slbio.ErrMalformedData), "got %v", err)
			td.Cmp(t, err.Error(), td.Contains(tC.contains))
		})
	}
}
