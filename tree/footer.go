package tree

import (
	"fmt"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
)

// Magic ends every SLB file.
const Magic uint32 = 0x00C0FFEE

// Footer is the relocation table at the end of an SLB file.
type Footer struct {
	// Start is the position the footer starts at.
	Start int64

	// Slots are the positions of every offset in the file.
	Slots []uint32
}

// Size returns the encoded size of the footer.
func (f Footer) Size() int64 {
	return FooterSize(len(f.Slots))
}

// FooterSize returns the encoded size of a footer with count slots.
func FooterSize(count int) int64 {
	return 4*int64(count) + 8
}

// WriteFooter aligns w to 4 bytes and writes the relocation table; each slot, the slot count and Magic.
func WriteFooter(w *slbio.Writer, slots []uint32) error {
	if w == nil {
		return slbio.NullArgument("writer")
	}

	if err := w.Align(4); err != nil {
		return err
	}

	for _, slot := range slots {
		if err := w.WriteUint32(slot); err != nil {
			return err
		}
	}

	if err := w.WriteUint32(uint32(len(slots))); err != nil {
		return err
	}

	return w.WriteUint32(Magic)
}

// ReadFooter reads the relocation table from the end of r.
// The position of r is left unchanged.
func ReadFooter(r *slbio.Reader) (Footer, error) {
	if r == nil {
		return Footer{}, slbio.NullArgument("reader")
	}

	size, err := r.Size()
	if err != nil {
		return Footer{}, err
	}

	if size < FooterSize(0) {
		return Footer{}, slbio.NewError(slbio.ErrMalformedData, "", fmt.Sprintf("%v bytes is too short for a footer", size))
	}

	var footer Footer
	err = r.DoAtPosition(size-8, func() error {
		count, err := r.ReadUint32()
		if err != nil {
			return err
		}

		magic, err := r.ReadUint32()
		if err != nil {
			return err
		}

		if magic != Magic {
			return slbio.NewError(slbio.ErrMalformedData, "", fmt.Sprintf("footer magic is %#08x, want %#08x", magic, Magic))
		}

		footer.Start = size - FooterSize(int(count))
		if footer.Start < 0 {
			return slbio.NewError(slbio.ErrMalformedData, "", fmt.Sprintf("footer of %v slots does not fit in %v bytes", count, size))
		}

		if err := r.SetPosition(footer.Start); err != nil {
			return err
		}

		footer.Slots = make([]uint32, count)
		for i := range footer.Slots {
			if footer.Slots[i], err = r.ReadUint32(); err != nil {
				return err
			}

			if int64(footer.Slots[i])+4 > footer.Start {
				return slbio.NewError(slbio.ErrMalformedData, "", fmt.Sprintf("slot %v at %#x is outside the data", i, footer.Slots[i]))
			}
		}
		return nil
	})

	return footer, err
}
