package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/internal/config"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

// Report describes the relocation footer of one SLB file.
type Report struct {
	File string `yaml:"file" cbor:"file"`
	Size int64  `yaml:"size" cbor:"size"`

	// Digest is the BLAKE3 digest of the whole file, in hex.
	Digest string `yaml:"blake3" cbor:"blake3"`

	// DataSize is the size of everything before the footer.
	DataSize int64 `yaml:"data_size" cbor:"data_size"`

	Offsets []Offset `yaml:"offsets" cbor:"offsets"`
}

// Offset is an offset in the file; where it is stored and what it points at.
type Offset struct {
	Slot   uint32 `yaml:"slot" cbor:"slot"`
	Target uint32 `yaml:"target" cbor:"target"`
}

// inspect reads the footer of data and resolves every offset it lists.
// With checkTargets, offsets pointing past the data are malformed.
func inspect(name string, data []byte, checkTargets bool) (*Report, error) {
	footer, err := tree.ReadFooter(slbio.NewReader(slbio.NewBuffer(data)))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}

	digest := blake3.Sum256(data)
	report := &Report{
		File:     name,
		Size:     int64(len(data)),
		Digest:   hex.EncodeToString(digest[:]),
		DataSize: footer.Start,
		Offsets:  make([]Offset, len(footer.Slots)),
	}

	for i, slot := range footer.Slots {
		target := slbio.DecodeUint32(data[slot:])
		if checkTargets && int64(target) >= footer.Start {
			return nil, fmt.Errorf("%v: %w", name, slbio.NewError(
				slbio.ErrMalformedData,
				"",
				fmt.Sprintf("offset at %#x points at %#x, past the data", slot, target),
			))
		}
		report.Offsets[i] = Offset{Slot: slot, Target: target}
	}

	return report, nil
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("slbinspect: CBOR encoder initialization failed: " + err.Error())
	}
}

// writeReports writes reports to w in format.
func writeReports(w io.Writer, format config.Format, reports []*Report) error {
	switch format {
	case config.YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()

	case config.CBOR:
		return encMode.NewEncoder(w).Encode(reports)

	default:
		for _, r := range reports {
			if _, err := fmt.Fprintf(w, "%v: %v bytes, %v bytes of data, %v offsets\nblake3 %v\n",
				r.File, r.Size, r.DataSize, len(r.Offsets), r.Digest); err != nil {
				return err
			}
			for _, o := range r.Offsets {
				if _, err := fmt.Fprintf(w, "  %#08x -> %#08x\n", o.Slot, o.Target); err != nil {
					return err
				}
			}
		}
		return nil
	}
}
