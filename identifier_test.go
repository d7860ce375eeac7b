package slb_test

import (
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"gopkg.in/yaml.v3"

	slb "github.com/TheLegendOfMataNui/SAGESharp-sub001"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/serializer"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

func TestNewIdentifier(t *testing.T) {
	id, err := slb.NewIdentifier("IDEN")
	td.CmpNoError(t, err)
	td.Cmp(t, id, slb.Identifier(0x4944454E))
	td.Cmp(t, id.String(), "IDEN")
	td.Cmp(t, id.Bytes(), [4]byte{'I', 'D', 'E', 'N'})

	_, err = slb.NewIdentifier("IDENT")
	td.CmpError(t, err)
}

func TestIdentifierString(t *testing.T) {
	testCases := []struct {
		desc string
		id   slb.Identifier
		want string
	}{
		{desc: "printable", id: 0x4B4F4E41, want: "KONA"},
		{desc: "zero", id: 0, want: "0x00000000"},
		{desc: "control character", id: 0x4B4F4E0A, want: "0x4B4F4E0A"},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			td.Cmp(t, tC.id.String(), tC.want)

			var got slb.Identifier
			td.CmpNoError(t, got.UnmarshalText([]byte(tC.want)))
			td.Cmp(t, got, tC.id)
		})
	}
}

// An identifier is stored little-endian, so its characters are back to front on disk.
func TestIdentifierRoundTrip(t *testing.T) {
	id, err := slb.NewIdentifier("IDEN")
	td.CmpNoError(t, err)

	s, err := serializer.For[slb.Identifier](serializer.NewFactory(nil))
	td.CmpNoError(t, err)

	var b slbio.Buffer
	td.CmpNoError(t, s.Write(tree.NewWriter(slbio.NewWriter(&b)), id))
	td.Cmp(t, b.Bytes(), []byte{'N', 'E', 'D', 'I'})

	got, err := s.Read(slbio.NewReader(slbio.NewBuffer(b.Bytes())))
	td.CmpNoError(t, err)
	td.Cmp(t, got, id)
}

func TestIdentifierYAML(t *testing.T) {
	type entry struct {
		Kind slb.Identifier `yaml:"kind"`
	}

	out, err := yaml.Marshal(entry{Kind: 0x4D41534B})
	td.CmpNoError(t, err)
	td.Cmp(t, string(out), "kind: MASK\n")

	var got entry
	td.CmpNoError(t, yaml.Unmarshal([]byte("kind: \"0x0000002A\"\n"), &got))
	td.Cmp(t, got.Kind, slb.Identifier(42))

	td.CmpError(t, yaml.Unmarshal([]byte("kind: TOOLONG\n"), &got))
}
