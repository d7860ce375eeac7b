package serializer_test

import (
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

// lookup is a Lookup over a fixed set of schemas.
type lookup map[reflect.Type]*tree.Type

func newLookup(types ...*tree.Type) lookup {
	l := make(lookup)
	for _, t := range types {
		l[t.Go] = t
	}
	return l
}

func (l lookup) Describe(t reflect.Type) (*tree.Type, bool) {
	desc, ok := l[t]
	return desc, ok
}

type kind uint16

const (
	kindMask kind = iota + 1
	kindDisk
)

type part struct {
	ID   uint32
	Kind kind
	Tag  string
}

var partType = tree.NewType[part]("Part",
	tree.Number("ID", 0, func(p *part) uint32 { return p.ID }, func(p *part, v uint32) { p.ID = v }),
	tree.Number("Kind", 1, func(p *part) kind { return p.Kind }, func(p *part, v kind) { p.Kind = v }, tree.RightPadding(2)),
	tree.Text("Tag", 2, func(p *part) string { return p.Tag }, func(p *part, v string) { p.Tag = v }, tree.Inline(6)),
)

type model struct {
	Name    string
	Scale   float32
	Parts   []*part
	Aliases []string
	Weights []float64
	Root    *part
	Extra   *part
}

var modelType = tree.NewType[model]("Model",
	tree.Text("Name", 0, func(m *model) string { return m.Name }, func(m *model, v string) { m.Name = v }, tree.AtOffset()),
	tree.Number("Scale", 1, func(m *model) float32 { return m.Scale }, func(m *model, v float32) { m.Scale = v }),
	tree.ListOf("Parts", 2, tree.RecordElem(partType), func(m *model) []*part { return m.Parts }, func(m *model, v []*part) { m.Parts = v }),
	tree.ListOf("Aliases", 3, tree.TextElem(tree.AtOffset()), func(m *model) []string { return m.Aliases }, func(m *model, v []string) { m.Aliases = v }, tree.DuplicateEntryCount()),
	tree.ListOf("Weights", 4, tree.NumberElem[float64](), func(m *model) []float64 { return m.Weights }, func(m *model, v []float64) { m.Weights = v }),
	tree.Record("Root", 5, partType, func(m *model) *part { return m.Root }, func(m *model, v *part) { m.Root = v }),
	tree.Record("Extra", 6, partType, func(m *model) *part { return m.Extra }, func(m *model, v *part) { m.Extra = v }, tree.AtOffset()),
)

func sampleModel() *model {
	return &model{
		Name:  "Kanohi",
		Scale: 2.5,
		Parts: []*part{
			{ID: 1, Kind: kindMask, Tag: "hau"},
			{ID: 2, Kind: kindDisk, Tag: "kakama"},
		},
		Aliases: []string{"mask of shielding", ""},
		Weights: []float64{0.25, -8},
		Root:    &part{ID: 3, Kind: kindMask, Tag: "root"},
		Extra:   &part{ID: 4, Kind: kindDisk},
	}
}

type node struct {
	Value    int16
	Children []*node
}

var nodeType = &tree.Type{
	Name: "Node",
	Go:   reflect.TypeOf(&node{}),
	New:  func() any { return new(node) },
}

func init() {
	nodeType.Fields = []tree.Field{
		tree.Number("Value", 0, func(n *node) int16 { return n.Value }, func(n *node, v int16) { n.Value = v }),
		tree.ListOf("Children", 1, tree.RecordElem(nodeType), func(n *node) []*node { return n.Children }, func(n *node, v []*node) { n.Children = v }),
	}
}

// blob reads and writes itself; a kind in place and its data at an offset.
type blob struct {
	Kind uint16
	Data string
}

func (b *blob) ReadSLB(r *slbio.Reader) error {
	k, err := r.ReadUint16()
	if err != nil {
		return err
	}

	offset, err := r.ReadUint32()
	if err != nil {
		return err
	}

	data, err := slbio.ValueAtPosition(r, int64(offset), func() ([]byte, error) {
		l, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		return r.ReadBytes(int(l))
	})
	if err != nil {
		return err
	}

	b.Kind, b.Data = k, string(data)
	return nil
}

func (b *blob) WriteSLB(w *tree.Writer) error {
	if err := w.WriteUint16(b.Kind); err != nil {
		return err
	}

	return w.Defer(func() error {
		if err := w.WriteUint8(uint8(len(b.Data))); err != nil {
			return err
		}
		return w.WriteBytes([]byte(b.Data))
	})
}
