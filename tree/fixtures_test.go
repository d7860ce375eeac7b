package tree_test

import (
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

type color uint8

const (
	red color = iota
	green
	blue
)

type item struct {
	ID    uint32
	Label string
}

var itemType = tree.NewType[item]("Item",
	tree.Number("ID", 0, func(i *item) uint32 { return i.ID }, func(i *item, v uint32) { i.ID = v }),
	tree.Text("Label", 1, func(i *item) string { return i.Label }, func(i *item, v string) { i.Label = v }, tree.Inline(8)),
)

type header struct {
	Color   color
	Level   int16
	Scale   float32
	Weight  float64
	Serial  uint64
	Delta   int64
	Name    string
	Tag     string
	Items   []*item
	Aliases []string
	Samples []int32
	Origin  *item
	Link    *item
}

// headerFixedSize is the size of header's in-place region.
const headerFixedSize = 84

var headerType = tree.NewType[header]("Header",
	// declared out of order on purpose; Order decides the layout.
	tree.Number("Level", 1, func(h *header) int16 { return h.Level }, func(h *header, v int16) { h.Level = v }),
	tree.Number("Color", 0, func(h *header) color { return h.Color }, func(h *header, v color) { h.Color = v }, tree.RightPadding(1)),
	tree.Number("Scale", 2, func(h *header) float32 { return h.Scale }, func(h *header, v float32) { h.Scale = v }),
	tree.Number("Weight", 3, func(h *header) float64 { return h.Weight }, func(h *header, v float64) { h.Weight = v }),
	tree.Number("Serial", 4, func(h *header) uint64 { return h.Serial }, func(h *header, v uint64) { h.Serial = v }),
	tree.Number("Delta", 5, func(h *header) int64 { return h.Delta }, func(h *header, v int64) { h.Delta = v }),
	tree.Text("Name", 6, func(h *header) string { return h.Name }, func(h *header, v string) { h.Name = v }, tree.AtOffset()),
	tree.Text("Tag", 7, func(h *header) string { return h.Tag }, func(h *header, v string) { h.Tag = v }, tree.Inline(4)),
	tree.ListOf("Items", 8, tree.RecordElem(itemType), func(h *header) []*item { return h.Items }, func(h *header, v []*item) { h.Items = v }),
	tree.ListOf("Aliases", 9, tree.TextElem(tree.AtOffset()), func(h *header) []string { return h.Aliases }, func(h *header, v []string) { h.Aliases = v }, tree.DuplicateEntryCount()),
	tree.ListOf("Samples", 10, tree.NumberElem[int32](), func(h *header) []int32 { return h.Samples }, func(h *header, v []int32) { h.Samples = v }),
	tree.Record("Origin", 11, itemType, func(h *header) *item { return h.Origin }, func(h *header, v *item) { h.Origin = v }),
	tree.Record("Link", 12, itemType, func(h *header) *item { return h.Link }, func(h *header, v *item) { h.Link = v }, tree.AtOffset()),
)

func sampleHeader() *header {
	return &header{
		Color:  blue,
		Level:  -12,
		Scale:  0.5,
		Weight: 1234.5678,
		Serial: 1<<63 + 1,
		Delta:  -1 << 50,
		Name:   "Makuta",
		Tag:    "TOA",
		Items: []*item{
			{ID: 1, Label: "mask"},
			{ID: 2, Label: "disk"},
		},
		Aliases: []string{"Onua", "Pohatu", ""},
		Samples: []int32{-1, 0, 1},
		Origin:  &item{ID: 7, Label: "origin12"},
		Link:    &item{ID: 8, Label: "link"},
	}
}

type pair struct {
	A    uint8
	Name string
}

var pairType = tree.NewType[pair]("Pair",
	tree.Number("A", 0, func(p *pair) uint8 { return p.A }, func(p *pair, v uint8) { p.A = v }),
	tree.Text("Name", 1, func(p *pair) string { return p.Name }, func(p *pair, v string) { p.Name = v }, tree.AtOffset()),
)

type folder struct {
	Name     string
	Children []*folder
}

var folderType = &tree.Type{
	Name: "Folder",
	Go:   reflect.TypeOf(&folder{}),
	New:  func() any { return new(folder) },
}

func init() {
	folderType.Fields = []tree.Field{
		tree.Text("Name", 0, func(f *folder) string { return f.Name }, func(f *folder, v string) { f.Name = v }, tree.Inline(8)),
		tree.ListOf("Children", 1, tree.RecordElem(folderType), func(f *folder) []*folder { return f.Children }, func(f *folder, v []*folder) { f.Children = v }),
	}
}

func mustBuild(t *tree.Type) *tree.Composite {
	c, err := tree.Build(t)
	if err != nil {
		panic(err)
	}
	return c
}
