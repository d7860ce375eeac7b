package tree

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
)

// Build validates t and resolves it into a node graph.
// Record types referenced by t are built with it; a type may reference itself through a list, and only through a list.
//
// Every problem with the schema is an slbio.ErrMalformedSchema error naming the type, and the field where there is one.
func Build(t *Type) (*Composite, error) {
	if t == nil {
		return nil, slbio.NullArgument("type")
	}

	b := builder{
		built: make(map[*Type]*Composite),
		open:  make(map[*Type]bool),
	}
	return b.composite(t)
}

type builder struct {
	built map[*Type]*Composite

	// open holds the types being built that the current field is stored within.
	// Entering a list clears it, as a list can be empty.
	open map[*Type]bool
}

func (b *builder) composite(t *Type) (*Composite, error) {
	name := t.String()

	if c, ok := b.built[t]; ok {
		if b.open[t] {
			return nil, slbio.NewError(slbio.ErrMalformedSchema, name, "type contains itself outside of a list")
		}
		return c, nil
	}

	if t.New == nil {
		return nil, slbio.NewError(slbio.ErrMalformedSchema, name, "type has no public parameterless constructor")
	}

	if len(t.Fields) == 0 {
		return nil, slbio.NewError(slbio.ErrMalformedSchema, name, "type has no serializable fields")
	}

	ty := t.Go
	if ty == nil {
		ty = reflect.TypeOf(t.New())
	}

	fields := make([]Field, len(t.Fields))
	copy(fields, t.Fields)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Order < fields[j].Order })

	for i := 1; i < len(fields); i++ {
		if fields[i].Order == fields[i-1].Order {
			return nil, slbio.NewError(
				slbio.ErrMalformedSchema,
				name,
				fmt.Sprintf("fields %v and %v have the same order %v", fields[i-1].Name, fields[i].Name, fields[i].Order),
			)
		}
	}

	c := &Composite{
		ty:   ty,
		name: name,
		new:  t.New,
	}
	b.built[t] = c
	b.open[t] = true
	defer delete(b.open, t)

	edges := make([]Edge, 0, len(fields))
	for _, f := range fields {
		child, err := b.field(name, f)
		if err != nil {
			return nil, err
		}

		edges = append(edges, Edge{
			Name:    f.Name,
			Extract: f.Get,
			Set:     f.Set,
			Child:   child,
		})
	}

	c.Edges = edges
	return c, nil
}

func (b *builder) field(typeName string, f Field) (Node, error) {
	malformed := func(format string, args ...any) error {
		return slbio.NewFieldError(slbio.ErrMalformedSchema, typeName, f.Name, fmt.Sprintf(format, args...))
	}

	switch {
	case f.Get == nil:
		return nil, malformed("field has no usable getter")
	case f.Set == nil:
		return nil, malformed("field has no usable setter")
	case f.RightPadding < 0:
		return nil, malformed("negative padding %v", f.RightPadding)
	}

	n, err := b.node(typeName, f.Name, f.Kind, f.Value, f.Record, f.Elem, f.Modifiers)
	if err != nil {
		return nil, err
	}

	if f.RightPadding > 0 {
		n = &Padding{Child: n, Size: f.RightPadding}
	}

	return n, nil
}

func (b *builder) node(typeName, fieldName string, kind Kind, value reflect.Type, record *Type, elem *Element, mods Modifiers) (Node, error) {
	malformed := func(format string, args ...any) error {
		return slbio.NewFieldError(slbio.ErrMalformedSchema, typeName, fieldName, fmt.Sprintf(format, args...))
	}

	if value == nil {
		return nil, malformed("field has no value type")
	}

	if mods.DuplicateCount && kind != KindList {
		return nil, malformed("duplicate entry count on a %v field", kind)
	}

	switch kind {
	case KindNumber:
		if mods.Inline || mods.AtOffset {
			return nil, malformed("number fields are always stored in place")
		}

		p, err := NewPrimitive(value)
		if err != nil {
			return nil, malformed("unsupported type: %v", err)
		}
		return p, nil

	case KindString:
		if value != stringType {
			return nil, malformed("%v is not a string", value)
		}

		switch {
		case mods.Inline == mods.AtOffset:
			return nil, malformed("string must be either inline or at an offset")
		case mods.Inline && mods.Length <= 0:
			return nil, malformed("inline string length %v must be positive", mods.Length)
		case mods.Inline:
			return NewInlineString(mods.Length), nil
		default:
			return &Offset{Child: NewAtOffsetString()}, nil
		}

	case KindRecord:
		if record == nil {
			return nil, malformed("record field has no record type")
		}
		if mods.Inline {
			return nil, malformed("records cannot be inline strings")
		}

		c, err := b.composite(record)
		if err != nil {
			return nil, err
		}

		if c.Type() != value {
			return nil, malformed("field type %v does not match record type %v", value, c.Type())
		}

		if mods.AtOffset {
			return &Offset{Child: c}, nil
		}
		return c, nil

	case KindList:
		if elem == nil {
			return nil, malformed("list field has no element description")
		}
		if elem.Kind == KindList {
			return nil, malformed("lists of lists are not supported")
		}

		open := b.open
		b.open = make(map[*Type]bool)
		child, err := b.node(typeName, fieldName, elem.Kind, elem.Value, elem.Record, nil, elem.Modifiers)
		b.open = open
		if err != nil {
			return nil, err
		}

		l, err := NewList(value, child, mods.DuplicateCount)
		if err != nil {
			return nil, malformed("%v", err)
		}
		return l, nil

	default:
		return nil, malformed("unknown field kind %v", kind)
	}
}
