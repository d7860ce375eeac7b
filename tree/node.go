// Package tree implements the SLB node graph; the schema of a record type resolved into a tree of
// nodes that Read and Write walk against a stream.
//
// A node graph is built once per record Type with Build, and is immutable afterwards.
// It can be shared between any number of sequential reads and writes, and between goroutines.
//
// Variable length content (lists and at-offset strings) is not stored where its field is.
// The field holds a 4 byte offset, and the content is written after everything before it in the tree,
// in the order it was encountered. Once written, the offset is patched to point at it and the position of the offset
// is recorded, so WriteFooter can append the relocation table the game engine expects.
//
// Traversal is recursive. Its depth is bounded by the nesting depth of the schema, not by the data.
package tree

import (
	"fmt"
	"reflect"
)

// Node is a node in the graph. The set of node kinds is closed;
// it is one of *Primitive, *String, *List, *Offset, *Padding or *Composite.
type Node interface {
	// Type returns the type of values the node reads and writes.
	Type() reflect.Type

	node()
}

var stringType = reflect.TypeOf("")

// NewPrimitive returns a Primitive node for ty.
// ty must have a fixed-width integer or floating point kind; named types (enums, identifiers) are allowed.
func NewPrimitive(ty reflect.Type) (*Primitive, error) {
	size := primitiveSize(ty.Kind())
	if size == 0 {
		return nil, fmt.Errorf("%v is not a fixed-width numeric type", ty)
	}

	return &Primitive{ty: ty, size: size}, nil
}

// Primitive is a fixed-width number, stored little-endian.
type Primitive struct {
	ty   reflect.Type
	size int
}

// Type implements Node.
func (n *Primitive) Type() reflect.Type { return n.ty }

// Size returns the encoded size in bytes.
func (n *Primitive) Size() int { return n.size }

func (*Primitive) node() {}

func primitiveSize(kind reflect.Kind) int {
	switch kind {
	case reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		return 8
	default:
		return 0
	}
}

// MaxStringLength is the longest string an at-offset string can hold.
const MaxStringLength = 255

// NewInlineString returns a String stored in place, in exactly length bytes.
// Shorter strings are padded with zeros, so an inline string cannot hold a zero byte.
func NewInlineString(length int) *String {
	return &String{length: length}
}

// NewAtOffsetString returns a String stored as a length byte, the string's bytes and a zero byte.
// It is only meaningful under an Offset node.
func NewAtOffsetString() *String {
	return &String{atOffset: true}
}

// String is a string node.
type String struct {
	atOffset bool
	length   int
}

// Type implements Node.
func (n *String) Type() reflect.Type { return stringType }

// AtOffset reports whether the string is length prefixed rather than inline.
func (n *String) AtOffset() bool { return n.atOffset }

// Length returns the fixed length of an inline string.
func (n *String) Length() int { return n.length }

func (*String) node() {}

// NewList returns a List of elements read and written with child.
// sliceType is the slice type values of the list have, and must have child's type as its element.
func NewList(sliceType reflect.Type, child Node, duplicateCount bool) (*List, error) {
	if sliceType.Kind() != reflect.Slice || sliceType.Elem() != child.Type() {
		return nil, fmt.Errorf("%v is not a slice of %v", sliceType, child.Type())
	}

	return &List{
		ty:             sliceType,
		Child:          child,
		DuplicateCount: duplicateCount,
	}, nil
}

// List is an element count and an offset to that many contiguous elements.
type List struct {
	ty reflect.Type

	// Child reads and writes each element.
	Child Node

	// DuplicateCount is set for lists whose count is stored twice.
	DuplicateCount bool
}

// Type implements Node.
func (n *List) Type() reflect.Type { return n.ty }

func (*List) node() {}

// Offset is a 4 byte offset to where Child is stored.
type Offset struct {
	Child Node
}

// Type implements Node.
func (n *Offset) Type() reflect.Type { return n.Child.Type() }

func (*Offset) node() {}

// Padding is Child followed by Size zero bytes.
type Padding struct {
	Child Node
	Size  int
}

// Type implements Node.
func (n *Padding) Type() reflect.Type { return n.Child.Type() }

func (*Padding) node() {}

// Composite is a record; its Edges are stored one after the other in order.
type Composite struct {
	ty    reflect.Type
	name  string
	new   func() any
	Edges []Edge
}

// Type implements Node.
// It is the pointer type the record's constructor returns.
func (n *Composite) Type() reflect.Type { return n.ty }

// Name returns the name of the record type.
func (n *Composite) Name() string { return n.name }

// New returns a new zero value record.
func (n *Composite) New() any { return n.new() }

func (*Composite) node() {}

// Edge binds a field of a Composite to the node that reads and writes it.
type Edge struct {
	Name string

	// Extract returns the field's value from the record.
	Extract func(parent any) any

	// Set stores a value in the record's field.
	Set func(parent, value any)

	Child Node
}
