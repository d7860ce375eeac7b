package tree

import (
	"reflect"
	"strings"
)

// Kind is the encoding kind of a field.
type Kind uint8

const (
	// KindNumber is a fixed-width number, enum or identifier.
	KindNumber Kind = iota + 1

	// KindString is a string, either inline or at an offset.
	KindString

	// KindRecord is a nested record.
	KindRecord

	// KindList is a counted list of elements.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Numeric is the set of types a KindNumber field can have.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Type describes the binary layout of a record type.
// Types are plain values and are usually declared once, as package level variables, next to the struct they describe.
type Type struct {
	// Name is used in errors and logs.
	Name string

	// Go is the type of values of the record; a pointer to the struct.
	Go reflect.Type

	// New returns a new, zero value record of type Go.
	New func() any

	Fields []Field
}

// String returns the name of the type.
func (t *Type) String() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Go != nil {
		return t.Go.String()
	}
	return "<unnamed>"
}

// Field describes a single field of a record.
type Field struct {
	Name string

	// Order is the field's position in the record. Fields are stored in ascending Order.
	Order int

	Kind Kind

	// Value is the type of the field's values.
	Value reflect.Type

	// Record describes the nested record of a KindRecord field.
	Record *Type

	// Elem describes the elements of a KindList field.
	Elem *Element

	// Get returns the field's value from a record of the parent type.
	Get func(parent any) any

	// Set stores a value in the field of a record of the parent type.
	Set func(parent, value any)

	Modifiers
}

// Element describes the elements of a list.
type Element struct {
	Kind   Kind
	Value  reflect.Type
	Record *Type
	Modifiers
}

// Modifiers are the optional encoding details of a field or element.
type Modifiers struct {
	// Inline stores a string in place, in exactly Length bytes.
	Inline bool
	Length int

	// AtOffset stores a string or record elsewhere, referenced by an offset.
	AtOffset bool

	// RightPadding is a number of zero bytes following the field.
	RightPadding int

	// DuplicateCount stores the count of a list twice.
	DuplicateCount bool
}

// Modifier sets an encoding detail of a field.
type Modifier func(*Modifiers)

// Inline stores a string in place, in exactly length bytes.
func Inline(length int) Modifier {
	return func(m *Modifiers) {
		m.Inline = true
		m.Length = length
	}
}

// AtOffset stores a string or record out of line, behind an offset.
func AtOffset() Modifier {
	return func(m *Modifiers) { m.AtOffset = true }
}

// RightPadding follows the field with n zero bytes.
func RightPadding(n int) Modifier {
	return func(m *Modifiers) { m.RightPadding = n }
}

// DuplicateEntryCount stores a list's count twice.
func DuplicateEntryCount() Modifier {
	return func(m *Modifiers) { m.DuplicateCount = true }
}

func applyModifiers(mods []Modifier) Modifiers {
	var m Modifiers
	for _, mod := range mods {
		mod(&m)
	}
	return m
}

// NewType returns a Type for records of type *T.
func NewType[T any](name string, fields ...Field) *Type {
	return &Type{
		Name:   name,
		Go:     reflect.TypeOf((*T)(nil)),
		New:    func() any { return new(T) },
		Fields: fields,
	}
}

// Number returns a KindNumber field of a *P record.
func Number[P any, V Numeric](name string, order int, get func(*P) V, set func(*P, V), mods ...Modifier) Field {
	return newField[P, V](name, order, KindNumber, get, set, mods)
}

// Text returns a KindString field of a *P record.
// Exactly one of Inline and AtOffset must be given.
func Text[P any](name string, order int, get func(*P) string, set func(*P, string), mods ...Modifier) Field {
	return newField[P, string](name, order, KindString, get, set, mods)
}

// Record returns a KindRecord field of a *P record, holding a record of type ty.
func Record[P, C any](name string, order int, ty *Type, get func(*P) *C, set func(*P, *C), mods ...Modifier) Field {
	f := newField[P, *C](name, order, KindRecord, get, set, mods)
	f.Record = ty
	return f
}

// ListOf returns a KindList field of a *P record, holding elements described by elem.
func ListOf[P, E any](name string, order int, elem Element, get func(*P) []E, set func(*P, []E), mods ...Modifier) Field {
	f := newField[P, []E](name, order, KindList, get, set, mods)
	f.Elem = &elem
	return f
}

// NumberElem describes list elements of a numeric type.
func NumberElem[V Numeric]() Element {
	return Element{
		Kind:  KindNumber,
		Value: reflect.TypeOf((*V)(nil)).Elem(),
	}
}

// TextElem describes string list elements.
func TextElem(mods ...Modifier) Element {
	return Element{
		Kind:      KindString,
		Value:     stringType,
		Modifiers: applyModifiers(mods),
	}
}

// RecordElem describes list elements that are records of type ty.
func RecordElem(ty *Type) Element {
	return Element{
		Kind:   KindRecord,
		Value:  ty.Go,
		Record: ty,
	}
}

func newField[P, V any](name string, order int, kind Kind, get func(*P) V, set func(*P, V), mods []Modifier) Field {
	f := Field{
		Name:      name,
		Order:     order,
		Kind:      kind,
		Value:     reflect.TypeOf((*V)(nil)).Elem(),
		Modifiers: applyModifiers(mods),
	}

	if get != nil {
		f.Get = func(parent any) any { return get(parent.(*P)) }
	}

	if set != nil {
		f.Set = func(parent, value any) { set(parent.(*P), value.(V)) }
	}

	return f
}

// Name returns the package qualified name of t, as used in errors.
func Name(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		return "*" + Name(t.Elem())
	}
	pkg := t.PkgPath()
	if pkg != "" {
		return pkg[strings.LastIndexByte(pkg, '/')+1:] + "." + t.Name()
	}
	n := t.Name()
	if n == "" {
		return t.String()
	}
	return n
}
