package serializer

import (
	"cmp"
	"reflect"
	"slices"
	"sync"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

// NewFactory returns a Factory resolving record types through lookup.
// lookup may be nil, in which case only numbers, strings, lists and Serializable types are supported.
func NewFactory(lookup Lookup) *Factory {
	return &Factory{
		lookup: lookup,
		cache:  make(map[reflect.Type]Serializer),
	}
}

// Factory creates and caches Serializers.
// It is safe for concurrent use.
type Factory struct {
	lookup Lookup

	mutex sync.Mutex
	cache map[reflect.Type]Serializer
}

// Get returns the Serializer for t.
//
// Types resolve, in order, to
// fixed-width numbers, named numeric types such as enums,
// strings (stored at an offset), slices of any supported type,
// pointers implementing Serializable,
// and pointers to records lookup has a schema for.
// Anything else is a malformed schema.
func (f *Factory) Get(t reflect.Type) (Serializer, error) {
	if t == nil {
		return nil, slbio.NullArgument("type")
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.get(t)
}

func (f *Factory) get(t reflect.Type) (Serializer, error) {
	if s, ok := f.cache[t]; ok {
		return s, nil
	}

	s, err := f.create(t)
	if err != nil {
		return nil, err
	}

	f.cache[t] = s
	return s, nil
}

func (f *Factory) create(t reflect.Type) (Serializer, error) {
	switch {
	case isNumeric(t) && t.PkgPath() == "":
		return newPrimitive(t)

	case isNumeric(t):
		base, err := f.get(basicType(t.Kind()))
		if err != nil {
			return nil, err
		}
		return &castSerializer{ty: t, base: base}, nil

	case t == stringType:
		return stringSerializer{}, nil

	case t.Kind() == reflect.Slice:
		elem, err := f.get(t.Elem())
		if err != nil {
			return nil, err
		}
		return &listSerializer{ty: t, elem: elem}, nil

	case t.Kind() == reflect.Ptr && t.Implements(serializableType):
		if t.Elem().Kind() != reflect.Struct {
			return nil, slbio.NewError(slbio.ErrMalformedSchema, tree.Name(t), "serializable type must be a pointer to a struct")
		}
		return &customSerializer{ty: t}, nil

	case t.Kind() == reflect.Ptr && f.lookup != nil:
		desc, ok := f.lookup.Describe(t)
		if ok {
			return f.composite(t, desc)
		}
	}

	return nil, slbio.NewError(slbio.ErrMalformedSchema, tree.Name(t), "type is not a supported serializable type")
}

// composite creates the serializer for a record.
// It is cached before its fields are resolved, so records can contain lists of themselves.
func (f *Factory) composite(t reflect.Type, desc *tree.Type) (Serializer, error) {
	if desc.Go != t {
		return nil, slbio.NewError(slbio.ErrMalformedSchema, desc.String(), "schema describes "+tree.Name(desc.Go)+", not "+tree.Name(t))
	}

	// Build validates the schema the same way the node graph does.
	if _, err := tree.Build(desc); err != nil {
		return nil, err
	}

	s := &compositeSerializer{
		ty:   t,
		name: desc.String(),
		new:  desc.New,
	}
	f.cache[t] = s

	fields, err := f.fields(desc)
	if err != nil {
		delete(f.cache, t)
		return nil, err
	}

	s.fields = fields
	return s, nil
}

func (f *Factory) fields(desc *tree.Type) ([]field, error) {
	fields := make([]field, len(desc.Fields))
	for i, fd := range sortFields(desc.Fields) {
		s, err := f.field(fd)
		if err != nil {
			return nil, err
		}

		fields[i] = field{
			name: fd.Name,
			get:  fd.Get,
			set:  fd.Set,
			s:    s,
		}
	}
	return fields, nil
}

// field resolves the serializer of a record field, honouring its modifiers.
func (f *Factory) field(fd tree.Field) (Serializer, error) {
	var (
		s   Serializer
		err error
	)

	switch fd.Kind {
	case tree.KindList:
		var elem Serializer
		elem, err = f.element(fd.Elem.Kind, fd.Elem.Value, fd.Elem.Record, fd.Elem.Modifiers)
		if err == nil {
			s = &listSerializer{ty: fd.Value, elem: elem, duplicateCount: fd.DuplicateCount}
		}
	default:
		s, err = f.element(fd.Kind, fd.Value, fd.Record, fd.Modifiers)
	}
	if err != nil {
		return nil, err
	}

	if fd.RightPadding > 0 {
		s = &paddingSerializer{inner: s, size: fd.RightPadding}
	}
	return s, nil
}

func (f *Factory) element(kind tree.Kind, t reflect.Type, record *tree.Type, mods tree.Modifiers) (Serializer, error) {
	switch kind {
	case tree.KindString:
		if mods.Inline {
			return inlineStringSerializer{node: tree.NewInlineString(mods.Length)}, nil
		}
		return stringSerializer{}, nil

	case tree.KindRecord:
		s, err := f.record(t, record)
		if err != nil {
			return nil, err
		}
		if mods.AtOffset {
			return &offsetSerializer{inner: s}, nil
		}
		return s, nil

	default:
		return f.get(t)
	}
}

// record resolves a nested record, using the schema the field gives when the lookup has none.
func (f *Factory) record(t reflect.Type, desc *tree.Type) (Serializer, error) {
	if s, ok := f.cache[t]; ok {
		return s, nil
	}
	if desc == nil || t.Implements(serializableType) {
		return f.get(t)
	}
	return f.composite(t, desc)
}

// sortFields returns fields in the order they are stored.
func sortFields(fields []tree.Field) []tree.Field {
	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b tree.Field) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return sorted
}

var stringType = reflect.TypeOf("")

func isNumeric(t reflect.Type) bool {
	return basicType(t.Kind()) != nil
}

// basicType returns the unnamed fixed-width numeric type of kind, or nil if there is none.
func basicType(kind reflect.Kind) reflect.Type {
	switch kind {
	case reflect.Int8:
		return reflect.TypeOf(int8(0))
	case reflect.Int16:
		return reflect.TypeOf(int16(0))
	case reflect.Int32:
		return reflect.TypeOf(int32(0))
	case reflect.Int64:
		return reflect.TypeOf(int64(0))
	case reflect.Uint8:
		return reflect.TypeOf(uint8(0))
	case reflect.Uint16:
		return reflect.TypeOf(uint16(0))
	case reflect.Uint32:
		return reflect.TypeOf(uint32(0))
	case reflect.Uint64:
		return reflect.TypeOf(uint64(0))
	case reflect.Float32:
		return reflect.TypeOf(float32(0))
	case reflect.Float64:
		return reflect.TypeOf(float64(0))
	default:
		return nil
	}
}
