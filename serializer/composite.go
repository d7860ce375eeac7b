package serializer

import (
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

// compositeSerializer is a Serializer for records with a schema.
// Fields are stored one after the other, in order.
type compositeSerializer struct {
	ty     reflect.Type
	name   string
	new    func() any
	fields []field
}

type field struct {
	name string
	get  func(parent any) any
	set  func(parent, value any)
	s    Serializer
}

// Type implements Serializer.
func (s *compositeSerializer) Type() reflect.Type { return s.ty }

// Read implements Serializer.
func (s *compositeSerializer) Read(r *slbio.Reader) (any, error) {
	v := s.new()
	for _, f := range s.fields {
		fv, err := f.s.Read(r)
		if err != nil {
			return nil, err
		}
		f.set(v, fv)
	}
	return v, nil
}

// Write implements Serializer.
func (s *compositeSerializer) Write(w *tree.Writer, v any) error {
	if err := checkType(s.ty, v); err != nil {
		return err
	}

	if reflect.ValueOf(v).IsNil() {
		return slbio.NullArgument(s.name)
	}

	for _, f := range s.fields {
		err := w.WriteField(s.name, f.name, func() error {
			return f.s.Write(w, f.get(v))
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *compositeSerializer) check(v any) error {
	if err := checkType(s.ty, v); err != nil {
		return err
	}
	if reflect.ValueOf(v).IsNil() {
		return slbio.NullArgument(s.name)
	}
	return nil
}

// offsetSerializer stores inner elsewhere, referenced by an offset.
type offsetSerializer struct {
	inner Serializer
}

// Type implements Serializer.
func (s *offsetSerializer) Type() reflect.Type { return s.inner.Type() }

// Read implements Serializer.
func (s *offsetSerializer) Read(r *slbio.Reader) (any, error) {
	offset, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	return slbio.ValueAtPosition(r, int64(offset), func() (any, error) {
		return s.inner.Read(r)
	})
}

// Write implements Serializer.
func (s *offsetSerializer) Write(w *tree.Writer, v any) error {
	if err := check(s.inner, v); err != nil {
		return err
	}

	return w.Defer(func() error {
		return s.inner.Write(w, v)
	})
}

func (s *offsetSerializer) check(v any) error { return check(s.inner, v) }

// paddingSerializer follows inner with a number of zero bytes.
type paddingSerializer struct {
	inner Serializer
	size  int
}

// Type implements Serializer.
func (s *paddingSerializer) Type() reflect.Type { return s.inner.Type() }

// Read implements Serializer.
func (s *paddingSerializer) Read(r *slbio.Reader) (any, error) {
	v, err := s.inner.Read(r)
	if err != nil {
		return nil, err
	}
	return v, r.Skip(s.size)
}

// Write implements Serializer.
func (s *paddingSerializer) Write(w *tree.Writer, v any) error {
	if err := s.inner.Write(w, v); err != nil {
		return err
	}
	return w.WriteZeros(s.size)
}

func (s *paddingSerializer) check(v any) error { return check(s.inner, v) }
