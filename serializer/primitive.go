package serializer

import (
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

func newPrimitive(t reflect.Type) (*primitiveSerializer, error) {
	node, err := tree.NewPrimitive(t)
	if err != nil {
		return nil, slbio.NewError(slbio.ErrMalformedSchema, tree.Name(t), err.Error())
	}
	return &primitiveSerializer{node: node}, nil
}

// primitiveSerializer is a Serializer for the unnamed fixed-width numeric types.
type primitiveSerializer struct {
	node *tree.Primitive
}

// Type implements Serializer.
func (s *primitiveSerializer) Type() reflect.Type { return s.node.Type() }

// Read implements Serializer.
func (s *primitiveSerializer) Read(r *slbio.Reader) (any, error) {
	return tree.Read(r, s.node)
}

// Write implements Serializer.
func (s *primitiveSerializer) Write(w *tree.Writer, v any) error {
	return w.WriteNode(s.node, v)
}

// castSerializer is a Serializer for named numeric types, such as enums.
// It converts to and from the unnamed type of the same kind.
type castSerializer struct {
	ty   reflect.Type
	base Serializer
}

// Type implements Serializer.
func (s *castSerializer) Type() reflect.Type { return s.ty }

// Read implements Serializer.
func (s *castSerializer) Read(r *slbio.Reader) (any, error) {
	v, err := s.base.Read(r)
	if err != nil {
		return nil, err
	}
	return reflect.ValueOf(v).Convert(s.ty).Interface(), nil
}

// Write implements Serializer.
func (s *castSerializer) Write(w *tree.Writer, v any) error {
	if err := checkType(s.ty, v); err != nil {
		return err
	}
	return s.base.Write(w, reflect.ValueOf(v).Convert(s.base.Type()).Interface())
}
