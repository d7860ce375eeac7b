package serializer

import (
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

// customSerializer adapts a Serializable type.
type customSerializer struct {
	ty reflect.Type
}

// Type implements Serializer.
func (s *customSerializer) Type() reflect.Type { return s.ty }

// Read implements Serializer.
func (s *customSerializer) Read(r *slbio.Reader) (any, error) {
	v := reflect.New(s.ty.Elem()).Interface()
	if err := v.(Serializable).ReadSLB(r); err != nil {
		return nil, err
	}
	return v, nil
}

// Write implements Serializer.
func (s *customSerializer) Write(w *tree.Writer, v any) error {
	if err := s.check(v); err != nil {
		return err
	}
	return v.(Serializable).WriteSLB(w)
}

func (s *customSerializer) check(v any) error {
	if err := checkType(s.ty, v); err != nil {
		return err
	}
	if reflect.ValueOf(v).IsNil() {
		return slbio.NullArgument(tree.Name(s.ty))
	}
	return nil
}
