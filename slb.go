// Package slb reads and writes SLB files; the offset addressed binary format the game stores its data records in.
//
// Record types are described with tree.Type schemas and registered with a Registry,
// which builds and caches their node graphs.
//
//	reg := slb.NewRegistry(nil)
//	if err := reg.Register(modelType, partType); err != nil {
//		return err
//	}
//
//	data, err := slb.Marshal(reg, &model)
//
// A written file is the record, its out of line content, and a footer listing the position of every offset in it.
//
// slb/slbio provides the stream primitives and error types.
//
// slb/tree provides the schema builder, the node graph and its reader and writer.
//
// slb/serializer provides serializers resolved by type, for code that reads and writes by hand.
package slb

import (
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
)

// Marshal returns the SLB file of the record v.
func Marshal[T any](r *Registry, v *T) ([]byte, error) {
	if r == nil {
		return nil, slbio.NullArgument("registry")
	}
	if v == nil {
		return nil, slbio.NullArgument("value")
	}

	var b slbio.Buffer
	if err := r.Write(&b, v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Unmarshal reads a record of type T from the start of data.
func Unmarshal[T any](r *Registry, data []byte) (*T, error) {
	if r == nil {
		return nil, slbio.NullArgument("registry")
	}

	v, err := r.Read(slbio.NewBuffer(data), reflect.TypeOf((*T)(nil)))
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}
