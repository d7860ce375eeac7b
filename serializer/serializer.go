// Package serializer provides a second way of reading and writing SLB data; a Serializer per Go type,
// resolved by a Factory from the shape of the type.
//
// Serializers write through a *tree.Writer, so out of line content shares the same deferred queue as the node graph,
// and both produce identical bytes for the same schema.
package serializer

import (
	"fmt"
	"io"
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

// Serializer reads and writes values of a specific type.
//
// Serializers are immutable once the Factory returns them, and can be shared between goroutines.
// The streams given to them cannot.
type Serializer interface {
	// Type returns the type of values the Serializer reads and writes.
	Type() reflect.Type

	// Read reads a value from the current position of r.
	// On return the position has moved past the value's in-place bytes only.
	Read(r *slbio.Reader) (any, error)

	// Write writes v at the current position of w.
	// Content behind offsets is deferred to w's queue, and written when it is flushed.
	Write(w *tree.Writer, v any) error
}

// Serializable is implemented by record types that read and write themselves.
// It is implemented on the pointer; the Factory constructs values with reflect.New.
type Serializable interface {
	ReadSLB(r *slbio.Reader) error
	WriteSLB(w *tree.Writer) error
}

var serializableType = reflect.TypeOf((*Serializable)(nil)).Elem()

// Lookup provides the schema of record types.
type Lookup interface {
	// Describe returns the schema for t, a pointer to a record.
	Describe(t reflect.Type) (*tree.Type, bool)
}

// Encode writes v with s to out, followed by everything it defers and the relocation footer.
func Encode(out io.WriteSeeker, s Serializer, v any) error {
	if out == nil {
		return slbio.NullArgument("out")
	}
	if s == nil {
		return slbio.NullArgument("serializer")
	}
	if v == nil {
		return slbio.NullArgument("value")
	}

	w := tree.NewWriter(slbio.NewWriter(out))
	if err := s.Write(w, v); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return err
	}

	return tree.WriteFooter(w.Writer, w.Slots())
}

// Decode reads a value with s from the current position of in.
func Decode(in io.ReadSeeker, s Serializer) (any, error) {
	if in == nil {
		return nil, slbio.NullArgument("in")
	}
	if s == nil {
		return nil, slbio.NullArgument("serializer")
	}

	return s.Read(slbio.NewReader(in))
}

// For returns a Typed Serializer for T.
func For[T any](f *Factory) (Typed[T], error) {
	s, err := f.Get(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return Typed[T]{}, err
	}
	return Typed[T]{s: s}, nil
}

// Typed wraps a Serializer of T, saving the type assertions.
type Typed[T any] struct {
	s Serializer
}

// Serializer returns the wrapped Serializer.
func (t Typed[T]) Serializer() Serializer { return t.s }

// Read reads a T.
func (t Typed[T]) Read(r *slbio.Reader) (T, error) {
	v, err := t.s.Read(r)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Write writes v.
func (t Typed[T]) Write(w *tree.Writer, v T) error {
	return t.s.Write(w, v)
}

// checker is implemented by serializers that can reject a value before anything of it is written.
type checker interface {
	check(v any) error
}

// check rejects v if s would fail writing it out of line.
func check(s Serializer, v any) error {
	if c, ok := s.(checker); ok {
		return c.check(v)
	}
	return checkType(s.Type(), v)
}

func checkType(want reflect.Type, v any) error {
	if v == nil {
		return slbio.NewError(slbio.ErrTypeMismatch, tree.Name(want), "got nil")
	}
	if got := reflect.TypeOf(v); got != want {
		return slbio.NewError(slbio.ErrTypeMismatch, tree.Name(want), fmt.Sprintf("got %v, want %v", tree.Name(got), tree.Name(want)))
	}
	return nil
}
