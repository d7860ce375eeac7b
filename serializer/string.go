package serializer

import (
	"fmt"
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

// stringSerializer is the Serializer for strings stored at an offset.
// In place it is only the offset; the string is a length byte, its bytes and a zero byte.
type stringSerializer struct{}

// Type implements Serializer.
func (stringSerializer) Type() reflect.Type { return stringType }

// Read implements Serializer.
func (stringSerializer) Read(r *slbio.Reader) (any, error) {
	offset, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	return slbio.ValueAtPosition(r, int64(offset), func() (any, error) {
		l, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}

		b, err := r.ReadBytes(int(l))
		if err != nil {
			return nil, err
		}

		return string(b), r.Skip(1)
	})
}

// Write implements Serializer.
func (s stringSerializer) Write(w *tree.Writer, v any) error {
	if err := s.check(v); err != nil {
		return err
	}
	str := v.(string)

	return w.Defer(func() error {
		if err := w.WriteUint8(uint8(len(str))); err != nil {
			return err
		}
		if err := w.WriteBytes([]byte(str)); err != nil {
			return err
		}
		return w.WriteUint8(0)
	})
}

func (stringSerializer) check(v any) error {
	if err := checkType(stringType, v); err != nil {
		return err
	}

	if l := len(v.(string)); l > tree.MaxStringLength {
		return slbio.NewError(
			slbio.ErrLengthViolation,
			"",
			fmt.Sprintf("string of %v bytes is longer than %v", l, tree.MaxStringLength),
		)
	}
	return nil
}

// inlineStringSerializer is the Serializer for strings stored in place, in a fixed number of bytes.
type inlineStringSerializer struct {
	node *tree.String
}

// Type implements Serializer.
func (inlineStringSerializer) Type() reflect.Type { return stringType }

// Read implements Serializer.
func (s inlineStringSerializer) Read(r *slbio.Reader) (any, error) {
	return tree.Read(r, s.node)
}

// Write implements Serializer.
func (s inlineStringSerializer) Write(w *tree.Writer, v any) error {
	return w.WriteNode(s.node, v)
}

func (s inlineStringSerializer) check(v any) error { return tree.Check(s.node, v) }
