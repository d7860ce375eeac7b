package serializer

import (
	"fmt"
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
	"github.com/TheLegendOfMataNui/SAGESharp-sub001/tree"
)

// listSerializer is a Serializer for slices.
// In place it is the element count, optionally repeated, and an offset to the elements.
type listSerializer struct {
	ty             reflect.Type
	elem           Serializer
	duplicateCount bool
}

// Type implements Serializer.
func (s *listSerializer) Type() reflect.Type { return s.ty }

// Read implements Serializer.
func (s *listSerializer) Read(r *slbio.Reader) (any, error) {
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	if s.duplicateCount {
		if _, err := r.ReadUint32(); err != nil {
			return nil, err
		}
	}

	offset, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return reflect.Zero(s.ty).Interface(), nil
	}

	size, err := r.Size()
	if err != nil {
		return nil, err
	}
	if int64(offset) >= size || int64(count) > size {
		return nil, slbio.NewError(
			slbio.ErrMalformedData,
			tree.Name(s.ty),
			fmt.Sprintf("list of %v elements at offset %v does not fit in %v bytes", count, offset, size),
		)
	}

	slice := reflect.MakeSlice(s.ty, int(count), int(count))
	err = r.DoAtPosition(int64(offset), func() error {
		for i := 0; i < int(count); i++ {
			elem, err := s.elem.Read(r)
			if err != nil {
				return err
			}
			slice.Index(i).Set(reflect.ValueOf(elem))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return slice.Interface(), nil
}

// Write implements Serializer.
func (s *listSerializer) Write(w *tree.Writer, v any) error {
	if err := checkType(s.ty, v); err != nil {
		return err
	}

	slice := reflect.ValueOf(v)
	count := slice.Len()
	if int64(count) > slbio.MaxOffset {
		return slbio.NewError(slbio.ErrLengthViolation, tree.Name(s.ty), fmt.Sprintf("%v elements do not fit a 4 byte count", count))
	}

	if err := w.WriteUint32(uint32(count)); err != nil {
		return err
	}

	if s.duplicateCount {
		if err := w.WriteUint32(uint32(count)); err != nil {
			return err
		}
	}

	if count == 0 {
		return w.WriteUint32(0)
	}

	for i := 0; i < count; i++ {
		if err := check(s.elem, slice.Index(i).Interface()); err != nil {
			return err
		}
	}

	return w.Defer(func() error {
		for i := 0; i < count; i++ {
			if err := s.elem.Write(w, slice.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	})
}
