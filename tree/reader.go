package tree

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
)

// Read reads a value described by root from the current position of r.
// Content behind offsets is read by moving to it and back, so on return the position has moved
// by exactly the size of root's in-place region.
func Read(r *slbio.Reader, root Node) (any, error) {
	if r == nil {
		return nil, slbio.NullArgument("reader")
	}
	if root == nil {
		return nil, slbio.NullArgument("root")
	}

	return readNode(r, root)
}

func readNode(r *slbio.Reader, n Node) (any, error) {
	switch n := n.(type) {
	case *Primitive:
		return readPrimitive(r, n)
	case *String:
		return readString(r, n)
	case *List:
		return readList(r, n)
	case *Offset:
		return readOffset(r, n)
	case *Padding:
		return readPadding(r, n)
	case *Composite:
		return readComposite(r, n)
	default:
		return nil, slbio.NewError(slbio.ErrUnreachableNodeKind, fmt.Sprintf("%T", n), "cannot read node")
	}
}

func readComposite(r *slbio.Reader, n *Composite) (any, error) {
	v := n.New()
	for _, edge := range n.Edges {
		child, err := readNode(r, edge.Child)
		if err != nil {
			return nil, err
		}
		edge.Set(v, child)
	}
	return v, nil
}

func readPrimitive(r *slbio.Reader, n *Primitive) (any, error) {
	v := reflect.New(n.ty).Elem()

	switch n.ty.Kind() {
	case reflect.Int8:
		i, err := r.ReadInt8()
		if err != nil {
			return nil, err
		}
		v.SetInt(int64(i))
	case reflect.Int16:
		i, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}
		v.SetInt(int64(i))
	case reflect.Int32:
		i, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		v.SetInt(int64(i))
	case reflect.Int64:
		i, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		v.SetInt(i)
	case reflect.Uint8:
		u, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		v.SetUint(uint64(u))
	case reflect.Uint16:
		u, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		v.SetUint(uint64(u))
	case reflect.Uint32:
		u, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		v.SetUint(uint64(u))
	case reflect.Uint64:
		u, err := r.ReadUint64()
		if err != nil {
			return nil, err
		}
		v.SetUint(u)
	case reflect.Float32:
		f, err := r.ReadFloat32()
		if err != nil {
			return nil, err
		}
		v.SetFloat(float64(f))
	case reflect.Float64:
		f, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		v.SetFloat(f)
	default:
		return nil, slbio.NewError(slbio.ErrUnreachableNodeKind, Name(n.ty), "primitive node of non-numeric type")
	}

	return v.Interface(), nil
}

func readString(r *slbio.Reader, n *String) (any, error) {
	if !n.atOffset {
		b, err := r.ReadBytes(n.length)
		if err != nil {
			return nil, err
		}
		if i := bytes.IndexByte(b, 0); i >= 0 {
			b = b[:i]
		}
		return string(b), nil
	}

	l, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	b, err := r.ReadBytes(int(l))
	if err != nil {
		return nil, err
	}

	// terminator
	if err := r.Skip(1); err != nil {
		return nil, err
	}

	return string(b), nil
}

func readList(r *slbio.Reader, n *List) (any, error) {
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	if n.DuplicateCount {
		if _, err := r.ReadUint32(); err != nil {
			return nil, err
		}
	}

	offset, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return reflect.Zero(n.ty).Interface(), nil
	}

	size, err := r.Size()
	if err != nil {
		return nil, err
	}
	if int64(offset) >= size || int64(count) > size {
		return nil, slbio.NewError(
			slbio.ErrMalformedData,
			Name(n.ty),
			fmt.Sprintf("list of %v elements at offset %v does not fit in %v bytes", count, offset, size),
		)
	}

	slice := reflect.MakeSlice(n.ty, int(count), int(count))
	err = r.DoAtPosition(int64(offset), func() error {
		for i := 0; i < int(count); i++ {
			elem, err := readNode(r, n.Child)
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

func readOffset(r *slbio.Reader, n *Offset) (any, error) {
	offset, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	return slbio.ValueAtPosition(r, int64(offset), func() (any, error) {
		return readNode(r, n.Child)
	})
}

func readPadding(r *slbio.Reader, n *Padding) (any, error) {
	v, err := readNode(r, n.Child)
	if err != nil {
		return nil, err
	}
	return v, r.Skip(n.Size)
}
