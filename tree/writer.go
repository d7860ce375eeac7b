package tree

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
)

// Write writes v as described by root to w, followed by all content root's offsets point at.
// It returns the positions of the offsets it wrote, in the order their content was placed, for WriteFooter.
func Write(w *slbio.Writer, v any, root Node) ([]uint32, error) {
	if w == nil {
		return nil, slbio.NullArgument("writer")
	}
	if v == nil {
		return nil, slbio.NullArgument("value")
	}
	if root == nil {
		return nil, slbio.NullArgument("root")
	}

	tw := NewWriter(w)
	if err := tw.WriteNode(root, v); err != nil {
		return nil, err
	}

	if err := tw.Flush(); err != nil {
		return nil, err
	}

	return tw.Slots(), nil
}

// NewWriter returns a Writer writing to w.
func NewWriter(w *slbio.Writer) *Writer {
	return &Writer{Writer: w}
}

// Writer writes values to a stream, deferring out of line content until Flush.
// It is used for a single top level value; create a new Writer for each.
type Writer struct {
	*slbio.Writer

	pending []pending
	slots   []uint32
	owner   owner
}

type pending struct {
	slot  int64
	owner owner
	write func() error
}

// owner is the record field being written.
type owner struct {
	typ, field string
}

// annotate names the owner in err, if err is an slbio.Error that names nothing yet.
func (o owner) annotate(err error) error {
	var e *slbio.Error
	if o.typ != "" && errors.As(err, &e) && e.Type == "" {
		e.Type, e.Field = o.typ, o.field
	}
	return err
}

// WriteField calls write as the writer of field of the record type typ.
// Errors from write, and from the content it defers, name typ and field unless they already name a type.
func (w *Writer) WriteField(typ, field string, write func() error) error {
	prev := w.owner
	w.owner = owner{typ: typ, field: field}
	defer func() { w.owner = prev }()

	return w.owner.annotate(write())
}

// Defer writes a zero offset at the current position, and queues write to be called by Flush.
// When write is called the offset is patched to point at where write starts writing.
func (w *Writer) Defer(write func() error) error {
	slot, err := w.Position()
	if err != nil {
		return err
	}

	if slot > slbio.MaxOffset {
		return slbio.NewFieldError(slbio.ErrOffsetOverflow, w.owner.typ, w.owner.field, fmt.Sprintf("offset slot at position %#x", slot))
	}

	if err := w.WriteUint32(0); err != nil {
		return err
	}

	w.pending = append(w.pending, pending{slot: slot, owner: w.owner, write: write})
	return nil
}

// Flush writes all deferred content, including content deferred while flushing.
// Content is written in the order it was deferred.
func (w *Writer) Flush() error {
	prev := w.owner
	defer func() { w.owner = prev }()

	for i := 0; i < len(w.pending); i++ {
		p := w.pending[i]
		w.owner = p.owner

		target, err := w.resolve(p.slot)
		if err != nil {
			return p.owner.annotate(err)
		}

		w.slots = append(w.slots, target)
		if err := p.write(); err != nil {
			return p.owner.annotate(err)
		}
	}

	w.pending = w.pending[:0]
	return nil
}

// resolve points the offset at slot to the current position, returning the slot.
func (w *Writer) resolve(slot int64) (uint32, error) {
	target, err := w.Position()
	if err != nil {
		return 0, err
	}

	if target > slbio.MaxOffset {
		return 0, slbio.NewError(slbio.ErrOffsetOverflow, "", fmt.Sprintf("content at position %#x", target))
	}

	err = w.DoAtPosition(slot, func() error {
		return w.WriteUint32(uint32(target))
	})
	return uint32(slot), err
}

// Slots returns the positions of every offset written so far.
func (w *Writer) Slots() []uint32 {
	return w.slots
}

// WriteNode writes v as described by n. Content behind offsets is deferred until Flush.
func (w *Writer) WriteNode(n Node, v any) error {
	switch n := n.(type) {
	case *Primitive:
		return w.writePrimitive(n, v)
	case *String:
		return w.writeString(n, v)
	case *List:
		return w.writeList(n, v)
	case *Offset:
		return w.writeOffset(n, v)
	case *Padding:
		if err := w.WriteNode(n.Child, v); err != nil {
			return err
		}
		return w.WriteZeros(n.Size)
	case *Composite:
		return w.writeComposite(n, v)
	default:
		return slbio.NewError(slbio.ErrUnreachableNodeKind, fmt.Sprintf("%T", n), "cannot write node")
	}
}

func checkType(want reflect.Type, v any) error {
	if v == nil {
		return slbio.NewError(slbio.ErrTypeMismatch, Name(want), "got nil")
	}
	if got := reflect.TypeOf(v); got != want {
		return slbio.NewError(slbio.ErrTypeMismatch, Name(want), fmt.Sprintf("got %v, want %v", Name(got), Name(want)))
	}
	return nil
}

func (w *Writer) writeComposite(n *Composite, v any) error {
	if err := checkType(n.ty, v); err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return slbio.NullArgument(n.name)
	}

	for _, edge := range n.Edges {
		err := w.WriteField(n.name, edge.Name, func() error {
			return w.WriteNode(edge.Child, edge.Extract(v))
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writePrimitive(n *Primitive, v any) error {
	if err := checkType(n.ty, v); err != nil {
		return err
	}

	rv := reflect.ValueOf(v)
	switch n.ty.Kind() {
	case reflect.Int8:
		return w.WriteInt8(int8(rv.Int()))
	case reflect.Int16:
		return w.WriteInt16(int16(rv.Int()))
	case reflect.Int32:
		return w.WriteInt32(int32(rv.Int()))
	case reflect.Int64:
		return w.WriteInt64(rv.Int())
	case reflect.Uint8:
		return w.WriteUint8(uint8(rv.Uint()))
	case reflect.Uint16:
		return w.WriteUint16(uint16(rv.Uint()))
	case reflect.Uint32:
		return w.WriteUint32(uint32(rv.Uint()))
	case reflect.Uint64:
		return w.WriteUint64(rv.Uint())
	case reflect.Float32:
		return w.WriteFloat32(float32(rv.Float()))
	case reflect.Float64:
		return w.WriteFloat64(rv.Float())
	default:
		return slbio.NewError(slbio.ErrUnreachableNodeKind, Name(n.ty), "primitive node of non-numeric type")
	}
}

func (w *Writer) writeString(n *String, v any) error {
	if err := checkType(stringType, v); err != nil {
		return err
	}
	s := v.(string)
	if err := checkString(n, s); err != nil {
		return err
	}

	if !n.atOffset {
		if err := w.WriteBytes([]byte(s)); err != nil {
			return err
		}
		return w.WriteZeros(n.length - len(s))
	}

	if err := w.WriteUint8(uint8(len(s))); err != nil {
		return err
	}
	if err := w.WriteBytes([]byte(s)); err != nil {
		return err
	}
	return w.WriteUint8(0)
}

// checkString checks s fits n.
// Inline strings end at their first zero byte when read, so they cannot hold one.
func checkString(n *String, s string) error {
	switch {
	case n.atOffset && len(s) > MaxStringLength:
		return slbio.NewError(
			slbio.ErrLengthViolation,
			"",
			fmt.Sprintf("string of %v bytes is longer than %v", len(s), MaxStringLength),
		)
	case n.atOffset:
		return nil
	case len(s) > n.length:
		return slbio.NewError(
			slbio.ErrLengthViolation,
			"",
			fmt.Sprintf("string of %v bytes does not fit inline length %v", len(s), n.length),
		)
	case strings.IndexByte(s, 0) >= 0:
		return slbio.NewError(
			slbio.ErrLengthViolation,
			"",
			fmt.Sprintf("inline string %q holds a zero byte", s),
		)
	default:
		return nil
	}
}

func (w *Writer) writeList(n *List, v any) error {
	if err := checkType(n.ty, v); err != nil {
		return err
	}

	slice := reflect.ValueOf(v)
	count := slice.Len()
	if int64(count) > slbio.MaxOffset {
		return slbio.NewError(slbio.ErrLengthViolation, Name(n.ty), fmt.Sprintf("%v elements do not fit a 4 byte count", count))
	}

	if err := w.WriteUint32(uint32(count)); err != nil {
		return err
	}

	if n.DuplicateCount {
		if err := w.WriteUint32(uint32(count)); err != nil {
			return err
		}
	}

	if count == 0 {
		return w.WriteUint32(0)
	}

	// Check elements now, so a bad element fails before anything is deferred.
	for i := 0; i < count; i++ {
		if err := Check(n.Child, slice.Index(i).Interface()); err != nil {
			return err
		}
	}

	return w.Defer(func() error {
		for i := 0; i < count; i++ {
			if err := w.WriteNode(n.Child, slice.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Writer) writeOffset(n *Offset, v any) error {
	if err := Check(n.Child, v); err != nil {
		return err
	}

	return w.Defer(func() error {
		return w.WriteNode(n.Child, v)
	})
}

// Check reports whether writing v as described by n would fail in a way that can be seen without writing it.
// Writers call it before deferring v, so the failure is reported while the offset that would point at v is still being written.
// It does not look inside lists or records.
func Check(n Node, v any) error {
	switch n := n.(type) {
	case *String:
		if err := checkType(stringType, v); err != nil {
			return err
		}
		return checkString(n, v.(string))
	case *Offset:
		return Check(n.Child, v)
	case *Padding:
		return Check(n.Child, v)
	case *Composite:
		if err := checkType(n.ty, v); err != nil {
			return err
		}
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return slbio.NullArgument(n.name)
		}
		return nil
	case nil:
		return slbio.NullArgument("node")
	default:
		return checkType(n.Type(), v)
	}
}
