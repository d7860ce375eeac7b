package slbio_test

import (
	"errors"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/TheLegendOfMataNui/SAGESharp-sub001/slbio"
)

func TestErrorKinds(t *testing.T) {
	err := slbio.NewFieldError(slbio.ErrLengthViolation, "Record", "Name", "longer than 16 bytes")

	td.CmpTrue(t, errors.Is(err, slbio.ErrLengthViolation))
	td.CmpFalse(t, errors.Is(err, slbio.ErrTypeMismatch))
	td.Cmp(t, err.Error(), "length violation: Record.Name: longer than 16 bytes")

	var e *slbio.Error
	td.CmpTrue(t, errors.As(err, &e))
	td.Cmp(t, e.Field, "Name")
}

func TestNullArgument(t *testing.T) {
	err := slbio.NullArgument("root")

	td.CmpTrue(t, errors.Is(err, slbio.ErrNullArgument))
	td.Cmp(t, err.Error(), "null argument: root must not be nil")
}

func TestUnknownKind(t *testing.T) {
	td.Cmp(t, slbio.Kind(200).Error(), "unknown error")
	td.Cmp(t, slbio.ErrOffsetOverflow.String(), "offset exceeds 4 bytes")
}
