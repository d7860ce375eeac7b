package slbio

import "strings"

// Every failure raised by the codec itself is an Error carrying one of a closed set of Kinds.
// None of them are transient; a caller receiving one should abort the record it was reading or writing.
// Kinds implement error, so the kind of a failure can be checked with
//
//	if errors.Is(err, slbio.ErrOffsetOverflow) {
//		// the file grew past what a 4 byte offset can address
//	}
//
// Errors from the underlying io.Reader/io.Writer are never wrapped in an Error; they are returned as they are.

// Kind categorises an Error.
type Kind uint8

const (
	// ErrNullArgument is returned when a required argument is nil.
	ErrNullArgument Kind = iota + 1

	// ErrMalformedSchema is returned when a schema is structurally invalid, or describes a type that cannot be serialized.
	ErrMalformedSchema

	// ErrTypeMismatch is returned when a value has a different type than its node or serializer expects.
	ErrTypeMismatch

	// ErrOffsetOverflow is returned when a position does not fit in a 4 byte offset.
	ErrOffsetOverflow

	// ErrLengthViolation is returned when a string is longer than its encoding allows.
	ErrLengthViolation

	// ErrUnreachableNodeKind is returned when traversal finds a node outside the closed set of node kinds.
	// It is never caused by data; it means the node graph was built wrong.
	ErrUnreachableNodeKind

	// ErrMalformedData is returned when read data is impossible to decode.
	ErrMalformedData
)

var kindNames = [...]string{
	ErrNullArgument:        "null argument",
	ErrMalformedSchema:     "malformed schema",
	ErrTypeMismatch:        "type mismatch",
	ErrOffsetOverflow:      "offset exceeds 4 bytes",
	ErrLengthViolation:     "length violation",
	ErrUnreachableNodeKind: "unreachable node kind",
	ErrMalformedData:       "malformed data",
}

// Error implements error.
func (k Kind) Error() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown error"
}

// String returns the name of the kind.
func (k Kind) String() string { return k.Error() }

// Error is returned when the codec cannot read or write a value.
// Type and Field name the schema element at fault, where there is one.
type Error struct {
	Kind    Kind
	Type    string
	Field   string
	Message string
}

// NewError returns an Error of the given kind.
// typ is the name of the offending type, and may be empty.
func NewError(kind Kind, typ, message string) error {
	return &Error{
		Kind:    kind,
		Type:    typ,
		Message: message,
	}
}

// NewFieldError returns an Error of the given kind naming both type and field.
func NewFieldError(kind Kind, typ, field, message string) error {
	return &Error{
		Kind:    kind,
		Type:    typ,
		Field:   field,
		Message: message,
	}
}

// NullArgument returns an ErrNullArgument Error naming the parameter.
func NullArgument(param string) error {
	return &Error{
		Kind:    ErrNullArgument,
		Message: param + " must not be nil",
	}
}

// Error implements error.
// Format is kind: type.field: message.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())

	if e.Type != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Type)
		if e.Field != "" {
			sb.WriteString(".")
			sb.WriteString(e.Field)
		}
	}

	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}

	return sb.String()
}

// Unwrap implements errors's Unwrap()
func (e *Error) Unwrap() error {
	return e.Kind
}
