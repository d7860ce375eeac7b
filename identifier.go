package slb

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier is a 4 character code, such as a record's kind.
// It is stored as a little-endian uint32, so the characters appear back to front in a file.
type Identifier uint32

// NewIdentifier returns the Identifier of a 4 character code.
// The first character is the most significant byte.
func NewIdentifier(code string) (Identifier, error) {
	if len(code) != 4 {
		return 0, fmt.Errorf("identifier %q is not 4 characters", code)
	}

	return Identifier(uint32(code[0])<<24 | uint32(code[1])<<16 | uint32(code[2])<<8 | uint32(code[3])), nil
}

// Bytes returns the characters of the identifier, most significant first.
func (id Identifier) Bytes() [4]byte {
	return [4]byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

// String returns the 4 character code, or the value in hex if any character is not printable.
func (id Identifier) String() string {
	b := id.Bytes()
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return fmt.Sprintf("0x%08X", uint32(id))
		}
	}
	return string(b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// It accepts both forms String returns.
func (id *Identifier) UnmarshalText(text []byte) error {
	s := string(text)
	if hex, ok := strings.CutPrefix(s, "0x"); ok && len(s) == 10 {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return fmt.Errorf("identifier %q: %w", s, err)
		}
		*id = Identifier(n)
		return nil
	}

	n, err := NewIdentifier(s)
	if err != nil {
		return err
	}
	*id = n
	return nil
}
