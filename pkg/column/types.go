package column

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/sparsetable/pkg/errors"
)

// Type represents the native representation of a column
type Type int

const (
	TypeByte Type = iota
	TypeInteger
	TypeFloat
	TypeByteArray
	TypeCharArray
)

var typeNames = map[Type]string{
	TypeByte:      "BYTE",
	TypeInteger:   "INTEGER",
	TypeFloat:     "FLOAT",
	TypeByteArray: "BYTE_ARRAY",
	TypeCharArray: "CHAR_ARRAY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType parses a type name such as "INTEGER" or "char_array".
func ParseType(s string) (Type, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.Newf(errors.ErrorTypeNotFound, "unknown column type %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
