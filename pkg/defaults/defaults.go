// Package defaults holds the sentinel values a sparse column returns for rows
// that have no stored value.
//
// A Policy is a plain value. Columns receive one at construction and carry it
// into their subsets and copies, so two tables may use different sentinels
// without sharing any process-wide state.
//
// The sentinel for a row says nothing about why the row is blank. Callers that
// need to tell an absent row from a stored value equal to the sentinel must ask
// the column (DoesValueExist, IsValueMissing, IsValueEmpty).
package defaults

import (
	"slices"

	"github.com/ajitpratap0/sparsetable/pkg/errors"
)

// Policy is the set of per-representation defaults.
type Policy struct {
	Byte   int8    `yaml:"byte" json:"byte" mapstructure:"byte"`
	Short  int16   `yaml:"short" json:"short" mapstructure:"short"`
	Int    int32   `yaml:"int" json:"int" mapstructure:"int"`
	Long   int64   `yaml:"long" json:"long" mapstructure:"long"`
	Float  float32 `yaml:"float" json:"float" mapstructure:"float"`
	Double float64 `yaml:"double" json:"double" mapstructure:"double"`
	Bool   bool    `yaml:"bool" json:"bool" mapstructure:"bool"`
	Char   rune    `yaml:"char" json:"char" mapstructure:"char"`
	String string  `yaml:"string" json:"string" mapstructure:"string"`
	Bytes  []byte  `yaml:"bytes" json:"bytes" mapstructure:"bytes"`
	Chars  []rune  `yaml:"chars" json:"chars" mapstructure:"chars"`
	Object any     `yaml:"-" json:"-" mapstructure:"-"`
}

// Standard returns the stock sentinels: zero for every number, false, the NUL
// character, the empty string, and one-element NUL arrays.
func Standard() Policy {
	return Policy{
		Bytes: []byte{0},
		Chars: []rune{0},
	}
}

// DefaultBytes returns a fresh copy of the byte-array sentinel.
func (p Policy) DefaultBytes() []byte { return slices.Clone(p.Bytes) }

// DefaultChars returns a fresh copy of the char-array sentinel.
func (p Policy) DefaultChars() []rune { return slices.Clone(p.Chars) }

// Clone returns a copy that shares no slices with p.
func (p Policy) Clone() Policy {
	p.Bytes = slices.Clone(p.Bytes)
	p.Chars = slices.Clone(p.Chars)
	return p
}

// Validate checks that the array sentinels are set; dense materialization of
// array columns fills gaps with them.
func (p Policy) Validate() error {
	if p.Bytes == nil {
		return errors.New(errors.ErrorTypeConfig, "byte array default must not be nil")
	}
	if p.Chars == nil {
		return errors.New(errors.ErrorTypeConfig, "char array default must not be nil")
	}
	return nil
}

// Equal reports whether two policies carry the same sentinels.
func (p Policy) Equal(o Policy) bool {
	return p.Byte == o.Byte &&
		p.Short == o.Short &&
		p.Int == o.Int &&
		p.Long == o.Long &&
		p.Float == o.Float &&
		p.Double == o.Double &&
		p.Bool == o.Bool &&
		p.Char == o.Char &&
		p.String == o.String &&
		slices.Equal(p.Bytes, o.Bytes) &&
		slices.Equal(p.Chars, o.Chars) &&
		p.Object == o.Object
}
