package column

import (
	"bytes"
	"slices"

	"github.com/ajitpratap0/sparsetable/pkg/coerce"
	"github.com/ajitpratap0/sparsetable/pkg/defaults"
)

// arrayNative is the storage type of an array column.
type arrayNative interface {
	[]byte | []rune
}

// arrayKind is the per-type plug-in of an array column.
type arrayKind[T arrayNative] struct {
	typ     Type
	def     func(defaults.Policy) T
	coerce  func(any, defaults.Policy) T
	compare func(a, b T) int
	clone   func(T) T
}

var (
	byteArrayKind = arrayKind[[]byte]{
		typ:     TypeByteArray,
		def:     defaults.Policy.DefaultBytes,
		coerce:  coerce.ToByteArray,
		compare: bytes.Compare,
		clone:   slices.Clone[[]byte],
	}
	charArrayKind = arrayKind[[]rune]{
		typ:     TypeCharArray,
		def:     defaults.Policy.DefaultChars,
		coerce:  coerce.ToCharArray,
		compare: slices.Compare[[]rune],
		clone:   slices.Clone[[]rune],
	}
)

// Array is a sparse column storing one array per row. Stored arrays are held
// by reference; Copy clones them.
type Array[T arrayNative] struct {
	*base[T]
	kind arrayKind[T]
}

type (
	// ByteArrayColumn stores byte arrays.
	ByteArrayColumn = Array[[]byte]
	// CharArrayColumn stores character arrays.
	CharArrayColumn = Array[[]rune]
)

var (
	_ Column = (*ByteArrayColumn)(nil)
	_ Column = (*CharArrayColumn)(nil)
)

func formatArray[T arrayNative](v T) string { return string(v) }

func newArray[T arrayNative](k arrayKind[T], opts []Option) *Array[T] {
	b := newBase(k.typ, true, k.compare, formatArray[T], opts)
	b.clone = k.clone
	return &Array[T]{base: b, kind: k}
}

func (c *Array[T]) wrap(b *base[T]) Column {
	return &Array[T]{base: b, kind: c.kind}
}

// GetBytes returns the stored bytes. A byte array column returns nil for a
// row without a value; a char array column returns the policy default.
func (c *Array[T]) GetBytes(row int) []byte {
	v, ok := c.values.Get(row)
	if !ok {
		if c.typ == TypeByteArray {
			return nil
		}
		return c.policy.DefaultBytes()
	}
	return coerce.ToByteArray(v, c.policy)
}

// GetChars returns the stored characters. A char array column returns nil
// for a row without a value; a byte array column returns the policy default.
func (c *Array[T]) GetChars(row int) []rune {
	v, ok := c.values.Get(row)
	if !ok {
		if c.typ == TypeCharArray {
			return nil
		}
		return c.policy.DefaultChars()
	}
	return coerce.ToCharArray(v, c.policy)
}

// GetObject returns the stored array, or nil.
func (c *Array[T]) GetObject(row int) any {
	if v, ok := c.values.Get(row); ok {
		return v
	}
	return nil
}

func (c *Array[T]) GetString(row int) string {
	if v, ok := c.values.Get(row); ok {
		return string(v)
	}
	return c.policy.String
}

func (c *Array[T]) GetBool(row int) bool {
	if v, ok := c.values.Get(row); ok {
		return coerce.ToBool(v, c.policy)
	}
	return c.policy.Bool
}

// GetChar returns the first character of the stored text.
func (c *Array[T]) GetChar(row int) rune {
	if v, ok := c.values.Get(row); ok {
		return coerce.ToChar(v, c.policy)
	}
	return c.policy.Char
}

// numeric returns the stored value when its text parses as a number.
func (c *Array[T]) numeric(row int) (T, bool) {
	v, ok := c.values.Get(row)
	if !ok || !coerce.IsNumericText(string(v)) {
		return nil, false
	}
	return v, true
}

// The numeric getters return the policy default unless the row holds
// numeric text.

func (c *Array[T]) GetByte(row int) int8 {
	if v, ok := c.numeric(row); ok {
		if n, err := coerce.ToByte(v, c.policy); err == nil {
			return n
		}
	}
	return c.policy.Byte
}

func (c *Array[T]) GetShort(row int) int16 {
	if v, ok := c.numeric(row); ok {
		if n, err := coerce.ToShort(v, c.policy); err == nil {
			return n
		}
	}
	return c.policy.Short
}

func (c *Array[T]) GetInt(row int) int32 {
	if v, ok := c.numeric(row); ok {
		if n, err := coerce.ToInt(v, c.policy); err == nil {
			return n
		}
	}
	return c.policy.Int
}

func (c *Array[T]) GetLong(row int) int64 {
	if v, ok := c.numeric(row); ok {
		if n, err := coerce.ToLong(v, c.policy); err == nil {
			return n
		}
	}
	return c.policy.Long
}

func (c *Array[T]) GetFloat(row int) float32 {
	if v, ok := c.numeric(row); ok {
		if n, err := coerce.ToFloat(v, c.policy); err == nil {
			return n
		}
	}
	return c.policy.Float
}

func (c *Array[T]) GetDouble(row int) float64 {
	if v, ok := c.numeric(row); ok {
		if n, err := coerce.ToDouble(v, c.policy); err == nil {
			return n
		}
	}
	return c.policy.Double
}

func (c *Array[T]) set(v any, row int) {
	checkRow(row)
	c.values.Put(row, c.kind.coerce(v, c.policy))
}

// Scalar inputs are stored as their text, except that SetByte on a byte
// array column stores a one-element array.

func (c *Array[T]) SetBool(v bool, row int)      { c.set(v, row) }
func (c *Array[T]) SetByte(v int8, row int)      { c.set(v, row) }
func (c *Array[T]) SetChar(v rune, row int)      { c.set(coerce.Char(v), row) }
func (c *Array[T]) SetDouble(v float64, row int) { c.set(v, row) }
func (c *Array[T]) SetFloat(v float32, row int)  { c.set(v, row) }
func (c *Array[T]) SetInt(v int32, row int)      { c.set(v, row) }
func (c *Array[T]) SetLong(v int64, row int)     { c.set(v, row) }
func (c *Array[T]) SetShort(v int16, row int)    { c.set(v, row) }

// Array conversions cannot fail; the error results are always nil.

func (c *Array[T]) SetBytes(v []byte, row int) error {
	c.set(v, row)
	return nil
}

func (c *Array[T]) SetChars(v []rune, row int) error {
	c.set(v, row)
	return nil
}

func (c *Array[T]) SetString(v string, row int) error {
	c.set(v, row)
	return nil
}

func (c *Array[T]) SetObject(v any, row int) error {
	c.set(v, row)
	return nil
}

// InsertRow writes v at pos, shifting the consecutive run of occupied rows
// starting at pos up by one row each.
func (c *Array[T]) InsertRow(v any, pos int) error {
	c.insert(c.kind.coerce(v, c.policy), pos)
	return nil
}

// ReplaceRow sets the value at pos and clears its missing flag.
func (c *Array[T]) ReplaceRow(v any, pos int) error {
	c.set(v, pos)
	c.rows.Missing.Remove(pos)
	return nil
}

// AddRow writes v right after the last stored row.
func (c *Array[T]) AddRow(v any) error {
	c.set(v, c.NumRows())
	return nil
}

// CompareValue compares v, converted to the column type, with row pos.
// Arrays compare element by element.
func (c *Array[T]) CompareValue(v any, pos int) (int, error) {
	var a T
	if v != nil {
		a = c.kind.coerce(v, c.policy)
	}
	return c.compareValue(v != nil, a, pos), nil
}

func (c *Array[T]) SubsetIndices(indices []int) Column { return c.wrap(c.subsetIndices(indices)) }
func (c *Array[T]) SubsetRange(pos, length int) Column { return c.wrap(c.subsetRange(pos, length)) }
func (c *Array[T]) Reorder(order map[int]int) Column   { return c.wrap(c.reorder(order)) }
func (c *Array[T]) Copy() Column                       { return c.wrap(c.copy()) }

// Internal returns a dense []T of NumRows elements. Rows without a value hold
// their own copy of the policy default array.
func (c *Array[T]) Internal() any {
	return c.dense(func() T { return c.kind.def(c.policy) })
}

// ValuesInRange returns the arrays stored in rows [begin, end] as a sorted
// []T.
func (c *Array[T]) ValuesInRange(begin, end int) any {
	return c.values.ValuesInRange(begin, end, c.cmp)
}

// IsNumeric reports whether every unannotated stored value is numeric text.
func (c *Array[T]) IsNumeric() bool {
	numeric := true
	c.eachValid(func(_ int, v T) {
		numeric = numeric && coerce.IsNumericText(string(v))
	})
	return numeric
}

// IsDataNumeric reports whether row holds numeric text.
func (c *Array[T]) IsDataNumeric(row int) bool {
	_, ok := c.numeric(row)
	return ok
}

// Snapshot renders values as text.
func (c *Array[T]) Snapshot() Snapshot {
	s := c.snapshot()
	dense := c.dense(func() T { return c.kind.def(c.policy) })
	values := make([]string, len(dense))
	for i, v := range dense {
		values[i] = string(v)
	}
	s.Values = values
	return s
}
