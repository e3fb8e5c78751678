package column

import (
	"math"

	"github.com/ajitpratap0/sparsetable/pkg/coerce"
	"github.com/ajitpratap0/sparsetable/pkg/defaults"
)

// scalarNative is the storage type of a scalar column.
type scalarNative interface {
	int8 | int32 | float32
}

// scalarKind is the per-type plug-in of a scalar column.
type scalarKind[T scalarNative] struct {
	typ     Type
	nominal bool
	def     func(defaults.Policy) T
	coerce  func(any, defaults.Policy) (T, error)
}

var (
	byteKind = scalarKind[int8]{
		typ:     TypeByte,
		nominal: true,
		def:     func(p defaults.Policy) int8 { return p.Byte },
		coerce:  coerce.ToByte,
	}
	intKind = scalarKind[int32]{
		typ:    TypeInteger,
		def:    func(p defaults.Policy) int32 { return p.Int },
		coerce: coerce.ToInt,
	}
	floatKind = scalarKind[float32]{
		typ:    TypeFloat,
		def:    func(p defaults.Policy) float32 { return p.Float },
		coerce: coerce.ToFloat,
	}
)

// Scalar is a sparse column storing one number per row.
type Scalar[T scalarNative] struct {
	*base[T]
	kind scalarKind[T]
}

type (
	// ByteColumn stores signed 8-bit values.
	ByteColumn = Scalar[int8]
	// IntColumn stores 32-bit integers.
	IntColumn = Scalar[int32]
	// FloatColumn stores 32-bit floats.
	FloatColumn = Scalar[float32]
)

var (
	_ NumericColumn = (*ByteColumn)(nil)
	_ NumericColumn = (*IntColumn)(nil)
	_ NumericColumn = (*FloatColumn)(nil)
)

func compareOrdered[T scalarNative](a, b T) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

func formatScalar[T scalarNative](v T) string {
	return coerce.ToString(v, defaults.Policy{})
}

func newScalar[T scalarNative](k scalarKind[T], opts []Option) *Scalar[T] {
	return &Scalar[T]{
		base: newBase(k.typ, k.nominal, compareOrdered[T], formatScalar[T], opts),
		kind: k,
	}
}

func (c *Scalar[T]) wrap(b *base[T]) Column {
	return &Scalar[T]{base: b, kind: c.kind}
}

// native returns the stored value, or the default for the column type.
func (c *Scalar[T]) native(row int) T {
	if v, ok := c.values.Get(row); ok {
		return v
	}
	return c.kind.def(c.policy)
}

// Numbers always convert, so the conversion errors below are never set.

func (c *Scalar[T]) GetBool(row int) bool { return c.native(row) != 0 }

func (c *Scalar[T]) GetByte(row int) int8 {
	v, _ := coerce.ToByte(c.native(row), c.policy)
	return v
}

func (c *Scalar[T]) GetShort(row int) int16 {
	v, _ := coerce.ToShort(c.native(row), c.policy)
	return v
}

func (c *Scalar[T]) GetInt(row int) int32 {
	v, _ := coerce.ToInt(c.native(row), c.policy)
	return v
}

func (c *Scalar[T]) GetLong(row int) int64 {
	v, _ := coerce.ToLong(c.native(row), c.policy)
	return v
}

func (c *Scalar[T]) GetFloat(row int) float32 {
	v, _ := coerce.ToFloat(c.native(row), c.policy)
	return v
}

func (c *Scalar[T]) GetDouble(row int) float64 {
	v, _ := coerce.ToDouble(c.native(row), c.policy)
	return v
}

// GetChar returns the character whose code point is the integer part of the
// value.
func (c *Scalar[T]) GetChar(row int) rune { return coerce.ToChar(c.native(row), c.policy) }

func (c *Scalar[T]) GetString(row int) string { return c.format(c.native(row)) }
func (c *Scalar[T]) GetBytes(row int) []byte  { return []byte(c.GetString(row)) }
func (c *Scalar[T]) GetChars(row int) []rune  { return []rune(c.GetString(row)) }

// GetObject returns the value boxed as its native type.
func (c *Scalar[T]) GetObject(row int) any { return c.native(row) }

func (c *Scalar[T]) set(v any, row int) error {
	checkRow(row)
	n, err := c.kind.coerce(v, c.policy)
	if err != nil {
		c.rejected(row, err)
		return err
	}
	c.values.Put(row, n)
	return nil
}

// setNumber stores an input that always converts.
func (c *Scalar[T]) setNumber(v any, row int) {
	_ = c.set(v, row)
}

func (c *Scalar[T]) SetBool(v bool, row int)      { c.setNumber(v, row) }
func (c *Scalar[T]) SetByte(v int8, row int)      { c.setNumber(v, row) }
func (c *Scalar[T]) SetChar(v rune, row int)      { c.setNumber(coerce.Char(v), row) }
func (c *Scalar[T]) SetDouble(v float64, row int) { c.setNumber(v, row) }
func (c *Scalar[T]) SetFloat(v float32, row int)  { c.setNumber(v, row) }
func (c *Scalar[T]) SetInt(v int32, row int)      { c.setNumber(v, row) }
func (c *Scalar[T]) SetLong(v int64, row int)     { c.setNumber(v, row) }
func (c *Scalar[T]) SetShort(v int16, row int)    { c.setNumber(v, row) }

// SetBytes parses the decoded text of v.
func (c *Scalar[T]) SetBytes(v []byte, row int) error { return c.set(v, row) }

// SetChars parses the text of v.
func (c *Scalar[T]) SetChars(v []rune, row int) error { return c.set(v, row) }

// SetString parses v as a number. On failure the column is left unchanged.
func (c *Scalar[T]) SetString(v string, row int) error { return c.set(v, row) }

// SetObject coerces v to the column type. On failure the column is left
// unchanged.
func (c *Scalar[T]) SetObject(v any, row int) error { return c.set(v, row) }

// InsertRow writes v at pos, shifting the consecutive run of occupied rows
// starting at pos up by one row each.
func (c *Scalar[T]) InsertRow(v any, pos int) error {
	checkRow(pos)
	n, err := c.kind.coerce(v, c.policy)
	if err != nil {
		c.rejected(pos, err)
		return err
	}
	c.insert(n, pos)
	return nil
}

// ReplaceRow sets the value at pos and clears its missing flag.
func (c *Scalar[T]) ReplaceRow(v any, pos int) error {
	if err := c.set(v, pos); err != nil {
		return err
	}
	c.rows.Missing.Remove(pos)
	return nil
}

// AddRow writes v right after the last stored row.
func (c *Scalar[T]) AddRow(v any) error { return c.set(v, c.NumRows()) }

// CompareValue compares v, converted to the column type, with row pos. A nil
// v sorts like a row without a value.
func (c *Scalar[T]) CompareValue(v any, pos int) (int, error) {
	var n T
	if v != nil {
		var err error
		if n, err = c.kind.coerce(v, c.policy); err != nil {
			return 0, err
		}
	}
	return c.compareValue(v != nil, n, pos), nil
}

func (c *Scalar[T]) SubsetIndices(indices []int) Column { return c.wrap(c.subsetIndices(indices)) }
func (c *Scalar[T]) SubsetRange(pos, length int) Column { return c.wrap(c.subsetRange(pos, length)) }
func (c *Scalar[T]) Reorder(order map[int]int) Column   { return c.wrap(c.reorder(order)) }
func (c *Scalar[T]) Copy() Column                       { return c.wrap(c.copy()) }

// Internal returns a dense []T of NumRows elements with the type default in
// rows without a value.
func (c *Scalar[T]) Internal() any {
	def := c.kind.def(c.policy)
	return c.dense(func() T { return def })
}

// ValuesInRange returns the values stored in rows [begin, end] as a sorted
// []T.
func (c *Scalar[T]) ValuesInRange(begin, end int) any {
	return c.values.ValuesInRange(begin, end, c.cmp)
}

func (c *Scalar[T]) IsNumeric() bool        { return true }
func (c *Scalar[T]) IsDataNumeric(int) bool { return true }

func (c *Scalar[T]) Min() float64 {
	m := math.Inf(1)
	c.eachValid(func(_ int, v T) {
		if f := float64(v); f < m {
			m = f
		}
	})
	return m
}

func (c *Scalar[T]) Max() float64 {
	m := math.Inf(-1)
	c.eachValid(func(_ int, v T) {
		if f := float64(v); f > m {
			m = f
		}
	})
	return m
}

func (c *Scalar[T]) Snapshot() Snapshot {
	s := c.snapshot()
	s.Values = c.Internal()
	if s.Entries > 0 {
		lo, hi := c.Min(), c.Max()
		s.Min, s.Max = &lo, &hi
	}
	return s
}
