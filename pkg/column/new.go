package column

import "github.com/ajitpratap0/sparsetable/pkg/errors"

// NewByteColumn creates an empty byte column.
func NewByteColumn(opts ...Option) *ByteColumn { return newScalar(byteKind, opts) }

// NewByteColumnFrom creates a byte column holding values in rows 0..n-1.
func NewByteColumnFrom(values []int8, opts ...Option) *ByteColumn {
	c := NewByteColumn(opts...)
	c.load(values, rowsUpTo(len(values)))
	return c
}

// NewByteColumnWithRows pairs values[i] with rows[i]. Values beyond len(rows)
// are appended after the last stored row.
func NewByteColumnWithRows(values []int8, rows []int, opts ...Option) *ByteColumn {
	c := NewByteColumn(opts...)
	c.load(values, rows)
	return c
}

// NewIntColumn creates an empty integer column.
func NewIntColumn(opts ...Option) *IntColumn { return newScalar(intKind, opts) }

// NewIntColumnFrom creates an integer column holding values in rows 0..n-1.
func NewIntColumnFrom(values []int32, opts ...Option) *IntColumn {
	c := NewIntColumn(opts...)
	c.load(values, rowsUpTo(len(values)))
	return c
}

// NewIntColumnWithRows pairs values[i] with rows[i]. Values beyond len(rows)
// are appended after the last stored row.
func NewIntColumnWithRows(values []int32, rows []int, opts ...Option) *IntColumn {
	c := NewIntColumn(opts...)
	c.load(values, rows)
	return c
}

// NewFloatColumn creates an empty float column.
func NewFloatColumn(opts ...Option) *FloatColumn { return newScalar(floatKind, opts) }

// NewFloatColumnFrom creates a float column holding values in rows 0..n-1.
func NewFloatColumnFrom(values []float32, opts ...Option) *FloatColumn {
	c := NewFloatColumn(opts...)
	c.load(values, rowsUpTo(len(values)))
	return c
}

// NewFloatColumnWithRows pairs values[i] with rows[i]. Values beyond
// len(rows) are appended after the last stored row.
func NewFloatColumnWithRows(values []float32, rows []int, opts ...Option) *FloatColumn {
	c := NewFloatColumn(opts...)
	c.load(values, rows)
	return c
}

// NewByteArrayColumn creates an empty byte array column.
func NewByteArrayColumn(opts ...Option) *ByteArrayColumn { return newArray(byteArrayKind, opts) }

// NewByteArrayColumnFrom creates a byte array column holding values in rows
// 0..n-1. The arrays are stored by reference.
func NewByteArrayColumnFrom(values [][]byte, opts ...Option) *ByteArrayColumn {
	c := NewByteArrayColumn(opts...)
	c.load(values, rowsUpTo(len(values)))
	return c
}

// NewByteArrayColumnWithRows pairs values[i] with rows[i]. Values beyond
// len(rows) are appended after the last stored row.
func NewByteArrayColumnWithRows(values [][]byte, rows []int, opts ...Option) *ByteArrayColumn {
	c := NewByteArrayColumn(opts...)
	c.load(values, rows)
	return c
}

// NewCharArrayColumn creates an empty char array column.
func NewCharArrayColumn(opts ...Option) *CharArrayColumn { return newArray(charArrayKind, opts) }

// NewCharArrayColumnFrom creates a char array column holding values in rows
// 0..n-1. The arrays are stored by reference.
func NewCharArrayColumnFrom(values [][]rune, opts ...Option) *CharArrayColumn {
	c := NewCharArrayColumn(opts...)
	c.load(values, rowsUpTo(len(values)))
	return c
}

// NewCharArrayColumnWithRows pairs values[i] with rows[i]. Values beyond
// len(rows) are appended after the last stored row.
func NewCharArrayColumnWithRows(values [][]rune, rows []int, opts ...Option) *CharArrayColumn {
	c := NewCharArrayColumn(opts...)
	c.load(values, rows)
	return c
}

// New creates an empty column of type t.
func New(t Type, opts ...Option) (Column, error) {
	switch t {
	case TypeByte:
		return NewByteColumn(opts...), nil
	case TypeInteger:
		return NewIntColumn(opts...), nil
	case TypeFloat:
		return NewFloatColumn(opts...), nil
	case TypeByteArray:
		return NewByteArrayColumn(opts...), nil
	case TypeCharArray:
		return NewCharArrayColumn(opts...), nil
	default:
		return nil, errors.Newf(errors.ErrorTypeNotFound, "unknown column type %v", t)
	}
}

func rowsUpTo(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}
