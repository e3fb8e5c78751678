// Package arrowbridge exports sparse columns as Apache Arrow data.
//
// Every row up to the column's NumRows becomes one slot. A slot is null when
// the row holds no value or is annotated missing or empty, so the sparse
// structure survives the conversion:
//
//	BYTE        -> int8
//	INTEGER     -> int32
//	FLOAT       -> float32
//	BYTE_ARRAY  -> binary
//	CHAR_ARRAY  -> utf8
//
// Several columns can be combined into a record, written as an Arrow IPC file
// or as Parquet.
package arrowbridge

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/sparsetable/pkg/column"
	"github.com/ajitpratap0/sparsetable/pkg/errors"
)

// DataType returns the Arrow type a column of type t converts to.
func DataType(t column.Type) (arrow.DataType, error) {
	switch t {
	case column.TypeByte:
		return arrow.PrimitiveTypes.Int8, nil
	case column.TypeInteger:
		return arrow.PrimitiveTypes.Int32, nil
	case column.TypeFloat:
		return arrow.PrimitiveTypes.Float32, nil
	case column.TypeByteArray:
		return arrow.BinaryTypes.Binary, nil
	case column.TypeCharArray:
		return arrow.BinaryTypes.String, nil
	}
	return nil, errors.Newf(errors.ErrorTypeCapability, "no arrow type for column type %v", t)
}

// Field describes col as a nullable Arrow field named by its label.
func Field(col column.Column) (arrow.Field, error) {
	dt, err := DataType(col.Type())
	if err != nil {
		return arrow.Field{}, err
	}
	return arrow.Field{Name: col.Label(), Type: dt, Nullable: true}, nil
}

// Schema describes cols in order. Unlabelled columns are named col<i>.
func Schema(cols ...column.Column) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, len(cols))
	for i, col := range cols {
		f, err := Field(col)
		if err != nil {
			return nil, err
		}
		if f.Name == "" {
			f.Name = fmt.Sprintf("col%d", i)
		}
		fields = append(fields, f)
	}
	return arrow.NewSchema(fields, nil), nil
}

// ToArrow converts col to an array of NumRows slots. The caller releases it.
func ToArrow(col column.Column, mem memory.Allocator) (arrow.Array, error) {
	return build(col, col.NumRows(), mem)
}

// NewRecord converts cols into a record as long as the longest column;
// shorter columns are padded with nulls. The caller releases it.
func NewRecord(mem memory.Allocator, cols ...column.Column) (arrow.Record, error) {
	schema, err := Schema(cols...)
	if err != nil {
		return nil, err
	}

	rows := 0
	for _, col := range cols {
		rows = max(rows, col.NumRows())
	}

	arrays := make([]arrow.Array, 0, len(cols))
	defer func() {
		for _, a := range arrays {
			a.Release()
		}
	}()
	for _, col := range cols {
		a, err := build(col, rows, mem)
		if err != nil {
			return nil, err
		}
		arrays = append(arrays, a)
	}
	return array.NewRecord(schema, arrays, int64(rows)), nil
}

func present(col column.Column, row int) bool {
	return col.DoesValueExist(row) && !col.IsValueMissing(row) && !col.IsValueEmpty(row)
}

// build converts the first n rows of col.
func build(col column.Column, n int, mem memory.Allocator) (arrow.Array, error) {
	switch col.Type() {
	case column.TypeByte:
		b := array.NewInt8Builder(mem)
		defer b.Release()
		appendRows(b, col, n, func(r int) { b.Append(col.GetByte(r)) })
		return b.NewArray(), nil

	case column.TypeInteger:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		appendRows(b, col, n, func(r int) { b.Append(col.GetInt(r)) })
		return b.NewArray(), nil

	case column.TypeFloat:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		appendRows(b, col, n, func(r int) { b.Append(col.GetFloat(r)) })
		return b.NewArray(), nil

	case column.TypeByteArray:
		b := array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
		defer b.Release()
		appendRows(b, col, n, func(r int) { b.Append(col.GetBytes(r)) })
		return b.NewArray(), nil

	case column.TypeCharArray:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		appendRows(b, col, n, func(r int) { b.Append(col.GetString(r)) })
		return b.NewArray(), nil
	}
	return nil, errors.Newf(errors.ErrorTypeCapability, "no arrow type for column type %v", col.Type())
}

func appendRows(b array.Builder, col column.Column, n int, appendValue func(row int)) {
	b.Reserve(n)
	for r := 0; r < n; r++ {
		if present(col, r) {
			appendValue(r)
		} else {
			b.AppendNull()
		}
	}
}
