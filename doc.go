// Package sparsetable is a sparse, typed column store.
//
// A column maps row numbers to values of one type. Only rows that were
// written take up space; every other row reads back as the type default
// chosen by a defaults.Policy. Each row may also be flagged missing or
// empty, independent of whether it holds a value.
//
// # Column types
//
// Five storage types are provided by package column:
//
//	BYTE        int8      (nominal)
//	INTEGER     int32
//	FLOAT       float32
//	BYTE_ARRAY  []byte    (nominal)
//	CHAR_ARRAY  []rune    (nominal)
//
// Every column accepts and returns every scalar and array type. Conversions
// between them live in package coerce; a value that cannot be converted is
// rejected with a conversion error and the column is left unchanged.
//
// # Quick Start
//
//	col := column.NewIntColumn(column.WithLabel("age"))
//	col.SetInt(42, 3)
//	col.SetValueToMissing(true, 5)
//	_ = col.InsertRow(7, 3) // 42 moves to row 4
//
//	order := col.SortedOrder() // sorted position to original row
//	sorted := col.Reorder(order)
//
// Columns can be exported to Arrow records, Arrow IPC files and Parquet
// files with package arrowbridge. The sparsecol command builds a column
// from flags and prints its state.
//
// # Packages
//
//   - column: the column types and the Column interface
//   - sparsemap: ordered sparse row to value storage
//   - rowset: missing and empty annotation sets
//   - coerce: conversions between the supported value types
//   - defaults: default values for rows without data
//   - config: file and environment configuration
//   - metrics: Prometheus collectors for column activity
//   - arrowbridge: Arrow and Parquet export
//
// Columns are not safe for concurrent use. Callers that share a column
// between goroutines must synchronize access.
package sparsetable
