// Package column implements sparse typed columns for data-mining tables.
//
// A column stores values only for the rows that were written. Every other
// row reads back as the default sentinel of the requested representation,
// taken from the column's defaults.Policy. Independently of storage, a row
// may be annotated as missing (value intentionally unknown) or empty (value
// intentionally blank); the two annotations are exclusive.
//
// Operations that relocate rows (SwapRows, SubsetIndices, SubsetRange,
// InsertRow, Reorder, Sort) move the stored value and both annotations
// together.
//
// # Column Types
//
//	BYTE        int8     scalar storage, nominal by default
//	INTEGER     int32    scalar storage
//	FLOAT       float32  scalar storage
//	BYTE_ARRAY  []byte   array storage, nominal
//	CHAR_ARRAY  []rune   array storage, nominal
//
// # Basic Usage
//
//	col := column.NewIntColumn(column.WithLabel("age"))
//	col.SetInt(42, 3)
//	col.SetValueToMissing(true, 5)
//
//	col.GetString(3)      // "42"
//	col.GetInt(7)         // 0, the policy default
//	col.DoesValueExist(7) // false
//
// Columns are not safe for concurrent mutation.
package column

import "github.com/ajitpratap0/sparsetable/pkg/defaults"

// Column is the contract shared by every sparse column type.
type Column interface {
	Type() Type
	Label() string
	SetLabel(label string)
	Comment() string
	SetComment(comment string)
	IsNominal() bool
	SetNominal(nominal bool)
	IsScalar() bool
	SetScalar(scalar bool)
	Policy() defaults.Policy

	GetBool(row int) bool
	GetByte(row int) int8
	GetBytes(row int) []byte
	GetChar(row int) rune
	GetChars(row int) []rune
	GetDouble(row int) float64
	GetFloat(row int) float32
	GetInt(row int) int32
	GetLong(row int) int64
	GetObject(row int) any
	GetShort(row int) int16
	GetString(row int) string

	SetBool(v bool, row int)
	SetByte(v int8, row int)
	SetChar(v rune, row int)
	SetDouble(v float64, row int)
	SetFloat(v float32, row int)
	SetInt(v int32, row int)
	SetLong(v int64, row int)
	SetShort(v int16, row int)
	SetBytes(v []byte, row int) error
	SetChars(v []rune, row int) error
	SetString(v string, row int) error
	SetObject(v any, row int) error

	DoesValueExist(row int) bool
	IsValueDefault(row int) bool
	IsValueMissing(row int) bool
	IsValueEmpty(row int) bool
	SetValueToMissing(missing bool, row int)
	SetValueToEmpty(empty bool, row int)
	SetMissingRows(rows []int)
	SetMissingValues(missing []bool)
	MissingRows() []int
	EmptyRows() []int
	MissingValues() []bool
	NumMissingValues() int
	HasMissingValues() bool

	NumRows() int
	NumEntries() int
	Indices() []int
	RowsInRange(begin, end int) []int

	CompareRows(pos1, pos2 int) int
	CompareValue(v any, pos int) (int, error)

	SubsetIndices(indices []int) Column
	SubsetRange(pos, length int) Column

	SwapRows(pos1, pos2 int)
	InsertRow(v any, pos int) error
	RemoveRow(pos int) any
	RemoveRows(pos, length int)
	RemoveRowsByIndex(indices []int)
	RemoveRowsByFlag(flags []bool)
	SetNumRows(n int)
	AddRows(n int)
	AddRow(v any) error
	ReplaceRow(v any, pos int) error

	Internal() any
	Copy() Column

	SortedOrder() map[int]int
	SortedOrderInRange(begin, end int) map[int]int
	ColumnSortedOrder() []int
	Reorder(order map[int]int) Column
	Sort()

	ValuesInRange(begin, end int) any
	Equal(other Column) bool
	IsNumeric() bool
	IsDataNumeric(row int) bool

	Snapshot() Snapshot
}

// NumericColumn is a column whose values can be summarized as numbers.
type NumericColumn interface {
	Column
	// Min returns the smallest value over rows that hold a value and are
	// neither missing nor empty, or +Inf when there is none.
	Min() float64
	// Max is the counterpart of Min and returns -Inf when there is no row.
	Max() float64
}

// Snapshot describes a column's full state.
type Snapshot struct {
	Type    Type     `json:"type"`
	Label   string   `json:"label,omitempty"`
	Nominal bool     `json:"nominal"`
	Rows    int      `json:"rows"`
	Entries int      `json:"entries"`
	Indices []int    `json:"indices"`
	Missing []int    `json:"missing"`
	Empty   []int    `json:"empty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Values  any      `json:"values"`
}
