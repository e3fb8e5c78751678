package column_test

import (
	"fmt"

	"github.com/ajitpratap0/sparsetable/pkg/column"
	"github.com/ajitpratap0/sparsetable/pkg/defaults"
)

func ExampleNewIntColumn() {
	col := column.NewIntColumn(column.WithLabel("age"))
	col.SetInt(42, 3)
	col.SetValueToMissing(true, 5)

	fmt.Println(col.GetString(3))
	fmt.Println(col.GetInt(7), col.DoesValueExist(7))
	fmt.Println(col.NumRows(), col.MissingRows())
	// Output:
	// 42
	// 0 false
	// 4 [5]
}

func ExampleWithPolicy() {
	p := defaults.Standard()
	p.Int = -1
	p.String = "?"

	ints := column.NewIntColumn(column.WithPolicy(p))
	text := column.NewCharArrayColumn(column.WithPolicy(p))

	fmt.Println(ints.GetInt(0), text.GetString(0))
	// Output: -1 ?
}

func ExampleArray_InsertRow() {
	col := column.NewCharArrayColumn()
	_ = col.SetString("a", 5)
	_ = col.SetString("b", 6)
	_ = col.InsertRow("c", 5)

	for _, row := range col.Indices() {
		fmt.Println(row, col.GetString(row))
	}
	// Output:
	// 5 c
	// 6 a
	// 7 b
}

func ExampleScalar_Sort() {
	col := column.NewFloatColumnFrom([]float32{2.5, -1, 7})
	col.Sort()
	fmt.Println(col.Internal())
	// Output: [-1 2.5 7]
}
