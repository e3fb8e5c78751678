package column

// NewRow finds a free slot for curr when reassigning row numbers during a
// stable sort. values is sorted, values[row] == curr and row is already
// taken. It returns the nearest index i with values[i] == curr and
// !occupied[i], scanning backward from row-1 first and then forward from
// row+1, or -1 when every equal slot is taken.
func NewRow[T comparable](curr T, values []T, row int, occupied []bool) int {
	return NewRowFunc(curr, values, row, occupied, func(a, b T) bool { return a == b })
}

// NewRowFunc is NewRow with a caller supplied equality, for values such as
// slices that are not comparable.
func NewRowFunc[T any](curr T, values []T, row int, occupied []bool, eq func(a, b T) bool) int {
	free := func(i int) bool { return i < len(occupied) && !occupied[i] }

	for i := row - 1; i >= 0 && i < len(values) && eq(values[i], curr); i-- {
		if free(i) {
			return i
		}
	}
	for i := row + 1; i >= 0 && i < len(values) && eq(values[i], curr); i++ {
		if free(i) {
			return i
		}
	}
	return -1
}
