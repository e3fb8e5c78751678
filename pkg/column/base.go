package column

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/ajitpratap0/sparsetable/pkg/defaults"
	"github.com/ajitpratap0/sparsetable/pkg/errors"
	"github.com/ajitpratap0/sparsetable/pkg/metrics"
	"github.com/ajitpratap0/sparsetable/pkg/rowset"
	"github.com/ajitpratap0/sparsetable/pkg/sparsemap"
)

// base is the storage engine shared by every column type: a sparse row map
// plus the missing/empty tracker. Concrete columns add coercion and typed
// accessors on top.
type base[T any] struct {
	typ     Type
	label   string
	comment string
	nominal bool
	policy  defaults.Policy

	values *sparsemap.Map[T]
	rows   *rowset.Tracker

	cmp    func(a, b T) int
	format func(T) string
	clone  func(T) T // nil when values are plain data

	log      *zap.Logger
	metrics  *metrics.Collector
	warnRows int
}

func newBase[T any](typ Type, nominal bool, cmp func(a, b T) int, format func(T) string, opts []Option) *base[T] {
	s := newSettings(opts)
	return &base[T]{
		typ:      typ,
		label:    s.label,
		nominal:  nominal,
		policy:   s.policy,
		values:   sparsemap.New[T](),
		rows:     rowset.NewTracker(),
		cmp:      cmp,
		format:   format,
		log:      s.log,
		metrics:  s.metrics,
		warnRows: s.warnRows,
	}
}

// derive returns a column with c's attributes over new storage.
func (c *base[T]) derive(values *sparsemap.Map[T], rows *rowset.Tracker) *base[T] {
	d := *c
	d.policy = c.policy.Clone()
	d.values = values
	d.rows = rows
	return &d
}

func checkRow(row int) {
	if row < 0 {
		panic(fmt.Sprintf("column: negative row index %d", row))
	}
}

func (c *base[T]) put(row int, v T) {
	checkRow(row)
	c.values.Put(row, v)
}

// rejected records a value that failed coercion.
func (c *base[T]) rejected(row int, err error) {
	target := c.typ.String()
	var e *errors.Error
	if errors.As(err, &e) {
		if s, ok := e.Details["target"].(string); ok {
			target = s
		}
	}
	c.metrics.CoercionFailed(c.typ.String(), target)
	c.log.Debug("value rejected",
		zap.String("column", c.label),
		zap.Stringer("type", c.typ),
		zap.Int("row", row),
		zap.Error(err))
}

func (c *base[T]) Type() Type                  { return c.typ }
func (c *base[T]) Label() string               { return c.label }
func (c *base[T]) SetLabel(label string)       { c.label = label }
func (c *base[T]) Comment() string             { return c.comment }
func (c *base[T]) SetComment(comment string)   { c.comment = comment }
func (c *base[T]) IsNominal() bool             { return c.nominal }
func (c *base[T]) SetNominal(nominal bool)     { c.nominal = nominal }
func (c *base[T]) IsScalar() bool              { return !c.nominal }
func (c *base[T]) SetScalar(scalar bool)       { c.nominal = !scalar }
func (c *base[T]) Policy() defaults.Policy     { return c.policy.Clone() }
func (c *base[T]) DoesValueExist(row int) bool { return c.values.ContainsKey(row) }
func (c *base[T]) IsValueDefault(row int) bool { return !c.values.ContainsKey(row) }
func (c *base[T]) IsValueMissing(row int) bool { return c.rows.Missing.Contains(row) }
func (c *base[T]) IsValueEmpty(row int) bool   { return c.rows.Empty.Contains(row) }

// SetValueToMissing flags or unflags row as missing. Flagging a row missing
// clears its empty flag.
func (c *base[T]) SetValueToMissing(missing bool, row int) {
	checkRow(row)
	c.rows.SetMissing(row, missing)
}

// SetValueToEmpty flags or unflags row as empty. Flagging a row empty clears
// its missing flag.
func (c *base[T]) SetValueToEmpty(empty bool, row int) {
	checkRow(row)
	c.rows.SetEmpty(row, empty)
}

// SetMissingRows replaces every missing annotation with rows.
func (c *base[T]) SetMissingRows(rows []int) {
	for _, r := range rows {
		checkRow(r)
	}
	c.rows.ResetMissing(rows...)
}

// SetMissingValues replaces every missing annotation with the rows i where
// missing[i] is set.
func (c *base[T]) SetMissingValues(missing []bool) {
	rows := make([]int, 0, len(missing))
	for i, m := range missing {
		if m {
			rows = append(rows, i)
		}
	}
	c.rows.ResetMissing(rows...)
}

func (c *base[T]) MissingRows() []int     { return c.rows.Missing.ToSlice() }
func (c *base[T]) EmptyRows() []int       { return c.rows.Empty.ToSlice() }
func (c *base[T]) MissingValues() []bool  { return c.rows.Missing.Bools() }
func (c *base[T]) NumMissingValues() int  { return c.rows.Missing.Len() }
func (c *base[T]) HasMissingValues() bool { return c.rows.Missing.Len() > 0 }

// NumRows returns the largest row holding a value, plus one.
func (c *base[T]) NumRows() int { return c.values.MaxKey() + 1 }

// NumEntries counts rows that hold a value and carry no annotation.
func (c *base[T]) NumEntries() int {
	n := 0
	c.values.Ascend(func(row int, _ T) bool {
		if !c.rows.Flagged(row) {
			n++
		}
		return true
	})
	return n
}

// Indices returns the rows holding a value, ascending.
func (c *base[T]) Indices() []int { return c.values.Keys() }

// RowsInRange returns the rows in [begin, end] holding a value.
func (c *base[T]) RowsInRange(begin, end int) []int { return c.values.KeysInRange(begin, end) }

func (c *base[T]) valid(row int) bool {
	return c.values.ContainsKey(row) && !c.rows.Flagged(row)
}

// validate orders two validity flags. Invalid sorts before valid and two
// invalid sides are equal; 2 means both sides hold comparable values.
func validate(valid1, valid2 bool) int {
	switch {
	case !valid1 && !valid2:
		return 0
	case !valid1:
		return -1
	case !valid2:
		return 1
	}
	return 2
}

// CompareRows orders two rows. Rows without a usable value (absent, missing
// or empty) sort before every value and equal to each other.
func (c *base[T]) CompareRows(pos1, pos2 int) int {
	if r := validate(c.valid(pos1), c.valid(pos2)); r <= 1 {
		return r
	}
	v1, _ := c.values.Get(pos1)
	v2, _ := c.values.Get(pos2)
	return c.cmp(v1, v2)
}

func (c *base[T]) compareValue(present bool, v T, pos int) int {
	if r := validate(present, c.valid(pos)); r <= 1 {
		return r
	}
	stored, _ := c.values.Get(pos)
	return c.cmp(v, stored)
}

// SwapRows exchanges the full state of two rows.
func (c *base[T]) SwapRows(pos1, pos2 int) {
	if pos1 == pos2 {
		return
	}
	checkRow(pos1)
	checkRow(pos2)
	v1, ok1 := c.values.Remove(pos1)
	v2, ok2 := c.values.Remove(pos2)
	if ok1 {
		c.values.Put(pos2, v1)
	}
	if ok2 {
		c.values.Put(pos1, v2)
	}
	c.rows.Swap(pos1, pos2)
}

func (c *base[T]) occupied(row int) bool {
	return c.values.ContainsKey(row) || c.rows.Flagged(row)
}

// insert writes v at pos after shifting the run of occupied rows starting at
// pos up by one.
func (c *base[T]) insert(v T, pos int) {
	checkRow(pos)
	end := pos
	for c.occupied(end) {
		end++
	}
	for r := end; r > pos; r-- {
		if moved, ok := c.values.Remove(r - 1); ok {
			c.values.Put(r, moved)
		}
	}
	c.rows.ShiftUp(pos, end)
	c.values.Put(pos, v)
	c.metrics.Displaced(c.typ.String(), end-pos)
}

func (c *base[T]) removeRow(pos int) {
	c.values.Remove(pos)
	c.rows.Missing.Remove(pos)
}

// RemoveRow deletes the value at pos and clears its missing flag. It returns
// the removed value, or nil when the row held none.
func (c *base[T]) RemoveRow(pos int) any {
	v, ok := c.values.Remove(pos)
	c.rows.Missing.Remove(pos)
	if !ok {
		return nil
	}
	return v
}

// RemoveRows removes the values in rows [pos, pos+length).
func (c *base[T]) RemoveRows(pos, length int) {
	for _, r := range c.values.KeysInRange(pos, pos+length-1) {
		c.removeRow(r)
	}
}

func (c *base[T]) RemoveRowsByIndex(indices []int) {
	for _, r := range indices {
		c.removeRow(r)
	}
}

// RemoveRowsByFlag removes each row i with flags[i] set, and every row at or
// beyond len(flags).
func (c *base[T]) RemoveRowsByFlag(flags []bool) {
	for i, f := range flags {
		if f {
			c.removeRow(i)
		}
	}
	for _, r := range c.values.KeysInRange(len(flags), c.values.MaxKey()) {
		c.removeRow(r)
	}
}

// SetNumRows truncates the column to n rows. It never grows a column.
func (c *base[T]) SetNumRows(n int) {
	for _, r := range c.values.KeysInRange(n, c.values.MaxKey()) {
		c.removeRow(r)
	}
}

// AddRows does nothing: blank rows need no storage.
func (c *base[T]) AddRows(int) {}

func (c *base[T]) subsetIndices(indices []int) *base[T] {
	values := sparsemap.New[T]()
	for i, r := range indices {
		if v, ok := c.values.Get(r); ok {
			values.Put(i, v)
		}
	}
	return c.derive(values, c.rows.Subset(indices))
}

func (c *base[T]) subsetRange(pos, length int) *base[T] {
	return c.derive(c.values.Subset(pos, length), c.rows.SubsetRange(pos, length))
}

func (c *base[T]) copy() *base[T] {
	var values *sparsemap.Map[T]
	if c.clone != nil {
		values = c.values.CopyFunc(c.clone)
	} else {
		values = c.values.Copy()
	}
	return c.derive(values, c.rows.Copy())
}

func (c *base[T]) reorder(order map[int]int) *base[T] {
	return c.derive(c.values.Reorder(order), c.rows.Reorder(order))
}

func (c *base[T]) sortedRows(keys []int) []int {
	rows := slices.Clone(keys)
	slices.SortStableFunc(rows, c.CompareRows)
	return rows
}

func (c *base[T]) orderOf(keys []int) map[int]int {
	sorted := c.sortedRows(keys)
	order := make(map[int]int, len(keys))
	for i, k := range keys {
		order[k] = sorted[i]
	}
	return order
}

// SortedOrder maps each row holding a value to the row whose value belongs
// there once the column is sorted ascending. Ties keep their relative order.
func (c *base[T]) SortedOrder() map[int]int { return c.orderOf(c.values.Keys()) }

// SortedOrderInRange is SortedOrder restricted to the rows in [begin, end].
func (c *base[T]) SortedOrderInRange(begin, end int) map[int]int {
	return c.orderOf(c.values.KeysInRange(begin, end))
}

// ColumnSortedOrder returns the rows holding a value ordered by value.
func (c *base[T]) ColumnSortedOrder() []int { return c.sortedRows(c.values.Keys()) }

// Sort reorders the column in place by SortedOrder.
func (c *base[T]) Sort() {
	order := c.SortedOrder()
	c.values = c.values.Reorder(order)
	c.rows = c.rows.Reorder(order)
}

// Equal reports whether other holds the same sequence of values, compared as
// text and ignoring the rows they sit at.
func (c *base[T]) Equal(other Column) bool {
	if other == nil || c.NumEntries() != other.NumEntries() {
		return false
	}
	mine := c.values.Keys()
	theirs := other.Indices()
	if len(mine) != len(theirs) {
		return false
	}
	for i, r := range mine {
		v, _ := c.values.Get(r)
		if c.format(v) != other.GetString(theirs[i]) {
			return false
		}
	}
	return true
}

// eachValid calls fn for rows holding a value with no annotation.
func (c *base[T]) eachValid(fn func(row int, v T)) {
	c.values.Ascend(func(row int, v T) bool {
		if !c.rows.Flagged(row) {
			fn(row, v)
		}
		return true
	})
}

// dense expands the column to a slice of NumRows elements, filling rows
// without a value from fill.
func (c *base[T]) dense(fill func() T) []T {
	n := c.NumRows()
	c.metrics.Materialized(c.typ.String(), n)
	if c.warnRows > 0 && n > c.warnRows {
		c.log.Warn("materializing large sparse column",
			zap.String("column", c.label),
			zap.Stringer("type", c.typ),
			zap.Int("rows", n),
			zap.Int("stored", c.values.Len()))
	}

	out := make([]T, n)
	next := 0
	c.values.Ascend(func(row int, v T) bool {
		for ; next < row; next++ {
			out[next] = fill()
		}
		out[row] = v
		next = row + 1
		return true
	})
	return out
}

func (c *base[T]) snapshot() Snapshot {
	return Snapshot{
		Type:    c.typ,
		Label:   c.label,
		Nominal: c.nominal,
		Rows:    c.NumRows(),
		Entries: c.NumEntries(),
		Indices: c.values.Keys(),
		Missing: c.rows.Missing.ToSlice(),
		Empty:   c.rows.Empty.ToSlice(),
	}
}

// load pairs values with rows up to the shorter length and appends the
// remaining values after the last stored row.
func (c *base[T]) load(values []T, rows []int) {
	n := min(len(values), len(rows))
	for i := 0; i < n; i++ {
		c.put(rows[i], values[i])
	}
	next := c.NumRows()
	for _, v := range values[n:] {
		c.put(next, v)
		next++
	}
}
