// Package rowset tracks the missing and empty annotations of sparse column rows
// as 64-bit roaring bitmaps.
package rowset

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Set is a set of non-negative row indices.
type Set struct {
	bm *roaring64.Bitmap
}

// NewSet creates a set holding rows.
func NewSet(rows ...int) *Set {
	s := &Set{bm: roaring64.New()}
	for _, r := range rows {
		s.Add(r)
	}
	return s
}

// Add inserts row. Negative rows are ignored.
func (s *Set) Add(row int) {
	if row >= 0 {
		s.bm.Add(uint64(row))
	}
}

// Remove deletes row.
func (s *Set) Remove(row int) {
	if row >= 0 {
		s.bm.Remove(uint64(row))
	}
}

// Contains reports membership of row.
func (s *Set) Contains(row int) bool {
	return row >= 0 && s.bm.Contains(uint64(row))
}

// Len returns the number of members.
func (s *Set) Len() int { return int(s.bm.GetCardinality()) }

// Max returns the largest member, or -1 when the set is empty.
func (s *Set) Max() int {
	if s.bm.IsEmpty() {
		return -1
	}
	return int(s.bm.Maximum())
}

// ascend calls fn for members at or above from in ascending order until fn
// returns false.
func (s *Set) ascend(from int, fn func(row int) bool) {
	it := s.bm.Iterator()
	if from > 0 {
		it.AdvanceIfNeeded(uint64(from))
	}
	for it.HasNext() {
		if !fn(int(it.Next())) {
			return
		}
	}
}

// ToSlice returns the members in ascending order.
func (s *Set) ToSlice() []int {
	out := make([]int, 0, s.Len())
	s.ascend(0, func(r int) bool {
		out = append(out, r)
		return true
	})
	return out
}

// Copy returns an independent set with the same members.
func (s *Set) Copy() *Set { return &Set{bm: s.bm.Clone()} }

// Equal reports whether both sets hold the same rows.
func (s *Set) Equal(o *Set) bool { return s.bm.Equals(o.bm) }

func (s *Set) set(row int, member bool) {
	if member {
		s.Add(row)
	} else {
		s.Remove(row)
	}
}

// Swap exchanges the membership of rows a and b.
func (s *Set) Swap(a, b int) {
	ina, inb := s.Contains(a), s.Contains(b)
	s.set(a, inb)
	s.set(b, ina)
}

// Subset returns a positional subset: row i of the result is a member iff
// indices[i] is a member of s.
func (s *Set) Subset(indices []int) *Set {
	out := NewSet()
	for i, r := range indices {
		if s.Contains(r) {
			out.Add(i)
		}
	}
	return out
}

// SubsetRange returns the members in [pos, pos+length), shifted down by pos.
func (s *Set) SubsetRange(pos, length int) *Set {
	out := NewSet()
	if length <= 0 {
		return out
	}
	end := pos + length
	s.ascend(max(pos, 0), func(r int) bool {
		if r >= end {
			return false
		}
		out.Add(r - pos)
		return true
	})
	return out
}

// Reorder builds a new set from order, which maps destination row to source
// row. Members that are not a source in order keep their row.
func (s *Set) Reorder(order map[int]int) *Set {
	out := NewSet()
	sources := make(map[int]struct{}, len(order))
	for dst, src := range order {
		sources[src] = struct{}{}
		if s.Contains(src) {
			out.Add(dst)
		}
	}
	s.ascend(0, func(r int) bool {
		if _, moved := sources[r]; !moved {
			out.Add(r)
		}
		return true
	})
	return out
}

// ShiftUp moves the membership of every row in [from, to) to the row above.
// Row to is overwritten and row from ends up unset.
func (s *Set) ShiftUp(from, to int) {
	for r := to; r > from; r-- {
		s.set(r, s.Contains(r-1))
	}
	s.Remove(from)
}

// Bools returns a dense membership slice of length Max()+1.
func (s *Set) Bools() []bool {
	out := make([]bool, s.Max()+1)
	s.ascend(0, func(r int) bool {
		out[r] = true
		return true
	})
	return out
}

// Tracker carries the missing and empty annotations of a column. A row is
// never in both sets.
type Tracker struct {
	Missing *Set
	Empty   *Set
}

// NewTracker creates a tracker with no annotated rows.
func NewTracker() *Tracker {
	return &Tracker{Missing: NewSet(), Empty: NewSet()}
}

// SetMissing flags or unflags row as missing. Flagging clears the empty flag.
func (t *Tracker) SetMissing(row int, missing bool) {
	if missing {
		t.Empty.Remove(row)
	}
	t.Missing.set(row, missing)
}

// SetEmpty flags or unflags row as empty. Flagging clears the missing flag.
func (t *Tracker) SetEmpty(row int, empty bool) {
	if empty {
		t.Missing.Remove(row)
	}
	t.Empty.set(row, empty)
}

// ResetMissing replaces the missing set with rows. Each row loses its empty
// flag.
func (t *Tracker) ResetMissing(rows ...int) {
	t.Missing = NewSet()
	for _, r := range rows {
		t.SetMissing(r, true)
	}
}

// Flagged reports whether row carries either annotation.
func (t *Tracker) Flagged(row int) bool {
	return t.Missing.Contains(row) || t.Empty.Contains(row)
}

// Clear removes both annotations from row.
func (t *Tracker) Clear(row int) {
	t.Missing.Remove(row)
	t.Empty.Remove(row)
}

// Copy returns an independent tracker.
func (t *Tracker) Copy() *Tracker {
	return &Tracker{Missing: t.Missing.Copy(), Empty: t.Empty.Copy()}
}

// Swap exchanges both annotations of rows a and b.
func (t *Tracker) Swap(a, b int) {
	t.Missing.Swap(a, b)
	t.Empty.Swap(a, b)
}

// Subset is the positional subset of both sets.
func (t *Tracker) Subset(indices []int) *Tracker {
	return &Tracker{Missing: t.Missing.Subset(indices), Empty: t.Empty.Subset(indices)}
}

// SubsetRange is the contiguous subset of both sets.
func (t *Tracker) SubsetRange(pos, length int) *Tracker {
	return &Tracker{
		Missing: t.Missing.SubsetRange(pos, length),
		Empty:   t.Empty.SubsetRange(pos, length),
	}
}

// Reorder reorders both sets.
func (t *Tracker) Reorder(order map[int]int) *Tracker {
	return &Tracker{Missing: t.Missing.Reorder(order), Empty: t.Empty.Reorder(order)}
}

// ShiftUp shifts both sets.
func (t *Tracker) ShiftUp(from, to int) {
	t.Missing.ShiftUp(from, to)
	t.Empty.ShiftUp(from, to)
}

// Max returns the largest annotated row, or -1.
func (t *Tracker) Max() int {
	return max(t.Missing.Max(), t.Empty.Max())
}
