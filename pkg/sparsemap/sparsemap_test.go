package sparsemap

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(rows map[int]string) *Map[string] {
	m := New[string]()
	for r, v := range rows {
		m.Put(r, v)
	}
	return m
}

func TestMapBasics(t *testing.T) {
	m := New[int32]()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, -1, m.MaxKey())

	_, ok := m.Get(3)
	assert.False(t, ok)

	m.Put(7, 70)
	m.Put(3, 30)
	m.Put(7, 71)

	v, ok := m.Get(7)
	require.True(t, ok)
	assert.Equal(t, int32(71), v)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 7, m.MaxKey())
	assert.Equal(t, []int{3, 7}, m.Keys())
	assert.True(t, m.ContainsKey(3))
	assert.False(t, m.ContainsKey(4))

	old, ok := m.Remove(3)
	assert.True(t, ok)
	assert.Equal(t, int32(30), old)
	_, ok = m.Remove(3)
	assert.False(t, ok)
	assert.Equal(t, []int{7}, m.Keys())
}

func TestRanges(t *testing.T) {
	m := fill(map[int]string{1: "d", 3: "b", 5: "a", 9: "c"})

	t.Run("keys inclusive", func(t *testing.T) {
		assert.Equal(t, []int{3, 5}, m.KeysInRange(2, 5))
		assert.Equal(t, []int{1, 3, 5, 9}, m.KeysInRange(0, 100))
	})

	t.Run("values sorted", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "d"}, m.ValuesInRange(1, 5, cmp.Compare[string]))
	})

	t.Run("end before begin", func(t *testing.T) {
		keys := m.KeysInRange(5, 3)
		require.NotNil(t, keys)
		assert.Empty(t, keys)

		values := m.ValuesInRange(5, 3, cmp.Compare[string])
		require.NotNil(t, values)
		assert.Len(t, values, 0)
	})
}

func TestSubsetRekeys(t *testing.T) {
	m := fill(map[int]string{2: "a", 4: "b", 6: "c", 7: "d"})

	sub := m.Subset(4, 3)
	assert.Equal(t, []int{0, 2}, sub.Keys())
	v, _ := sub.Get(2)
	assert.Equal(t, "c", v)

	assert.Equal(t, 0, m.Subset(0, 0).Len())
}

func TestReorder(t *testing.T) {
	m := fill(map[int]string{0: "x", 1: "y", 2: "z", 5: "keep"})

	// 0 <- 2, 2 <- 0, 1 <- 4 (absent source)
	out := m.Reorder(map[int]int{0: 2, 2: 0, 1: 4})

	got := map[int]string{}
	out.Ascend(func(row int, v string) bool {
		got[row] = v
		return true
	})
	assert.Equal(t, map[int]string{0: "z", 1: "y", 2: "x", 5: "keep"}, got)

	// source untouched
	v, _ := m.Get(0)
	assert.Equal(t, "x", v)
}

func TestCopyIsIndependent(t *testing.T) {
	m := New[[]byte]()
	m.Put(1, []byte("ab"))

	shallow := m.Copy()
	shallow.Put(2, []byte("c"))
	assert.False(t, m.ContainsKey(2))

	deep := m.CopyFunc(func(b []byte) []byte { return append([]byte(nil), b...) })
	v, _ := deep.Get(1)
	v[0] = 'z'
	orig, _ := m.Get(1)
	assert.Equal(t, []byte("ab"), orig)
}

func TestAscendStops(t *testing.T) {
	m := fill(map[int]string{1: "a", 2: "b", 3: "c"})

	var seen []int
	m.Ascend(func(row int, _ string) bool {
		seen = append(seen, row)
		return row < 2
	})
	assert.Equal(t, []int{1, 2}, seen)
}
