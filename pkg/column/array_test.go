package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/sparsetable/pkg/coerce"
	"github.com/ajitpratap0/sparsetable/pkg/defaults"
	"github.com/ajitpratap0/sparsetable/pkg/testutil"
)

func customPolicy() defaults.Policy {
	p := defaults.Standard()
	p.Byte = -2
	p.Int = -4
	p.Double = -7
	p.Bool = true
	p.Char = '?'
	p.String = "n/a"
	p.Bytes = []byte("--")
	p.Chars = []rune("..")
	return p
}

func TestArrayDefaults(t *testing.T) {
	t.Run("char array", func(t *testing.T) {
		col := NewCharArrayColumn(WithPolicy(customPolicy()))
		testutil.RequireRowState(t, col, 3, false, false, false)

		assert.Nil(t, col.GetChars(3))
		assert.Nil(t, col.GetObject(3))
		assert.Equal(t, []byte("--"), col.GetBytes(3))
		assert.Equal(t, "n/a", col.GetString(3))
		assert.Equal(t, int8(-2), col.GetByte(3))
		assert.Equal(t, int32(-4), col.GetInt(3))
		assert.Equal(t, -7.0, col.GetDouble(3))
		assert.True(t, col.GetBool(3))
		assert.Equal(t, '?', col.GetChar(3))
	})

	t.Run("byte array", func(t *testing.T) {
		col := NewByteArrayColumn(WithPolicy(customPolicy()))
		assert.Nil(t, col.GetBytes(0))
		assert.Nil(t, col.GetObject(0))
		assert.Equal(t, []rune(".."), col.GetChars(0))
	})

	t.Run("defaults are copies", func(t *testing.T) {
		col := NewByteArrayColumn()
		col.GetChars(0)[0] = 'z'
		assert.Equal(t, []rune{0}, col.GetChars(0))
	})
}

func TestArrayRoundTrip(t *testing.T) {
	p := customPolicy()

	t.Run("text", func(t *testing.T) {
		col := NewCharArrayColumn(WithPolicy(p))
		require.NoError(t, col.SetString("hello", 2))

		testutil.RequireRowState(t, col, 2, true, false, false)
		assert.Equal(t, []rune("hello"), col.GetChars(2))
		assert.Equal(t, []rune("hello"), col.GetObject(2))
		assert.Equal(t, []byte("hello"), col.GetBytes(2))
		assert.Equal(t, "hello", col.GetString(2))
		assert.Equal(t, 'h', col.GetChar(2))
		assert.Equal(t, int32(-4), col.GetInt(2))
		assert.False(t, col.GetBool(2))
		assert.False(t, col.IsDataNumeric(2))
	})

	t.Run("numeric text", func(t *testing.T) {
		col := NewCharArrayColumn(WithPolicy(p))
		col.SetInt(42, 0)
		col.SetDouble(2.5, 1)

		assert.Equal(t, "42", col.GetString(0))
		assert.Equal(t, int32(42), col.GetInt(0))
		assert.Equal(t, int8(42), col.GetByte(0))
		assert.Equal(t, 2.5, col.GetDouble(1))
		assert.Equal(t, int32(2), col.GetInt(1))
		assert.True(t, col.IsDataNumeric(0))
		assert.True(t, col.IsNumeric())

		require.NoError(t, col.SetString("abc", 2))
		assert.False(t, col.IsNumeric())
		col.SetValueToMissing(true, 2)
		assert.True(t, col.IsNumeric())
	})

	t.Run("bool text", func(t *testing.T) {
		col := NewCharArrayColumn(WithPolicy(p))
		require.NoError(t, col.SetString("TRUE", 0))
		col.SetBool(false, 1)
		assert.True(t, col.GetBool(0))
		assert.False(t, col.GetBool(1))
		assert.Equal(t, "false", col.GetString(1))
	})

	t.Run("scalar inputs", func(t *testing.T) {
		bytesCol := NewByteArrayColumn()
		bytesCol.SetByte(7, 0)
		bytesCol.SetChar('x', 1)
		assert.Equal(t, []byte{7}, bytesCol.GetBytes(0))
		assert.Equal(t, []byte("x"), bytesCol.GetBytes(1))

		chars := NewCharArrayColumn()
		chars.SetByte(7, 0)
		chars.SetChar('x', 1)
		chars.SetShort(-3, 2)
		assert.Equal(t, "7", chars.GetString(0))
		assert.Equal(t, "x", chars.GetString(1))
		assert.Equal(t, "-3", chars.GetString(2))
	})

	t.Run("cross representation", func(t *testing.T) {
		col := NewByteArrayColumn()
		require.NoError(t, col.SetChars([]rune("héllo"), 0))
		assert.Equal(t, []byte("héllo"), col.GetBytes(0))
		assert.Equal(t, []rune("héllo"), col.GetChars(0))

		require.NoError(t, col.SetObject(coerce.Char('q'), 1))
		assert.Equal(t, "q", col.GetString(1))
	})
}

func TestArrayInsertRow(t *testing.T) {
	t.Run("single occupant", func(t *testing.T) {
		col := NewCharArrayColumn()
		require.NoError(t, col.SetString("a", 5))
		require.NoError(t, col.InsertRow("b", 5))

		assert.Equal(t, "b", col.GetString(5))
		assert.Equal(t, "a", col.GetString(6))
		assert.Equal(t, []int{5, 6}, col.Indices())
	})

	t.Run("chain", func(t *testing.T) {
		col := NewCharArrayColumn()
		require.NoError(t, col.SetString("a", 5))
		require.NoError(t, col.SetString("b", 6))
		require.NoError(t, col.InsertRow("c", 5))

		assert.Equal(t, "c", col.GetString(5))
		assert.Equal(t, "a", col.GetString(6))
		assert.Equal(t, "b", col.GetString(7))
		assert.Equal(t, 8, col.NumRows())
	})

	t.Run("annotations move with the chain", func(t *testing.T) {
		col := NewCharArrayColumn()
		require.NoError(t, col.SetString("a", 5))
		col.SetValueToEmpty(true, 5)
		col.SetValueToMissing(true, 6)
		require.NoError(t, col.InsertRow("b", 5))

		testutil.RequireRowState(t, col, 5, true, false, false)
		testutil.RequireRowState(t, col, 6, true, false, true)
		testutil.RequireRowState(t, col, 7, false, true, false)
		assert.Equal(t, "a", col.GetString(6))
	})

	t.Run("free row", func(t *testing.T) {
		col := NewByteArrayColumn()
		require.NoError(t, col.InsertRow([]byte("z"), 3))
		assert.Equal(t, []int{3}, col.Indices())
		assert.Equal(t, 4, col.NumRows())
	})
}

func TestArrayCompare(t *testing.T) {
	col := NewCharArrayColumnFrom([][]rune{[]rune("a"), []rune("b"), []rune("ab")})

	assert.Negative(t, col.CompareRows(0, 1))
	assert.Negative(t, col.CompareRows(0, 2))
	assert.Positive(t, col.CompareRows(1, 2))
	assert.Equal(t, -1, col.CompareRows(5, 0))

	c, err := col.CompareValue("b", 0)
	require.NoError(t, err)
	assert.Positive(t, c)

	c, err = col.CompareValue(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	assert.Equal(t, [][]rune{[]rune("a"), []rune("ab"), []rune("b")}, col.ValuesInRange(0, 2))
}

func TestArrayCopyIsDeep(t *testing.T) {
	col := NewByteArrayColumnFrom([][]byte{[]byte("abc")})
	cp := col.Copy()

	col.GetObject(0).([]byte)[0] = 'z'
	assert.Equal(t, []byte("zbc"), col.GetBytes(0))
	assert.Equal(t, []byte("abc"), cp.GetBytes(0))
}

func TestArrayInternal(t *testing.T) {
	col := NewByteArrayColumn()
	require.NoError(t, col.SetString("x", 2))

	dense := col.Internal().([][]byte)
	require.Len(t, dense, 3)
	assert.Equal(t, []byte{0}, dense[0])
	assert.Equal(t, []byte("x"), dense[2])

	dense[0][0] = 9
	assert.Equal(t, []byte{0}, dense[1])
	assert.Equal(t, []byte{0}, col.Policy().Bytes)
}

func TestArraySnapshot(t *testing.T) {
	col := NewCharArrayColumn(WithPolicy(customPolicy()))
	require.NoError(t, col.SetString("hi", 1))

	s := col.Snapshot()
	assert.Equal(t, TypeCharArray, s.Type)
	assert.True(t, s.Nominal)
	assert.Equal(t, []string{"..", "hi"}, s.Values)
	assert.Nil(t, s.Min)
}
