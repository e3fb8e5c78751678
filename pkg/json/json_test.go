package json

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Type   string  `json:"type"`
	Rows   int     `json:"rows"`
	Values []int32 `json:"values"`
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(snapshot{Type: "INTEGER", Rows: 2, Values: []int32{1, 2}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"INTEGER","rows":2,"values":[1,2]}`, string(data))

	var back snapshot
	require.NoError(t, Unmarshal(data, &back))
	assert.Equal(t, 2, back.Rows)

	indented, err := MarshalIndent(back, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n  \"rows\": 2")
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, map[string]string{"label": "<a>"}, false))
	assert.Equal(t, "{\"label\":\"<a>\"}\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, []int{1}, true))
	assert.Equal(t, "[\n  1\n]\n", buf.String())

	buf.Reset()
	assert.Error(t, Encode(&buf, math.Inf(1), false))
	assert.Zero(t, buf.Len())
}

func TestStreamingEncoder(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		var buf bytes.Buffer
		se := NewStreamingEncoder(&buf, true, false)
		require.NoError(t, se.Encode(1))
		require.NoError(t, se.Encode("two"))
		require.NoError(t, se.Close())
		assert.JSONEq(t, `[1,"two"]`, buf.String())
	})

	t.Run("empty array", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewStreamingEncoder(&buf, true, false).Close())
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("lines", func(t *testing.T) {
		var buf bytes.Buffer
		se := NewStreamingEncoder(&buf, false, false)
		require.NoError(t, se.Encode(map[string]int{"a": 1}))
		require.NoError(t, se.Encode(map[string]int{"a": 2}))
		require.NoError(t, se.Close())
		assert.Equal(t, "{\"a\":1}\n{\"a\":2}\n", buf.String())
	})

	t.Run("write failure sticks", func(t *testing.T) {
		se := NewStreamingEncoder(failingWriter{}, true, false)
		assert.Error(t, se.Encode(1))
		assert.Error(t, se.Close())
	})
}

func TestBufferPool(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("x")
	PutBuffer(buf)
	assert.Zero(t, GetBuffer().Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }
