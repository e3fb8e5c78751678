package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/sparsetable/pkg/errors"
)

func TestStandard(t *testing.T) {
	p := Standard()

	assert.Equal(t, int8(0), p.Byte)
	assert.Equal(t, int32(0), p.Int)
	assert.Equal(t, float64(0), p.Double)
	assert.False(t, p.Bool)
	assert.Equal(t, rune(0), p.Char)
	assert.Equal(t, "", p.String)
	assert.Equal(t, []byte{0}, p.Bytes)
	assert.Equal(t, []rune{0}, p.Chars)
	assert.Nil(t, p.Object)
	assert.NoError(t, p.Validate())
}

func TestArrayDefaultsAreCopies(t *testing.T) {
	p := Standard()

	b := p.DefaultBytes()
	b[0] = 'x'
	c := p.DefaultChars()
	c[0] = 'y'

	assert.Equal(t, []byte{0}, p.Bytes)
	assert.Equal(t, []rune{0}, p.Chars)
}

func TestCloneIsIndependent(t *testing.T) {
	p := Standard()
	q := p.Clone()
	q.Bytes[0] = 7

	assert.Equal(t, byte(0), p.Bytes[0])
	assert.False(t, p.Equal(q))
	assert.True(t, p.Equal(p.Clone()))
}

func TestValidate(t *testing.T) {
	p := Standard()
	p.Chars = nil

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
