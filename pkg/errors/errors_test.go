package errors

import (
	stderrors "errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionCarriesDetails(t *testing.T) {
	_, cause := strconv.ParseFloat("nope", 32)
	err := Conversion("nope", "FLOAT", cause)

	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeConversion, err.Type)
	assert.Equal(t, "nope", err.Details["input"])
	assert.Equal(t, "FLOAT", err.Details["target"])
	assert.True(t, stderrors.Is(err, cause))
	assert.NotEmpty(t, err.Stack)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeInternal, "nothing"))
}

func TestWrapPreservesStack(t *testing.T) {
	inner := New(ErrorTypeValidation, "bad row")
	outer := Wrap(inner, ErrorTypeInternal, "swap failed")

	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, IsType(outer, ErrorTypeInternal))

	var target *Error
	require.True(t, As(outer.Unwrap(), &target))
	assert.Equal(t, ErrorTypeValidation, target.Type)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrorTypeNotFound, "unknown column type %q", "DATE")
	assert.Equal(t, `not_found: unknown column type "DATE"`, err.Error())
	assert.False(t, IsConversion(err))
}
