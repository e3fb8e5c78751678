// Package coerce converts arbitrary input values to the native representations
// of sparse columns.
//
// Every target applies the same precedence:
//
//  1. nil yields the policy default of the target
//  2. []byte and []rune are decoded to text and parsed (array targets take them as is)
//  3. Go numeric kinds are narrowed or widened
//  4. Char yields its code point
//  5. bool yields 1 or 0
//  6. anything else is stringified and parsed
//
// Float to integer conversion truncates toward zero, saturates at the bounds
// of the target (of int32 for the narrower targets) and maps NaN to 0. Integer
// narrowing wraps.
package coerce

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/ajitpratap0/sparsetable/pkg/defaults"
	"github.com/ajitpratap0/sparsetable/pkg/errors"
)

// Char is a single character. Plain rune and int32 values are numbers; wrap a
// rune in Char to have it treated as text.
type Char rune

// Target names used in conversion errors.
const (
	TargetByte   = "BYTE"
	TargetShort  = "SHORT"
	TargetInt    = "INTEGER"
	TargetLong   = "LONG"
	TargetFloat  = "FLOAT"
	TargetDouble = "DOUBLE"
)

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// narrowing describes one numeric target.
type narrowing[T number] struct {
	name      string
	bits      int // precision of the text parse
	fromInt   func(int64) T
	fromFloat func(float64) T
}

var (
	byteTarget = narrowing[int8]{TargetByte, 32,
		func(i int64) int8 { return int8(i) },
		func(f float64) int8 { return int8(floatToInt32(f)) }}
	shortTarget = narrowing[int16]{TargetShort, 32,
		func(i int64) int16 { return int16(i) },
		func(f float64) int16 { return int16(floatToInt32(f)) }}
	intTarget = narrowing[int32]{TargetInt, 32,
		func(i int64) int32 { return int32(i) },
		floatToInt32}
	longTarget = narrowing[int64]{TargetLong, 64,
		func(i int64) int64 { return i },
		floatToInt64}
	floatTarget = narrowing[float32]{TargetFloat, 32,
		func(i int64) float32 { return float32(i) },
		func(f float64) float32 { return float32(f) }}
	doubleTarget = narrowing[float64]{TargetDouble, 64,
		func(i int64) float64 { return float64(i) },
		func(f float64) float64 { return f }}
)

func floatToInt32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

func floatToInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// numeric unpacks any Go numeric kind.
func numeric(v any) (i int64, f float64, isFloat, ok bool) {
	switch x := v.(type) {
	case int:
		return int64(x), 0, false, true
	case int8:
		return int64(x), 0, false, true
	case int16:
		return int64(x), 0, false, true
	case int32:
		return int64(x), 0, false, true
	case int64:
		return x, 0, false, true
	case uint:
		return int64(x), 0, false, true
	case uint8:
		return int64(x), 0, false, true
	case uint16:
		return int64(x), 0, false, true
	case uint32:
		return int64(x), 0, false, true
	case uint64:
		return int64(x), 0, false, true
	case float32:
		return 0, float64(x), true, true
	case float64:
		return 0, x, true, true
	}
	return 0, 0, false, false
}

func toNumber[T number](v any, def T, t narrowing[T]) (T, error) {
	switch x := v.(type) {
	case nil:
		return def, nil
	case []byte:
		return parseAs(v, string(x), t)
	case []rune:
		return parseAs(v, string(x), t)
	case Char:
		return t.fromInt(int64(x)), nil
	case bool:
		if x {
			return t.fromInt(1), nil
		}
		return t.fromInt(0), nil
	}
	if i, f, isFloat, ok := numeric(v); ok {
		if isFloat {
			return t.fromFloat(f), nil
		}
		return t.fromInt(i), nil
	}
	return parseAs(v, stringify(v), t)
}

func parseAs[T number](input any, s string, t narrowing[T]) (T, error) {
	f, err := parseFloat(s, t.bits)
	if err != nil {
		var zero T
		return zero, errors.Conversion(input, t.name, err)
	}
	return t.fromFloat(f), nil
}

// parseFloat parses trimmed text; out-of-range input yields ±Inf rather than
// an error.
func parseFloat(s string, bits int) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), bits)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}

// stringify renders a value outside the dispatch table as text.
func stringify(v any) string {
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// ToByte converts v to a signed 8-bit value.
func ToByte(v any, p defaults.Policy) (int8, error) { return toNumber(v, p.Byte, byteTarget) }

// ToShort converts v to a 16-bit value.
func ToShort(v any, p defaults.Policy) (int16, error) { return toNumber(v, p.Short, shortTarget) }

// ToInt converts v to a 32-bit value.
func ToInt(v any, p defaults.Policy) (int32, error) { return toNumber(v, p.Int, intTarget) }

// ToLong converts v to a 64-bit value.
func ToLong(v any, p defaults.Policy) (int64, error) { return toNumber(v, p.Long, longTarget) }

// ToFloat converts v to a 32-bit float.
func ToFloat(v any, p defaults.Policy) (float32, error) { return toNumber(v, p.Float, floatTarget) }

// ToDouble converts v to a 64-bit float.
func ToDouble(v any, p defaults.Policy) (float64, error) { return toNumber(v, p.Double, doubleTarget) }

// IsNumericText reports whether s parses as a number.
func IsNumericText(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// ToBool converts v to a boolean. Numbers are true when non-zero, characters
// when 't' or 'T', and text when it equals "true" ignoring case.
func ToBool(v any, p defaults.Policy) bool {
	switch x := v.(type) {
	case nil:
		return p.Bool
	case bool:
		return x
	case Char:
		return x == 't' || x == 'T'
	}
	if i, f, isFloat, ok := numeric(v); ok {
		if isFloat {
			return f != 0
		}
		return i != 0
	}
	return strings.EqualFold(ToString(v, p), "true")
}

// ToChar converts v to a single character: the code point of a number, or
// the first character of the value's text.
func ToChar(v any, p defaults.Policy) rune {
	switch x := v.(type) {
	case nil:
		return p.Char
	case Char:
		return rune(x)
	case []rune:
		if len(x) == 0 {
			return p.Char
		}
		return x[0]
	}
	if i, f, isFloat, ok := numeric(v); ok {
		if isFloat {
			return floatToInt32(f)
		}
		return rune(i)
	}
	for _, r := range ToString(v, p) {
		return r
	}
	return p.Char
}

// ToString renders v as text. Integers are base 10 and floats use the
// shortest representation that round-trips.
func ToString(v any, p defaults.Policy) string {
	switch x := v.(type) {
	case nil:
		return p.String
	case string:
		return x
	case []byte:
		return string(x)
	case []rune:
		return string(x)
	case Char:
		return string(rune(x))
	case bool:
		return strconv.FormatBool(x)
	case float32:
		return FormatFloat32(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x)
	}
	if i, _, _, ok := numeric(v); ok {
		return strconv.FormatInt(i, 10)
	}
	return stringify(v)
}

// FormatFloat32 renders f with the shortest 'g' representation.
func FormatFloat32(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// ToByteArray converts v to bytes. A single int8 becomes a one-element array;
// everything else is encoded as its text.
func ToByteArray(v any, p defaults.Policy) []byte {
	switch x := v.(type) {
	case nil:
		return p.DefaultBytes()
	case []byte:
		return x
	case int8:
		return []byte{byte(x)}
	}
	return []byte(ToString(v, p))
}

// ToCharArray converts v to characters, decoding byte arrays as UTF-8.
func ToCharArray(v any, p defaults.Policy) []rune {
	switch x := v.(type) {
	case nil:
		return p.DefaultChars()
	case []rune:
		return x
	}
	return []rune(ToString(v, p))
}
