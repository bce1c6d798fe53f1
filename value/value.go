// Package value defines the decoded payload variants of WPILOG data
// records and their byte-exact payload codec.
package value

import (
	"math"
	"slices"

	"github.com/frclib-go/datalog/format"
)

// Value is one decoded data record payload. Kind selects which field is
// populated; all other fields are zero. Construct values with the typed
// constructors below rather than filling the struct directly.
type Value struct {
	Kind format.ValueKind

	Bool    bool
	Int     int64
	Float   float32
	Double  float64
	Str     string
	Bytes   []byte
	Bools   []bool
	Ints    []int64
	Floats  []float32
	Doubles []float64
	Strs    []string
}

// Raw returns a raw-bytes value. The slice is not copied.
func Raw(b []byte) Value { return Value{Kind: format.KindRaw, Bytes: b} }

// Boolean returns a boolean value.
func Boolean(b bool) Value { return Value{Kind: format.KindBoolean, Bool: b} }

// Int64 returns a 64-bit integer value.
func Int64(i int64) Value { return Value{Kind: format.KindInt64, Int: i} }

// Float returns a 32-bit float value.
func Float(f float32) Value { return Value{Kind: format.KindFloat, Float: f} }

// Double returns a 64-bit float value.
func Double(d float64) Value { return Value{Kind: format.KindDouble, Double: d} }

// String returns a string value.
func String(s string) Value { return Value{Kind: format.KindString, Str: s} }

// BooleanArray returns a boolean array value. The slice is not copied.
func BooleanArray(b []bool) Value { return Value{Kind: format.KindBooleanArray, Bools: b} }

// Int64Array returns a 64-bit integer array value. The slice is not copied.
func Int64Array(i []int64) Value { return Value{Kind: format.KindInt64Array, Ints: i} }

// FloatArray returns a 32-bit float array value. The slice is not copied.
func FloatArray(f []float32) Value { return Value{Kind: format.KindFloatArray, Floats: f} }

// DoubleArray returns a 64-bit float array value. The slice is not copied.
func DoubleArray(d []float64) Value { return Value{Kind: format.KindDoubleArray, Doubles: d} }

// StringArray returns a string array value. The slice is not copied.
func StringArray(s []string) Value { return Value{Kind: format.KindStringArray, Strs: s} }

// TypeString returns the entry type string this value encodes as, e.g.
// "int64" or "double[]".
func (v Value) TypeString() string {
	return v.Kind.String()
}

// Equal reports whether two values have the same kind and contents.
// Floating-point fields compare by bit pattern, so NaN payloads round-trip
// as equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case format.KindRaw:
		return slices.Equal(v.Bytes, o.Bytes)
	case format.KindBoolean:
		return v.Bool == o.Bool
	case format.KindInt64:
		return v.Int == o.Int
	case format.KindFloat:
		return math.Float32bits(v.Float) == math.Float32bits(o.Float)
	case format.KindDouble:
		return math.Float64bits(v.Double) == math.Float64bits(o.Double)
	case format.KindString:
		return v.Str == o.Str
	case format.KindBooleanArray:
		return slices.Equal(v.Bools, o.Bools)
	case format.KindInt64Array:
		return slices.Equal(v.Ints, o.Ints)
	case format.KindFloatArray:
		return slices.EqualFunc(v.Floats, o.Floats, func(a, b float32) bool {
			return math.Float32bits(a) == math.Float32bits(b)
		})
	case format.KindDoubleArray:
		return slices.EqualFunc(v.Doubles, o.Doubles, func(a, b float64) bool {
			return math.Float64bits(a) == math.Float64bits(b)
		})
	case format.KindStringArray:
		return slices.Equal(v.Strs, o.Strs)
	default:
		return false
	}
}
