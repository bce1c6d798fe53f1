package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frclib-go/datalog/errs"
	"github.com/frclib-go/datalog/format"
)

// TestRoundTrip verifies decode(encode(v)) == v for every variant over
// boundary values: empty strings and arrays, min/max int64, NaN and
// infinity floats, zero-length raw.
func TestRoundTrip(t *testing.T) {
	values := []Value{
		Raw(nil),
		Raw([]byte{}),
		Raw([]byte{0x00, 0xFF, 0x7F}),
		Boolean(false),
		Boolean(true),
		Int64(0),
		Int64(math.MinInt64),
		Int64(math.MaxInt64),
		Float(0),
		Float(float32(math.NaN())),
		Float(float32(math.Inf(1))),
		Float(float32(math.Inf(-1))),
		Float(math.SmallestNonzeroFloat32),
		Double(0),
		Double(math.NaN()),
		Double(math.Inf(1)),
		Double(math.Inf(-1)),
		Double(math.MaxFloat64),
		String(""),
		String("hello"),
		String("héllo wörld ☃"),
		BooleanArray(nil),
		BooleanArray([]bool{true, false, true}),
		Int64Array(nil),
		Int64Array([]int64{math.MinInt64, -1, 0, 1, math.MaxInt64}),
		FloatArray(nil),
		FloatArray([]float32{0, 1.5, float32(math.NaN())}),
		DoubleArray(nil),
		DoubleArray([]float64{math.Inf(-1), 0, math.Pi, math.NaN()}),
		StringArray(nil),
		StringArray([]string{}),
		StringArray([]string{""}),
		StringArray([]string{"a", "", "bc", "日本語"}),
	}

	for _, v := range values {
		payload := Append(nil, v)
		require.Len(t, payload, PayloadSize(v), "PayloadSize must match Append for %s", v.TypeString())

		decoded, err := Decode(v.TypeString(), payload)
		require.NoError(t, err, "decode %s", v.TypeString())
		require.True(t, v.Equal(decoded), "round trip %s: %+v != %+v", v.TypeString(), v, decoded)
	}
}

// TestDecodeBooleanNonzero verifies any nonzero byte decodes as true while
// the writer only ever emits 0 or 1.
func TestDecodeBooleanNonzero(t *testing.T) {
	require.Equal(t, []byte{1}, Append(nil, Boolean(true)))
	require.Equal(t, []byte{0}, Append(nil, Boolean(false)))

	for _, b := range []byte{0x01, 0x02, 0x80, 0xFF} {
		v, err := Decode(format.TypeBoolean, []byte{b})
		require.NoError(t, err)
		require.True(t, v.Bool, "byte %#x must decode as true", b)
	}

	v, err := Decode(format.TypeBoolean, []byte{0})
	require.NoError(t, err)
	require.False(t, v.Bool)
}

// TestDecodeScalarSizeMismatch verifies fixed-width scalars reject payloads
// of the wrong size.
func TestDecodeScalarSizeMismatch(t *testing.T) {
	cases := []struct {
		typ  string
		size int
	}{
		{format.TypeBoolean, 1},
		{format.TypeInt64, 8},
		{format.TypeFloat, 4},
		{format.TypeDouble, 8},
	}

	for _, tc := range cases {
		_, err := Decode(tc.typ, make([]byte, tc.size-1))
		require.ErrorIs(t, err, errs.ErrValueSizeMismatch, "%s short", tc.typ)
		require.ErrorIs(t, err, errs.ErrValueShape)

		_, err = Decode(tc.typ, make([]byte, tc.size+1))
		require.ErrorIs(t, err, errs.ErrValueSizeMismatch, "%s long", tc.typ)
	}
}

// TestDecodeArrayDivisibility verifies array payloads whose length is not a
// multiple of the element size fail with a value shape error.
func TestDecodeArrayDivisibility(t *testing.T) {
	cases := []struct {
		typ  string
		size int
	}{
		{format.TypeInt64Array, 3},
		{format.TypeInt64Array, 9},
		{format.TypeFloatArray, 2},
		{format.TypeDoubleArray, 12},
	}

	for _, tc := range cases {
		_, err := Decode(tc.typ, make([]byte, tc.size))
		require.ErrorIs(t, err, errs.ErrElementSizeMismatch, "%s with %d bytes", tc.typ, tc.size)
		require.ErrorIs(t, err, errs.ErrValueShape)
	}
}

// TestDecodeInvalidUTF8 verifies non-UTF-8 string payloads are rejected,
// not silently replaced.
func TestDecodeInvalidUTF8(t *testing.T) {
	_, err := Decode(format.TypeString, []byte{0xFF, 0xFE})
	require.ErrorIs(t, err, errs.ErrInvalidStringValue)

	// string[] with one invalid element
	payload := engine.AppendUint32(nil, 1)
	payload = engine.AppendUint32(payload, 2)
	payload = append(payload, 0xFF, 0xFE)
	_, err = Decode(format.TypeStringArray, payload)
	require.ErrorIs(t, err, errs.ErrInvalidStringValue)
}

// TestDecodeStringArrayMalformed verifies truncated counts, truncated
// elements and trailing bytes are rejected.
func TestDecodeStringArrayMalformed(t *testing.T) {
	// Too short for the element count.
	_, err := Decode(format.TypeStringArray, []byte{1, 0})
	require.ErrorIs(t, err, errs.ErrInvalidStringValue)

	// Count says 2 but only one element present.
	payload := engine.AppendUint32(nil, 2)
	payload = engine.AppendUint32(payload, 1)
	payload = append(payload, 'a')
	_, err = Decode(format.TypeStringArray, payload)
	require.ErrorIs(t, err, errs.ErrInvalidStringValue)

	// Element length reads past the payload.
	payload = engine.AppendUint32(nil, 1)
	payload = engine.AppendUint32(payload, 100)
	payload = append(payload, 'a')
	_, err = Decode(format.TypeStringArray, payload)
	require.ErrorIs(t, err, errs.ErrInvalidStringValue)

	// Trailing garbage after the declared elements.
	payload = engine.AppendUint32(nil, 1)
	payload = engine.AppendUint32(payload, 1)
	payload = append(payload, 'a', 'x')
	_, err = Decode(format.TypeStringArray, payload)
	require.ErrorIs(t, err, errs.ErrInvalidStringValue)
}

// TestDecodeStructTypeFallsBackToRaw verifies schema-typed entries decode
// to raw bytes for a collaborator to interpret.
func TestDecodeStructTypeFallsBackToRaw(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	v, err := Decode("struct:Pose2d", payload)
	require.NoError(t, err)
	require.Equal(t, format.KindRaw, v.Kind)
	require.Equal(t, payload, v.Bytes)
}

// TestEncodingIsLittleEndian pins the wire bytes of the scalar encodings.
func TestEncodingIsLittleEndian(t *testing.T) {
	require.Equal(t,
		[]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		Append(nil, Int64(0x0807060504030201)))

	// -1 is all ones in two's-complement.
	require.Equal(t,
		[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		Append(nil, Int64(-1)))

	// 1.0 as IEEE-754.
	require.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, Append(nil, Float(1.0)))
	require.Equal(t,
		[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F},
		Append(nil, Double(1.0)))

	// string[] layout: count, then length-prefixed bytes.
	require.Equal(t,
		[]byte{
			2, 0, 0, 0, // 2 elements
			1, 0, 0, 0, 'x', // "x"
			0, 0, 0, 0, // ""
		},
		Append(nil, StringArray([]string{"x", ""})))
}

// TestValueEqual covers kind mismatches and NaN bit equality.
func TestValueEqual(t *testing.T) {
	require.False(t, Int64(1).Equal(Double(1)))
	require.False(t, Int64(1).Equal(Int64(2)))
	require.True(t, Double(math.NaN()).Equal(Double(math.NaN())))
	require.False(t, Raw([]byte{1}).Equal(Raw([]byte{2})))
	require.True(t, Raw(nil).Equal(Raw([]byte{})))
}
