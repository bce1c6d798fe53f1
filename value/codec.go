package value

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/frclib-go/datalog/endian"
	"github.com/frclib-go/datalog/errs"
	"github.com/frclib-go/datalog/format"
)

var engine = endian.GetLittleEndianEngine()

// PayloadSize returns the number of payload bytes Append will produce for
// v, letting callers size a destination buffer up front.
func PayloadSize(v Value) int {
	switch v.Kind {
	case format.KindRaw:
		return len(v.Bytes)
	case format.KindBoolean:
		return format.BooleanSize
	case format.KindInt64:
		return format.Int64Size
	case format.KindFloat:
		return format.FloatSize
	case format.KindDouble:
		return format.DoubleSize
	case format.KindString:
		return len(v.Str)
	case format.KindBooleanArray:
		return len(v.Bools) * format.BooleanSize
	case format.KindInt64Array:
		return len(v.Ints) * format.Int64Size
	case format.KindFloatArray:
		return len(v.Floats) * format.FloatSize
	case format.KindDoubleArray:
		return len(v.Doubles) * format.DoubleSize
	case format.KindStringArray:
		size := 4
		for _, s := range v.Strs {
			size += 4 + len(s)
		}

		return size
	default:
		return 0
	}
}

// Append appends the byte-exact payload encoding of v to dst.
//
// Encoding rules (all integers little-endian):
//   - boolean: 1 byte, always 0 or 1
//   - int64: 8 bytes two's-complement
//   - float/double: 4/8 bytes IEEE-754
//   - string: the UTF-8 bytes, no length prefix
//   - raw: the bytes as-is
//   - primitive arrays: flat concatenation of fixed-width elements
//   - string[]: 4-byte element count, then per element a 4-byte byte
//     length and the UTF-8 bytes
func Append(dst []byte, v Value) []byte {
	switch v.Kind {
	case format.KindRaw:
		dst = append(dst, v.Bytes...)
	case format.KindBoolean:
		dst = appendBool(dst, v.Bool)
	case format.KindInt64:
		dst = engine.AppendUint64(dst, uint64(v.Int))
	case format.KindFloat:
		dst = engine.AppendUint32(dst, math.Float32bits(v.Float))
	case format.KindDouble:
		dst = engine.AppendUint64(dst, math.Float64bits(v.Double))
	case format.KindString:
		dst = append(dst, v.Str...)
	case format.KindBooleanArray:
		for _, b := range v.Bools {
			dst = appendBool(dst, b)
		}
	case format.KindInt64Array:
		for _, i := range v.Ints {
			dst = engine.AppendUint64(dst, uint64(i))
		}
	case format.KindFloatArray:
		for _, f := range v.Floats {
			dst = engine.AppendUint32(dst, math.Float32bits(f))
		}
	case format.KindDoubleArray:
		for _, d := range v.Doubles {
			dst = engine.AppendUint64(dst, math.Float64bits(d))
		}
	case format.KindStringArray:
		dst = engine.AppendUint32(dst, uint32(len(v.Strs))) //nolint:gosec
		for _, s := range v.Strs {
			dst = engine.AppendUint32(dst, uint32(len(s))) //nolint:gosec
			dst = append(dst, s...)
		}
	}

	return dst
}

// Decode decodes payload as a value of the given entry type string. Type
// strings outside the built-in set decode as raw bytes.
//
// The returned value may alias payload; callers that retain values across
// records must copy. Errors wrap errs.ErrValueShape and are local to this
// payload: the surrounding record and the rest of the stream stay valid.
func Decode(entryType string, payload []byte) (Value, error) {
	return DecodeKind(format.KindForType(entryType), payload)
}

// DecodeKind is Decode for a pre-resolved value kind.
func DecodeKind(kind format.ValueKind, payload []byte) (Value, error) {
	switch kind {
	case format.KindRaw:
		return Raw(payload), nil

	case format.KindBoolean:
		if len(payload) != format.BooleanSize {
			return Value{}, fmt.Errorf("%w: boolean wants 1 byte, got %d",
				errs.ErrValueSizeMismatch, len(payload))
		}

		return Boolean(payload[0] != 0), nil

	case format.KindInt64:
		if len(payload) != format.Int64Size {
			return Value{}, fmt.Errorf("%w: int64 wants 8 bytes, got %d",
				errs.ErrValueSizeMismatch, len(payload))
		}

		return Int64(int64(engine.Uint64(payload))), nil //nolint:gosec

	case format.KindFloat:
		if len(payload) != format.FloatSize {
			return Value{}, fmt.Errorf("%w: float wants 4 bytes, got %d",
				errs.ErrValueSizeMismatch, len(payload))
		}

		return Float(math.Float32frombits(engine.Uint32(payload))), nil

	case format.KindDouble:
		if len(payload) != format.DoubleSize {
			return Value{}, fmt.Errorf("%w: double wants 8 bytes, got %d",
				errs.ErrValueSizeMismatch, len(payload))
		}

		return Double(math.Float64frombits(engine.Uint64(payload))), nil

	case format.KindString:
		if !utf8.Valid(payload) {
			return Value{}, fmt.Errorf("%w: string payload is not UTF-8", errs.ErrInvalidStringValue)
		}

		return String(string(payload)), nil

	case format.KindBooleanArray:
		bools := make([]bool, len(payload))
		for i, b := range payload {
			bools[i] = b != 0
		}

		return BooleanArray(bools), nil

	case format.KindInt64Array:
		if len(payload)%format.Int64Size != 0 {
			return Value{}, fmt.Errorf("%w: int64[] payload of %d bytes",
				errs.ErrElementSizeMismatch, len(payload))
		}

		ints := make([]int64, len(payload)/format.Int64Size)
		for i := range ints {
			ints[i] = int64(engine.Uint64(payload[i*format.Int64Size:])) //nolint:gosec
		}

		return Int64Array(ints), nil

	case format.KindFloatArray:
		if len(payload)%format.FloatSize != 0 {
			return Value{}, fmt.Errorf("%w: float[] payload of %d bytes",
				errs.ErrElementSizeMismatch, len(payload))
		}

		floats := make([]float32, len(payload)/format.FloatSize)
		for i := range floats {
			floats[i] = math.Float32frombits(engine.Uint32(payload[i*format.FloatSize:]))
		}

		return FloatArray(floats), nil

	case format.KindDoubleArray:
		if len(payload)%format.DoubleSize != 0 {
			return Value{}, fmt.Errorf("%w: double[] payload of %d bytes",
				errs.ErrElementSizeMismatch, len(payload))
		}

		doubles := make([]float64, len(payload)/format.DoubleSize)
		for i := range doubles {
			doubles[i] = math.Float64frombits(engine.Uint64(payload[i*format.DoubleSize:]))
		}

		return DoubleArray(doubles), nil

	case format.KindStringArray:
		return decodeStringArray(payload)

	default:
		return Raw(payload), nil
	}
}

func decodeStringArray(payload []byte) (Value, error) {
	if len(payload) < 4 {
		return Value{}, fmt.Errorf("%w: string[] payload too short for count",
			errs.ErrInvalidStringValue)
	}

	count := engine.Uint32(payload)
	rest := payload[4:]

	strs := make([]string, 0, min(int(count), len(rest)/4))
	for i := uint32(0); i < count; i++ {
		if len(rest) < 4 {
			return Value{}, fmt.Errorf("%w: string[] truncated at element %d length",
				errs.ErrInvalidStringValue, i)
		}

		strLen := int(engine.Uint32(rest))
		rest = rest[4:]
		if len(rest) < strLen {
			return Value{}, fmt.Errorf("%w: string[] truncated at element %d data",
				errs.ErrInvalidStringValue, i)
		}
		if !utf8.Valid(rest[:strLen]) {
			return Value{}, fmt.Errorf("%w: string[] element %d is not UTF-8",
				errs.ErrInvalidStringValue, i)
		}

		strs = append(strs, string(rest[:strLen]))
		rest = rest[strLen:]
	}

	if len(rest) != 0 {
		return Value{}, fmt.Errorf("%w: %d trailing bytes after string[] elements",
			errs.ErrInvalidStringValue, len(rest))
	}

	return StringArray(strs), nil
}

func appendBool(dst []byte, b bool) []byte {
	if b {
		return append(dst, 1)
	}

	return append(dst, 0)
}
