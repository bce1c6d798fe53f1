// Package format defines the entry type strings and value kinds of the
// WPILOG format.
package format

// ValueKind identifies one variant of the closed value set a data record
// payload can decode to.
type ValueKind uint8

const (
	KindRaw          ValueKind = iota + 1 // opaque bytes
	KindBoolean                           // 1 byte, 0 or nonzero
	KindInt64                             // 8-byte little-endian two's-complement
	KindFloat                             // 4-byte little-endian IEEE-754
	KindDouble                            // 8-byte little-endian IEEE-754
	KindString                            // whole payload as UTF-8
	KindBooleanArray                      // flat 1-byte booleans
	KindInt64Array                        // flat 8-byte integers
	KindFloatArray                        // flat 4-byte floats
	KindDoubleArray                       // flat 8-byte doubles
	KindStringArray                       // count-prefixed, length-prefixed UTF-8 strings
)

// Entry type strings as they appear in Start control records.
const (
	TypeRaw          = "raw"
	TypeBoolean      = "boolean"
	TypeInt64        = "int64"
	TypeFloat        = "float"
	TypeDouble       = "double"
	TypeString       = "string"
	TypeBooleanArray = "boolean[]"
	TypeInt64Array   = "int64[]"
	TypeFloatArray   = "float[]"
	TypeDoubleArray  = "double[]"
	TypeStringArray  = "string[]"
)

// Fixed element sizes in bytes for the flat array encodings.
const (
	BooleanSize = 1
	Int64Size   = 8
	FloatSize   = 4
	DoubleSize  = 8
)

func (k ValueKind) String() string {
	switch k {
	case KindRaw:
		return TypeRaw
	case KindBoolean:
		return TypeBoolean
	case KindInt64:
		return TypeInt64
	case KindFloat:
		return TypeFloat
	case KindDouble:
		return TypeDouble
	case KindString:
		return TypeString
	case KindBooleanArray:
		return TypeBooleanArray
	case KindInt64Array:
		return TypeInt64Array
	case KindFloatArray:
		return TypeFloatArray
	case KindDoubleArray:
		return TypeDoubleArray
	case KindStringArray:
		return TypeStringArray
	default:
		return "unknown"
	}
}

// KindForType maps an entry type string to the value kind its payloads
// decode to. Type strings outside the built-in set (for example
// "struct:Pose2d" or "proto:...") decode as raw bytes; interpreting their
// internal layout is a schema concern layered above this codec.
func KindForType(entryType string) ValueKind {
	switch entryType {
	case TypeRaw:
		return KindRaw
	case TypeBoolean:
		return KindBoolean
	case TypeInt64:
		return KindInt64
	case TypeFloat:
		return KindFloat
	case TypeDouble:
		return KindDouble
	case TypeString:
		return KindString
	case TypeBooleanArray:
		return KindBooleanArray
	case TypeInt64Array:
		return KindInt64Array
	case TypeFloatArray:
		return KindFloatArray
	case TypeDoubleArray:
		return KindDoubleArray
	case TypeStringArray:
		return KindStringArray
	default:
		return KindRaw
	}
}
