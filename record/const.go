package record

// File-level constants.
const (
	// Magic is the 6-byte literal at offset 0 of every WPILOG file.
	Magic = "WPILOG"

	// VersionMajor and VersionMinor identify the format version this
	// package writes. On disk the version is stored minor byte first.
	VersionMajor = 1
	VersionMinor = 0

	// FixedHeaderSize is the size of the header before the variable-length
	// extra header: magic (6) + version (2) + extra-header length (4).
	FixedHeaderSize = 12
)

// Record-level constants.
const (
	// ControlEntryID is the entry id reserved for control records. Data
	// records never use it.
	ControlEntryID = 0

	// Control byte bit layout (bit 0 = LSB):
	// bits 0-1 entry-id width minus one, bits 2-3 payload-size width minus
	// one, bits 4-6 timestamp width minus one, bit 7 reserved (zero on
	// write, ignored on read).
	idWidthMask        = 0b0000_0011
	sizeWidthMask      = 0b0000_1100
	timestampWidthMask = 0b0111_0000
	sizeWidthShift     = 2
	timestampShift     = 4

	// MaxIDWidth and MaxSizeWidth bound the 2-bit width fields; entry ids
	// and payload sizes are 32-bit. Timestamps are 64-bit.
	MaxIDWidth        = 4
	MaxSizeWidth      = 4
	MaxTimestampWidth = 8
)

// Control record discriminants, the first payload byte of every record on
// ControlEntryID.
const (
	ControlStart       = 0
	ControlFinish      = 1
	ControlSetMetadata = 2
)
