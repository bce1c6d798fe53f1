package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFlagPackUnpack verifies every legal width combination survives the
// bitfield round trip.
func TestFlagPackUnpack(t *testing.T) {
	for idW := 1; idW <= MaxIDWidth; idW++ {
		for sizeW := 1; sizeW <= MaxSizeWidth; sizeW++ {
			for tsW := 1; tsW <= MaxTimestampWidth; tsW++ {
				f := MakeFlag(idW, sizeW, tsW)

				require.Equal(t, idW, f.IDWidth())
				require.Equal(t, sizeW, f.SizeWidth())
				require.Equal(t, tsW, f.TimestampWidth())
				require.Equal(t, idW+sizeW+tsW, f.HeaderLen())
				require.Zero(t, byte(f)&0x80, "reserved bit must be zero")
			}
		}
	}
}

// TestFlagBitLayout pins the packed layout against hand-computed bytes.
func TestFlagBitLayout(t *testing.T) {
	// 1-byte id, 1-byte size, 1-byte timestamp.
	require.Equal(t, Flag(0x00), MakeFlag(1, 1, 1))
	// 4-byte id (0b11), 4-byte size (0b11<<2), 8-byte timestamp (0b111<<4).
	require.Equal(t, Flag(0b0111_1111), MakeFlag(4, 4, 8))
	// 2-byte id, 3-byte size, 5-byte timestamp.
	require.Equal(t, Flag(0b0100_1001), MakeFlag(2, 3, 5))
}

// TestFlagIgnoresReservedBit verifies a set reserved bit does not disturb
// the decoded widths.
func TestFlagIgnoresReservedBit(t *testing.T) {
	f := Flag(0x80 | byte(MakeFlag(2, 3, 5)))

	require.Equal(t, 2, f.IDWidth())
	require.Equal(t, 3, f.SizeWidth())
	require.Equal(t, 5, f.TimestampWidth())
}
