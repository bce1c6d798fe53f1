// Package encoding implements the low-level variable-width integer codec
// used by the WPILOG record framing.
//
// Integers are stored little-endian in the minimum number of bytes that
// represents their value (1-8). The byte count is not self-describing; it
// travels in the record's control byte, so the encoder takes the width
// explicitly and the decoder works on any slice of 1-8 bytes.
package encoding

import (
	"fmt"

	"github.com/frclib-go/datalog/errs"
)

// MaxWidth is the largest byte width a framed integer can occupy.
const MaxWidth = 8

// Width returns the minimum number of bytes (1-8) needed to represent v.
// Record framing derives all three per-record field widths from it.
func Width(v uint64) int {
	switch {
	case v <= 0xFF:
		return 1
	case v <= 0xFFFF:
		return 2
	case v <= 0xFF_FFFF:
		return 3
	case v <= 0xFFFF_FFFF:
		return 4
	case v <= 0xFF_FFFF_FFFF:
		return 5
	case v <= 0xFFFF_FFFF_FFFF:
		return 6
	case v <= 0xFF_FFFF_FFFF_FFFF:
		return 7
	default:
		return 8
	}
}

// AppendUint appends v to dst as exactly width little-endian bytes.
//
// Returns errs.ErrValueTooLarge when v does not fit in width bytes, and an
// error for widths outside 1-8.
func AppendUint(dst []byte, v uint64, width int) ([]byte, error) {
	if width < 1 || width > MaxWidth {
		return dst, fmt.Errorf("%w: invalid byte width %d", errs.ErrValueTooLarge, width)
	}
	if Width(v) > width {
		return dst, fmt.Errorf("%w: %d needs %d bytes, requested %d",
			errs.ErrValueTooLarge, v, Width(v), width)
	}

	for i := range width {
		dst = append(dst, byte(v>>(8*i)))
	}

	return dst, nil
}

// Uint decodes a little-endian unsigned integer from b, zero-extending to
// 64 bits. It accepts any slice of 1-8 bytes and never fails for such
// input; slices longer than 8 bytes use only the first 8.
func Uint(b []byte) uint64 {
	if len(b) > MaxWidth {
		b = b[:MaxWidth]
	}

	var v uint64
	for i, c := range b {
		v |= uint64(c) << (8 * i)
	}

	return v
}
