package record

// Flag is the 1-byte control byte at the start of every record. It packs
// the byte widths of the three header integers that follow it. Widths are
// stored as width-1, so a zero flag means 1-byte id, 1-byte size, 1-byte
// timestamp.
type Flag uint8

// MakeFlag packs the three header widths into a control byte. Widths must
// already be in range (id and size 1-4, timestamp 1-8); the writer derives
// them from encoding.Width so they always are. The reserved bit is zero.
func MakeFlag(idWidth, sizeWidth, timestampWidth int) Flag {
	return Flag(uint8(idWidth-1)&0b11 | //nolint:gosec
		(uint8(sizeWidth-1)&0b11)<<sizeWidthShift | //nolint:gosec
		(uint8(timestampWidth-1)&0b111)<<timestampShift) //nolint:gosec
}

// IDWidth returns the entry id width in bytes (1-4).
func (f Flag) IDWidth() int {
	return int(f&idWidthMask) + 1
}

// SizeWidth returns the payload size width in bytes (1-4).
func (f Flag) SizeWidth() int {
	return int(f&sizeWidthMask>>sizeWidthShift) + 1
}

// TimestampWidth returns the timestamp width in bytes (1-8).
func (f Flag) TimestampWidth() int {
	return int(f&timestampWidthMask>>timestampShift) + 1
}

// HeaderLen returns the number of header bytes following the control byte:
// entry id, payload size and timestamp at their declared widths.
func (f Flag) HeaderLen() int {
	return f.IDWidth() + f.SizeWidth() + f.TimestampWidth()
}
