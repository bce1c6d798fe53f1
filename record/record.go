// Package record implements the physical layer of the WPILOG format: the
// file header and the variable-width record envelope. Payload bytes are
// opaque at this layer.
package record

import (
	"fmt"
	"io"

	"github.com/frclib-go/datalog/encoding"
	"github.com/frclib-go/datalog/errs"
)

// Record is one physical record: an entry id, a microsecond timestamp and
// an opaque payload. Entry id 0 marks a control record.
type Record struct {
	ID        uint32
	Timestamp uint64
	Payload   []byte
}

// IsControl reports whether the record lives on the reserved control entry
// id.
func (r Record) IsControl() bool {
	return r.ID == ControlEntryID
}

// Append appends the framed encoding of rec to dst. The widths of the
// entry id, payload size and timestamp are each chosen as the minimum that
// represents the value, independently per record; the choice is a pure
// function of the three magnitudes via encoding.Width.
func Append(dst []byte, rec Record) ([]byte, error) {
	size := len(rec.Payload)
	if uint64(size) > 0xFFFF_FFFF {
		return dst, fmt.Errorf("%w: payload of %d bytes exceeds u32 size field",
			errs.ErrValueTooLarge, size)
	}

	idWidth := encoding.Width(uint64(rec.ID))
	sizeWidth := encoding.Width(uint64(size))
	tsWidth := encoding.Width(rec.Timestamp)

	dst = append(dst, byte(MakeFlag(idWidth, sizeWidth, tsWidth)))

	var err error
	if dst, err = encoding.AppendUint(dst, uint64(rec.ID), idWidth); err != nil {
		return dst, err
	}
	if dst, err = encoding.AppendUint(dst, uint64(size), sizeWidth); err != nil {
		return dst, err
	}
	if dst, err = encoding.AppendUint(dst, rec.Timestamp, tsWidth); err != nil {
		return dst, err
	}

	return append(dst, rec.Payload...), nil
}

// Read reads one record from r. It returns io.EOF when the stream ends
// cleanly before a record starts, and errs.ErrTruncatedRecord when the
// stream ends inside one (including a declared payload size that reads
// past end of stream).
//
// The declared widths in the control byte are trusted; the reserved bit is
// ignored. The returned payload is freshly allocated.
func Read(r io.Reader) (Record, error) {
	var flagByte [1]byte
	if _, err := io.ReadFull(r, flagByte[:]); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}

		return Record{}, fmt.Errorf("%w: control byte: %w", errs.ErrTruncatedRecord, err)
	}

	flag := Flag(flagByte[0])

	header := make([]byte, flag.HeaderLen())
	if _, err := io.ReadFull(r, header); err != nil {
		return Record{}, fmt.Errorf("%w: record header: %w", errs.ErrTruncatedRecord, err)
	}

	idEnd := flag.IDWidth()
	sizeEnd := idEnd + flag.SizeWidth()

	rec := Record{
		ID:        uint32(encoding.Uint(header[:idEnd])), //nolint:gosec
		Timestamp: encoding.Uint(header[sizeEnd:]),
	}

	size := encoding.Uint(header[idEnd:sizeEnd])
	if size > 0 {
		rec.Payload = make([]byte, size)
		if _, err := io.ReadFull(r, rec.Payload); err != nil {
			return Record{}, fmt.Errorf("%w: payload of %d bytes: %w",
				errs.ErrTruncatedRecord, size, err)
		}
	}

	return rec, nil
}
