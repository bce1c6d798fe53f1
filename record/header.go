package record

import (
	"fmt"
	"io"

	"github.com/frclib-go/datalog/endian"
	"github.com/frclib-go/datalog/errs"
)

var engine = endian.GetLittleEndianEngine()

// Header is the WPILOG file header: magic marker, format version and an
// opaque extra-header string the codec never reinterprets.
type Header struct {
	Magic [6]byte
	Major uint8
	Minor uint8
	Extra string
}

// NewHeader returns a header for the version this package writes, carrying
// the given extra-header string.
func NewHeader(extra string) Header {
	h := Header{Major: VersionMajor, Minor: VersionMinor, Extra: extra}
	copy(h.Magic[:], Magic)

	return h
}

// ValidMagic reports whether the header carries the WPILOG magic bytes.
func (h Header) ValidMagic() bool {
	return string(h.Magic[:]) == Magic
}

// Append appends the on-disk encoding of the header to dst: magic, version
// (minor byte then major byte), 4-byte little-endian extra-header length,
// extra-header bytes.
func (h Header) Append(dst []byte) []byte {
	dst = append(dst, h.Magic[:]...)
	dst = append(dst, h.Minor, h.Major)
	dst = engine.AppendUint32(dst, uint32(len(h.Extra))) //nolint:gosec
	dst = append(dst, h.Extra...)

	return dst
}

// ReadHeader reads and parses a file header from r. It fails with a format
// error when the stream ends inside the header; magic and version
// validation is left to the caller so it can be relaxed by configuration.
func ReadHeader(r io.Reader) (Header, error) {
	var fixed [FixedHeaderSize]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return Header{}, fmt.Errorf("%w: %w", errs.ErrTruncatedHeader, err)
	}

	var h Header
	copy(h.Magic[:], fixed[:6])
	h.Minor = fixed[6]
	h.Major = fixed[7]

	extraLen := engine.Uint32(fixed[8:12])
	if extraLen > 0 {
		extra := make([]byte, extraLen)
		if _, err := io.ReadFull(r, extra); err != nil {
			return Header{}, fmt.Errorf("%w: extra header: %w", errs.ErrTruncatedHeader, err)
		}
		h.Extra = string(extra)
	}

	return h, nil
}
