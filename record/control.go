package record

import (
	"fmt"
	"unicode/utf8"

	"github.com/frclib-go/datalog/errs"
)

// Control is a parsed control record payload. Kind is one of ControlStart,
// ControlFinish or ControlSetMetadata; the string fields are populated only
// for the kinds that carry them.
type Control struct {
	Kind     uint8
	EntryID  uint32
	Name     string
	Type     string
	Metadata string
}

// AppendStart appends a Start control payload: discriminant, 4-byte LE
// entry id, then length-prefixed name, type and metadata strings.
func AppendStart(dst []byte, entryID uint32, name, entryType, metadata string) []byte {
	dst = append(dst, ControlStart)
	dst = engine.AppendUint32(dst, entryID)
	dst = appendLenString(dst, name)
	dst = appendLenString(dst, entryType)

	return appendLenString(dst, metadata)
}

// AppendFinish appends a Finish control payload: discriminant and 4-byte LE
// entry id.
func AppendFinish(dst []byte, entryID uint32) []byte {
	dst = append(dst, ControlFinish)

	return engine.AppendUint32(dst, entryID)
}

// AppendSetMetadata appends a SetMetadata control payload: discriminant,
// 4-byte LE entry id, then the length-prefixed metadata string.
func AppendSetMetadata(dst []byte, entryID uint32, metadata string) []byte {
	dst = append(dst, ControlSetMetadata)
	dst = engine.AppendUint32(dst, entryID)

	return appendLenString(dst, metadata)
}

// StartPayloadSize returns the payload size AppendStart will produce.
func StartPayloadSize(name, entryType, metadata string) int {
	return 1 + 4 + 4 + len(name) + 4 + len(entryType) + 4 + len(metadata)
}

// ParseControl parses a control record payload. Every byte of the payload
// must be consumed; strings must be valid UTF-8. All errors are format
// errors: a malformed control record poisons the registry replay.
func ParseControl(payload []byte) (Control, error) {
	if len(payload) < 5 {
		return Control{}, fmt.Errorf("%w: %d bytes is too short for discriminant and entry id",
			errs.ErrInvalidControlRecord, len(payload))
	}

	ctrl := Control{
		Kind:    payload[0],
		EntryID: engine.Uint32(payload[1:5]),
	}
	rest := payload[5:]

	var err error
	switch ctrl.Kind {
	case ControlStart:
		if ctrl.Name, rest, err = takeLenString(rest, "entry name"); err != nil {
			return Control{}, err
		}
		if ctrl.Type, rest, err = takeLenString(rest, "entry type"); err != nil {
			return Control{}, err
		}
		if ctrl.Metadata, rest, err = takeLenString(rest, "entry metadata"); err != nil {
			return Control{}, err
		}

	case ControlFinish:
		// No body beyond the entry id.

	case ControlSetMetadata:
		if ctrl.Metadata, rest, err = takeLenString(rest, "entry metadata"); err != nil {
			return Control{}, err
		}

	default:
		return Control{}, fmt.Errorf("%w: discriminant %d", errs.ErrUnknownControlType, ctrl.Kind)
	}

	if len(rest) != 0 {
		return Control{}, fmt.Errorf("%w: %d trailing bytes",
			errs.ErrInvalidControlRecord, len(rest))
	}

	return ctrl, nil
}

func appendLenString(dst []byte, s string) []byte {
	dst = engine.AppendUint32(dst, uint32(len(s))) //nolint:gosec

	return append(dst, s...)
}

func takeLenString(b []byte, field string) (string, []byte, error) {
	if len(b) < 4 {
		return "", nil, fmt.Errorf("%w: truncated %s length", errs.ErrInvalidControlRecord, field)
	}

	strLen := int(engine.Uint32(b))
	b = b[4:]
	if len(b) < strLen {
		return "", nil, fmt.Errorf("%w: %s wants %d bytes, %d left",
			errs.ErrInvalidControlRecord, field, strLen, len(b))
	}

	raw := b[:strLen]
	if !utf8.Valid(raw) {
		return "", nil, fmt.Errorf("%w: %s", errs.ErrInvalidUTF8, field)
	}

	return string(raw), b[strLen:], nil
}
