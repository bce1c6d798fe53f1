// Package errs defines the sentinel errors shared by all datalog packages.
//
// Errors fall into three categories, each with its own category sentinel:
//
//   - ErrFormat: the byte stream itself is malformed (bad magic, bad
//     version, truncated record, invalid UTF-8 in a control string). Once a
//     reader hits a format error the stream cannot be trusted past that
//     point and reading stops.
//   - ErrProtocol: the bytes are well formed but violate the control
//     protocol (operations on unknown or finished entries, name or id
//     conflicts). Protocol errors are recoverable on the read path; records
//     for other entries remain decodable.
//   - ErrValueShape: a single record's payload disagrees with its entry's
//     declared type. Local to that record.
//
// Concrete sentinels wrap their category, so callers can classify with
// errors.Is(err, errs.ErrFormat) and friends, or match the concrete
// sentinel for fine-grained handling.
package errs

import (
	"errors"
	"fmt"
)

// Category sentinels. Every concrete sentinel below wraps exactly one of
// these.
var (
	ErrFormat     = errors.New("datalog: format error")
	ErrProtocol   = errors.New("datalog: protocol error")
	ErrValueShape = errors.New("datalog: value shape error")
)

// Format errors.
var (
	// ErrInvalidMagic indicates the file does not begin with the WPILOG
	// magic bytes.
	ErrInvalidMagic = fmt.Errorf("%w: invalid magic bytes", ErrFormat)

	// ErrUnsupportedVersion indicates the file's format version is not
	// supported by this reader.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported format version", ErrFormat)

	// ErrTruncatedHeader indicates the stream ended inside the file header.
	ErrTruncatedHeader = fmt.Errorf("%w: truncated file header", ErrFormat)

	// ErrTruncatedRecord indicates the stream ended inside a record, or a
	// record's declared payload size reads past end of stream.
	ErrTruncatedRecord = fmt.Errorf("%w: truncated record", ErrFormat)

	// ErrInvalidControlRecord indicates a control record payload that is
	// too short or structurally malformed.
	ErrInvalidControlRecord = fmt.Errorf("%w: malformed control record", ErrFormat)

	// ErrUnknownControlType indicates a control record with an unknown
	// discriminant byte.
	ErrUnknownControlType = fmt.Errorf("%w: unknown control record type", ErrFormat)

	// ErrInvalidUTF8 indicates a string field that is not valid UTF-8.
	ErrInvalidUTF8 = fmt.Errorf("%w: invalid UTF-8 in string field", ErrFormat)

	// ErrValueTooLarge indicates an integer that does not fit the byte
	// width requested for it.
	ErrValueTooLarge = fmt.Errorf("%w: value does not fit requested width", ErrFormat)
)

// Protocol errors.
var (
	// ErrEntryNotFound indicates an operation referencing an entry id that
	// has never been started or has already been finished.
	ErrEntryNotFound = fmt.Errorf("%w: no live entry with this id", ErrProtocol)

	// ErrEntryIDInUse indicates a Start record for an id that is still
	// live.
	ErrEntryIDInUse = fmt.Errorf("%w: entry id already live", ErrProtocol)

	// ErrEntryNameInUse indicates a Start record whose name collides with
	// another live entry.
	ErrEntryNameInUse = fmt.Errorf("%w: entry name already live", ErrProtocol)

	// ErrEntryTypeMismatch indicates a live entry requested again under a
	// different type, or a value whose type disagrees with the entry's
	// declared type.
	ErrEntryTypeMismatch = fmt.Errorf("%w: entry type mismatch", ErrProtocol)

	// ErrWriterClosed indicates an operation on a closed writer.
	ErrWriterClosed = fmt.Errorf("%w: writer is closed", ErrProtocol)
)

// Value shape errors.
var (
	// ErrElementSizeMismatch indicates an array payload whose length is not
	// a multiple of the element size.
	ErrElementSizeMismatch = fmt.Errorf("%w: payload not a multiple of element size", ErrValueShape)

	// ErrValueSizeMismatch indicates a fixed-width value payload whose
	// length does not match the value's size.
	ErrValueSizeMismatch = fmt.Errorf("%w: payload size does not match value", ErrValueShape)

	// ErrInvalidStringValue indicates a string value payload that is not
	// valid UTF-8 or has a corrupt length prefix.
	ErrInvalidStringValue = fmt.Errorf("%w: malformed string value", ErrValueShape)
)
