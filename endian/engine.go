// Package endian provides byte order utilities for binary encoding and decoding.
//
// The WPILOG format is little-endian throughout, so this package exposes a
// single engine combining ByteOrder and AppendByteOrder from encoding/binary
// into one interface. The append methods avoid the temporary-buffer copy of
// plain ByteOrder writes, which matters on the record encoding hot path.
//
// All functions and methods are safe for concurrent use; the returned
// engine is immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations. It is satisfied by binary.LittleEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. This is the only
// byte order the WPILOG format uses.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
