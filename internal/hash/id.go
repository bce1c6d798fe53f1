// Package hash provides identifier hashing for entry type strings.
package hash

import "github.com/cespare/xxhash/v2"

// TypeID computes the xxHash64 of an entry type string. The writer stores
// it per entry so type checks on the append hot path are a single integer
// compare instead of a string compare.
func TypeID(entryType string) uint64 {
	return xxhash.Sum64String(entryType)
}
