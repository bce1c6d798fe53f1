// Package wpilog implements the public read and write paths of the WPILOG
// binary log format.
//
// A WPILOG file multiplexes many named, typed data streams ("entries")
// into one append-only sequence of timestamped records. Control records on
// the reserved entry id 0 start, retire and annotate entries; all other
// records carry one value for a live entry.
//
// Writer registers entries, emits the control records for them and appends
// timestamped data records to a byte sink. Reader replays a byte source as
// a lazy, single-pass sequence of decoded events, rebuilding the entry
// registry from the control records it observes.
//
// Neither type is safe for concurrent use; a writer assumes exclusive
// ownership of its sink and a reader of its source. File and path handling
// are caller concerns: both ends operate on plain io interfaces.
package wpilog
