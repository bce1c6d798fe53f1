package wpilog

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/frclib-go/datalog/errs"
	"github.com/frclib-go/datalog/format"
	"github.com/frclib-go/datalog/internal/options"
	"github.com/frclib-go/datalog/record"
	"github.com/frclib-go/datalog/value"
)

// Event is one decoded record from the log: a StartEvent, MetadataEvent or
// FinishEvent for control records, or a DataEvent for data records.
type Event interface {
	// Time returns the record's timestamp in microseconds.
	Time() uint64
}

// StartEvent reports an entry coming live.
type StartEvent struct {
	Entry     Entry
	Timestamp uint64
}

// MetadataEvent reports a live entry's metadata being replaced.
type MetadataEvent struct {
	EntryID   uint32
	Metadata  string
	Timestamp uint64
}

// FinishEvent reports an entry being retired.
type FinishEvent struct {
	EntryID   uint32
	Timestamp uint64
}

// DataEvent carries one timestamped value, with the entry name and type
// resolved against the registry state at this point of the file. Payload
// holds the raw payload bytes; when the payload could not be decoded
// against the declared type, Value degrades to raw bytes and Next reports
// the decode error alongside the event.
type DataEvent struct {
	EntryID   uint32
	Name      string
	Type      string
	Timestamp uint64
	Value     value.Value
	Payload   []byte
}

func (e StartEvent) Time() uint64    { return e.Timestamp }
func (e MetadataEvent) Time() uint64 { return e.Timestamp }
func (e FinishEvent) Time() uint64   { return e.Timestamp }
func (e DataEvent) Time() uint64     { return e.Timestamp }

// TimestampedValue pairs a decoded value with its record timestamp.
type TimestampedValue struct {
	Timestamp uint64
	Value     value.Value
}

// ReaderOption configures a Reader at construction time.
type ReaderOption = options.Option[*Reader]

// WithMagicValidation controls whether NewReader rejects a file that does
// not begin with the WPILOG magic bytes. Enabled by default.
func WithMagicValidation(enabled bool) ReaderOption {
	return options.NoError(func(r *Reader) {
		r.checkMagic = enabled
	})
}

// WithVersionValidation controls whether NewReader rejects files with an
// unsupported major version. Enabled by default; minor version differences
// are always accepted.
func WithVersionValidation(enabled bool) ReaderOption {
	return options.NoError(func(r *Reader) {
		r.checkVersion = enabled
	})
}

// Reader decodes a WPILOG byte stream into a lazy, sequential, single-pass
// sequence of events. It never seeks: each Next call consumes exactly one
// physical record. Wrap the source in a bufio.Reader when it is not
// already buffered.
//
// Error classes follow the format's taxonomy:
//   - format errors (bad magic or version, truncated record, malformed
//     control payload) are fatal: Next returns the error and every later
//     call returns it again;
//   - protocol errors (control records or data records referencing entries
//     that are not live) are recoverable: Next returns a nil or partial
//     event with the error and the stream continues;
//   - value shape errors poison only the offending record: Next returns
//     the DataEvent with its raw payload plus the decode error.
type Reader struct {
	src    io.Reader
	header record.Header
	reg    replayRegistry

	checkMagic   bool
	checkVersion bool
	sticky       error
}

// NewReader validates the file header of src and prepares a Reader. The
// stream position is left at the first record.
func NewReader(src io.Reader, opts ...ReaderOption) (*Reader, error) {
	r := &Reader{
		src:          src,
		reg:          newReplayRegistry(),
		checkMagic:   true,
		checkVersion: true,
	}

	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	header, err := record.ReadHeader(src)
	if err != nil {
		return nil, err
	}
	if r.checkMagic && !header.ValidMagic() {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidMagic, header.Magic)
	}
	if r.checkVersion && header.Major != record.VersionMajor {
		return nil, fmt.Errorf("%w: %d.%d", errs.ErrUnsupportedVersion, header.Major, header.Minor)
	}
	r.header = header

	return r, nil
}

// Version returns the file's format version.
func (r *Reader) Version() (major, minor uint8) {
	return r.header.Major, r.header.Minor
}

// ExtraHeader returns the file's opaque extra-header string.
func (r *Reader) ExtraHeader() string {
	return r.header.Extra
}

// Entry returns a copy of the live entry with the given id, reflecting the
// registry state after the last Next call.
func (r *Reader) Entry(id uint32) (Entry, bool) {
	e, ok := r.reg.Live(id)
	if !ok {
		return Entry{}, false
	}

	return *e, true
}

// Next decodes the next record. It returns io.EOF when the stream ends
// cleanly. See the Reader doc for how the three error classes behave; an
// event and an error may be returned together.
func (r *Reader) Next() (Event, error) {
	if r.sticky != nil {
		return nil, r.sticky
	}

	rec, err := record.Read(r.src)
	if err != nil {
		// io.EOF and format errors both end the sequence.
		r.sticky = err
		return nil, err
	}

	if rec.IsControl() {
		ctrl, err := record.ParseControl(rec.Payload)
		if err != nil {
			r.sticky = err
			return nil, err
		}

		// Protocol violations leave the registry untouched and the
		// reader usable.
		return r.reg.apply(ctrl, rec.Timestamp)
	}

	ev := DataEvent{
		EntryID:   rec.ID,
		Timestamp: rec.Timestamp,
		Payload:   rec.Payload,
	}

	e, ok := r.reg.Live(rec.ID)
	if !ok {
		ev.Value = value.Raw(rec.Payload)
		return ev, fmt.Errorf("%w: data record for id %d", errs.ErrEntryNotFound, rec.ID)
	}

	ev.Name = e.Name
	ev.Type = e.Type

	v, err := value.DecodeKind(format.KindForType(e.Type), rec.Payload)
	if err != nil {
		ev.Value = value.Raw(rec.Payload)
		return ev, err
	}
	ev.Value = v

	return ev, nil
}

// All returns an iterator over the remaining events. Clean end of stream
// stops the iteration without yielding io.EOF; every other error is
// yielded with its event (which may be nil), and iteration stops after a
// fatal format error.
func (r *Reader) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(ev, err) {
				return
			}
			if err != nil && errors.Is(err, errs.ErrFormat) {
				return
			}
		}
	}
}

// Filter restricts which timestamps ReadEntry yields.
type Filter func(timestamp uint64) bool

// After keeps values with timestamps strictly after ts.
func After(ts uint64) Filter {
	return func(t uint64) bool { return t > ts }
}

// Before keeps values with timestamps strictly before ts.
func Before(ts uint64) Filter {
	return func(t uint64) bool { return t < ts }
}

// ReadEntry consumes the remaining stream and yields the values of data
// records whose live entry name matches name, in file order, across
// however many distinct ids the name is started under over the file's
// lifetime. Recoverable record errors are skipped; a fatal format error is
// yielded with a zero value and ends the iteration.
func (r *Reader) ReadEntry(name string, filters ...Filter) iter.Seq2[TimestampedValue, error] {
	return func(yield func(TimestampedValue, error) bool) {
		for ev, err := range r.All() {
			if err != nil {
				if errors.Is(err, errs.ErrFormat) {
					yield(TimestampedValue{}, err)
					return
				}

				continue
			}

			data, ok := ev.(DataEvent)
			if !ok || data.Name != name {
				continue
			}
			if !keep(data.Timestamp, filters) {
				continue
			}

			tv := TimestampedValue{Timestamp: data.Timestamp, Value: data.Value}
			if !yield(tv, nil) {
				return
			}
		}
	}
}

func keep(timestamp uint64, filters []Filter) bool {
	for _, f := range filters {
		if !f(timestamp) {
			return false
		}
	}

	return true
}
