package wpilog

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/frclib-go/datalog/errs"
	"github.com/frclib-go/datalog/format"
	"github.com/frclib-go/datalog/internal/options"
	"github.com/frclib-go/datalog/internal/pool"
	"github.com/frclib-go/datalog/record"
	"github.com/frclib-go/datalog/value"
)

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*Writer]

// WithExtraHeader sets the opaque extra-header string written into the
// file header. By convention this is a JSON document; the codec does not
// reinterpret it.
func WithExtraHeader(extra string) WriterOption {
	return options.NoError(func(w *Writer) {
		w.extraHeader = extra
	})
}

// WithClock sets the clock used for the timestamps of control records the
// writer emits on its own (Start, Finish, SetMetadata). The default clock
// reports microseconds since the writer package was initialized, matching
// the format's uptime-style timestamps.
func WithClock(now func() uint64) WriterOption {
	return options.New(func(w *Writer) error {
		if now == nil {
			return fmt.Errorf("datalog: nil clock")
		}
		w.now = now

		return nil
	})
}

var processStart = time.Now()

func defaultClock() uint64 {
	return uint64(time.Since(processStart).Microseconds()) //nolint:gosec
}

// Writer appends WPILOG records to a byte sink. It owns the sink
// exclusively: the registry is mutated without locking, and no concurrent
// writer to the same stream is supported.
//
// Every mutating call appends exactly one record to the sink before
// returning; ordering across calls is the file order. Close flushes
// buffered bytes but does not finish live entries: a file that ends with
// live entries is valid.
type Writer struct {
	sink *bufio.Writer
	reg  writerRegistry
	now  func() uint64

	extraHeader string
	closed      bool
}

// NewWriter creates a Writer over sink and writes the file header. The
// writer buffers sink writes; call Flush or Close to drain the buffer.
func NewWriter(sink io.Writer, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		sink: bufio.NewWriter(sink),
		reg:  newWriterRegistry(),
		now:  defaultClock,
	}

	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	header := record.NewHeader(w.extraHeader).Append(nil)
	if _, err := w.sink.Write(header); err != nil {
		return nil, fmt.Errorf("write file header: %w", err)
	}

	return w, nil
}

// GetOrCreateEntry returns the id of the live entry named name, creating
// it when necessary. Creating an entry allocates the next unused id and
// appends a Start record. The call is idempotent for a live name with the
// same type; a live name under a different type is a protocol error.
func (w *Writer) GetOrCreateEntry(name, entryType, metadata string) (uint32, error) {
	if w.closed {
		return 0, errs.ErrWriterClosed
	}

	timestamp := w.now()
	e, created, err := w.reg.getOrCreate(name, entryType, metadata, timestamp)
	if err != nil {
		return 0, err
	}
	if !created {
		return e.ID, nil
	}

	payload := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(payload)
	payload.B = record.AppendStart(payload.B, e.ID, name, entryType, metadata)

	if err := w.writeRecord(record.ControlEntryID, timestamp, payload.B); err != nil {
		return 0, err
	}

	return e.ID, nil
}

// Append writes one timestamped value to a live entry. The value's shape
// must agree with the entry's declared type; entries with types outside
// the built-in set (struct and similar) take raw values.
func (w *Writer) Append(id uint32, v value.Value, timestamp uint64) error {
	if w.closed {
		return errs.ErrWriterClosed
	}

	e, ok := w.reg.Live(id)
	if !ok {
		return fmt.Errorf("%w: append to id %d", errs.ErrEntryNotFound, id)
	}
	if kind := format.KindForType(e.Type); kind != v.Kind {
		return fmt.Errorf("%w: entry %q is %q, value is %q",
			errs.ErrEntryTypeMismatch, e.Name, e.Type, v.TypeString())
	}

	payload := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(payload)
	payload.B = value.Append(payload.B, v)

	return w.writeRecord(id, timestamp, payload.B)
}

// SetMetadata replaces the metadata of a live entry wholesale and appends
// a SetMetadata record.
func (w *Writer) SetMetadata(id uint32, metadata string) error {
	if w.closed {
		return errs.ErrWriterClosed
	}

	if _, err := w.reg.setMetadata(id, metadata); err != nil {
		return err
	}

	payload := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(payload)
	payload.B = record.AppendSetMetadata(payload.B, id, metadata)

	return w.writeRecord(record.ControlEntryID, w.now(), payload.B)
}

// FinishEntry retires a live entry and appends a Finish record. The id and
// name become available for reuse by a later GetOrCreateEntry.
func (w *Writer) FinishEntry(id uint32) error {
	if w.closed {
		return errs.ErrWriterClosed
	}

	timestamp := w.now()
	if _, err := w.reg.finish(id, timestamp); err != nil {
		return err
	}

	payload := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(payload)
	payload.B = record.AppendFinish(payload.B, id)

	return w.writeRecord(record.ControlEntryID, timestamp, payload.B)
}

// Entry returns a copy of the live entry with the given id.
func (w *Writer) Entry(id uint32) (Entry, bool) {
	e, ok := w.reg.Live(id)
	if !ok {
		return Entry{}, false
	}

	return *e, true
}

// Flush drains buffered bytes to the sink.
func (w *Writer) Flush() error {
	if err := w.sink.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}

// Close flushes and marks the writer closed. It does not finish live
// entries; entries still live at close remain un-finished in the file,
// which is valid. Further calls fail with errs.ErrWriterClosed.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	return w.Flush()
}

func (w *Writer) writeRecord(id uint32, timestamp uint64, payload []byte) error {
	framed := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(framed)

	var err error
	framed.B, err = record.Append(framed.B, record.Record{
		ID:        id,
		Timestamp: timestamp,
		Payload:   payload,
	})
	if err != nil {
		return err
	}

	if _, err := w.sink.Write(framed.B); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	return nil
}
