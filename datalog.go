// Package datalog reads and writes the WPILOG binary log format, a
// compact, append-only container for time-stamped telemetry values.
//
// A log file starts with a small header (magic, version, opaque extra
// header) followed by a sequence of variable-width records. Each record
// carries an entry id, a microsecond timestamp and a payload; control
// records on the reserved entry id 0 establish and retire the named,
// typed entries the data records belong to.
//
// # Writing
//
//	var buf bytes.Buffer
//	w, _ := datalog.NewWriter(&buf, wpilog.WithExtraHeader(`{"source":"sim"}`))
//
//	id, _ := w.GetOrCreateEntry("motor/speed", format.TypeDouble, "")
//	_ = w.Append(id, value.Double(0.5), 1000)
//	_ = w.Append(id, value.Double(0.75), 2000)
//	_ = w.FinishEntry(id)
//	_ = w.Close()
//
// # Reading
//
//	r, _ := datalog.NewReader(bytes.NewReader(buf.Bytes()))
//	for ev, err := range r.All() {
//	    if err != nil {
//	        // recoverable: skip; format errors end the iteration
//	        continue
//	    }
//	    if data, ok := ev.(wpilog.DataEvent); ok {
//	        fmt.Println(data.Name, data.Timestamp, data.Value)
//	    }
//	}
//
// For a single entry, Reader.ReadEntry projects the stream to that
// entry's values across id reuse.
//
// # Package structure
//
// This package provides convenience constructors around the wpilog
// package, which holds the Writer and Reader. The value package defines
// the decoded value variants, format the entry type strings, and record
// the physical framing layer. Lower-level building blocks live in
// encoding (variable-width integers) and endian.
package datalog

import (
	"io"

	"github.com/frclib-go/datalog/wpilog"
)

// NewWriter creates a log writer over sink and writes the file header.
//
// See wpilog.NewWriter for options such as wpilog.WithExtraHeader and
// wpilog.WithClock.
func NewWriter(sink io.Writer, opts ...wpilog.WriterOption) (*wpilog.Writer, error) {
	return wpilog.NewWriter(sink, opts...)
}

// NewReader validates the file header of src and creates a log reader
// positioned at the first record.
//
// See wpilog.NewReader for options such as wpilog.WithMagicValidation and
// wpilog.WithVersionValidation.
func NewReader(src io.Reader, opts ...wpilog.ReaderOption) (*wpilog.Reader, error) {
	return wpilog.NewReader(src, opts...)
}
