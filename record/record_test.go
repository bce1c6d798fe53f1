package record

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/frclib-go/datalog/encoding"
	"github.com/frclib-go/datalog/errs"
)

// TestRecordRoundTrip verifies framing round trips across width boundaries
// for all three header integers.
func TestRecordRoundTrip(t *testing.T) {
	ids := []uint32{0, 1, 0xFF, 0x100, 0xFFFF, 0x1_0000, math.MaxUint32}
	timestamps := []uint64{0, 5, 0xFF, 0x100, 0xFFFF_FFFF, 0x1_0000_0000, math.MaxUint64}
	payloads := [][]byte{nil, {0x42}, bytes.Repeat([]byte{0xAB}, 300)}

	for _, id := range ids {
		for _, ts := range timestamps {
			for _, payload := range payloads {
				rec := Record{ID: id, Timestamp: ts, Payload: payload}

				buf, err := Append(nil, rec)
				require.NoError(t, err)

				got, err := Read(bytes.NewReader(buf))
				require.NoError(t, err)
				require.Equal(t, id, got.ID)
				require.Equal(t, ts, got.Timestamp)
				require.Equal(t, len(payload), len(got.Payload))
				require.True(t, bytes.Equal(payload, got.Payload))
			}
		}
	}
}

// TestAppendChoosesMinimalWidths verifies the control byte always declares
// the minimum width for each header integer.
func TestAppendChoosesMinimalWidths(t *testing.T) {
	cases := []struct {
		id      uint32
		ts      uint64
		payload int
	}{
		{0, 0, 0},
		{1, 5, 1},
		{0xFF, 0xFF, 0xFF},
		{0x100, 0x100, 0x100},
		{math.MaxUint32, math.MaxUint64, 0x1_0000},
	}

	for _, tc := range cases {
		rec := Record{ID: tc.id, Timestamp: tc.ts, Payload: make([]byte, tc.payload)}
		buf, err := Append(nil, rec)
		require.NoError(t, err)

		flag := Flag(buf[0])
		require.Equal(t, encoding.Width(uint64(tc.id)), flag.IDWidth(), "id %#x", tc.id)
		require.Equal(t, encoding.Width(uint64(tc.payload)), flag.SizeWidth(), "size %d", tc.payload)
		require.Equal(t, encoding.Width(tc.ts), flag.TimestampWidth(), "ts %#x", tc.ts)
		require.Len(t, buf, 1+flag.HeaderLen()+tc.payload)
	}
}

// TestReadCleanEOF verifies an empty stream ends with io.EOF, not a format
// error.
func TestReadCleanEOF(t *testing.T) {
	_, err := Read(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
	require.NotErrorIs(t, err, errs.ErrFormat)
}

// TestReadTruncated verifies a stream ending inside a record is a
// truncation format error, at every cut point.
func TestReadTruncated(t *testing.T) {
	rec := Record{ID: 7, Timestamp: 0x1234, Payload: []byte("hello world")}
	buf, err := Append(nil, rec)
	require.NoError(t, err)

	for cut := 1; cut < len(buf); cut++ {
		_, err := Read(bytes.NewReader(buf[:cut]))
		require.ErrorIs(t, err, errs.ErrTruncatedRecord, "cut at %d", cut)
		require.ErrorIs(t, err, errs.ErrFormat)
	}
}

// TestReadOverdeclaredPayload verifies a declared payload size past end of
// stream is a truncation error.
func TestReadOverdeclaredPayload(t *testing.T) {
	// 1-byte id, 1-byte size, 1-byte ts; size claims 200 bytes, none follow.
	buf := []byte{byte(MakeFlag(1, 1, 1)), 1, 200, 0}

	_, err := Read(bytes.NewReader(buf))
	require.ErrorIs(t, err, errs.ErrTruncatedRecord)
}

// TestReadIgnoresReservedBit verifies a nonzero reserved bit does not
// affect parsing.
func TestReadIgnoresReservedBit(t *testing.T) {
	rec := Record{ID: 3, Timestamp: 9, Payload: []byte{0xAA}}
	buf, err := Append(nil, rec)
	require.NoError(t, err)

	buf[0] |= 0x80

	got, err := Read(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
	require.Equal(t, rec.Timestamp, got.Timestamp)
	require.Equal(t, rec.Payload, got.Payload)
}

// TestReadSequential verifies multiple records parse back-to-back from one
// stream.
func TestReadSequential(t *testing.T) {
	recs := []Record{
		{ID: 0, Timestamp: 1, Payload: []byte{ControlFinish, 9, 0, 0, 0}},
		{ID: 1, Timestamp: 5, Payload: []byte{10, 0, 0, 0, 0, 0, 0, 0}},
		{ID: 1, Timestamp: 25, Payload: []byte{20, 0, 0, 0, 0, 0, 0, 0}},
	}

	var buf []byte
	var err error
	for _, rec := range recs {
		buf, err = Append(buf, rec)
		require.NoError(t, err)
	}

	r := bytes.NewReader(buf)
	for i, want := range recs {
		got, err := Read(r)
		require.NoError(t, err, "record %d", i)
		require.Equal(t, want.ID, got.ID)
		require.Equal(t, want.Timestamp, got.Timestamp)
		require.Equal(t, want.Payload, got.Payload)
	}

	_, err = Read(r)
	require.ErrorIs(t, err, io.EOF)
}
