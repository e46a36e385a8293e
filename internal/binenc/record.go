package binenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf16"

	"fortio.org/safecast"
)

// RecordWriter packs typed fields into a destination buffer with a fixed,
// deterministic field order and little-endian byte order.
//
// A value that does not fit its declared width is a programming error, not a
// data error: the writer panics instead of silently truncating integers.
// Text fields are the exception; they are defined as truncate-or-pad.
type RecordWriter struct {
	buf *bytes.Buffer
}

func NewRecordWriter(buf *bytes.Buffer) *RecordWriter {
	return &RecordWriter{buf: buf}
}

func (w *RecordWriter) PutUint8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *RecordWriter) PutUint16(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	w.buf.Write(tmp[:])
}

func (w *RecordWriter) PutUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf.Write(tmp[:])
}

// PutUint writes v into width bytes (1, 2 or 4). Overflow panics.
func (w *RecordWriter) PutUint(v uint64, width int) {
	switch width {
	case 1:
		b, err := safecast.Conv[uint8](v)
		if err != nil {
			panic(fmt.Errorf("value %d overflows 1-byte field: %w", v, err))
		}
		w.PutUint8(b)
	case 2:
		h, err := safecast.Conv[uint16](v)
		if err != nil {
			panic(fmt.Errorf("value %d overflows 2-byte field: %w", v, err))
		}
		w.PutUint16(h)
	case 4:
		d, err := safecast.Conv[uint32](v)
		if err != nil {
			panic(fmt.Errorf("value %d overflows 4-byte field: %w", v, err))
		}
		w.PutUint32(d)
	default:
		panic(fmt.Errorf("unsupported field width %d", width))
	}
}

// PutCount writes a length as uint32, panicking on overflow.
func (w *RecordWriter) PutCount(n int) {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("count %d overflows uint32: %w", n, err))
	}
	w.PutUint32(v)
}

// PutFixedText writes s as exactly codeUnits UTF-16LE code units, truncating
// longer strings and NUL-padding shorter ones. Emits codeUnits*2 bytes.
func (w *RecordWriter) PutFixedText(s string, codeUnits int) {
	units := utf16.Encode([]rune(s))
	if len(units) > codeUnits {
		units = units[:codeUnits]
	}
	for _, cu := range units {
		w.PutUint16(cu)
	}
	for i := len(units); i < codeUnits; i++ {
		w.PutUint16(0)
	}
}

// Len returns the number of bytes written to the destination so far.
func (w *RecordWriter) Len() int {
	return w.buf.Len()
}
