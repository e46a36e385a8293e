package binenc

import "bytes"

// Alignment is the boundary every fixed-layout section must start on.
const Alignment = 4

// Pad4 pads buf with zero bytes up to the next 4-byte boundary. Every
// variable-length section (string pool, trie) must be followed by Pad4 before
// the next fixed-layout section is written.
func Pad4(buf *bytes.Buffer) {
	PadTo(buf, Alignment)
}

// PadTo pads buf with zero bytes up to the next n-byte boundary.
func PadTo(buf *bytes.Buffer, n int) {
	if n <= 1 {
		return
	}
	pad := (n - buf.Len()%n) % n
	for i := 0; i < pad; i++ {
		buf.WriteByte(0)
	}
}
