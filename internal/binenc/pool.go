package binenc

import (
	"bytes"
	"fmt"
	"unicode/utf16"

	"fortio.org/safecast"
)

// Pool is an append-only byte buffer referenced elsewhere by integer offset.
//
// There is no deduplication: the offset returned for an append is simply the
// buffer length before the append, so offsets depend strictly on append order.
type Pool struct {
	buf bytes.Buffer
}

func NewPool() *Pool {
	return &Pool{}
}

// PutString appends s encoded as UTF-16LE code units plus a NUL terminator and
// returns the byte offset the string starts at.
func (p *Pool) PutString(s string) uint32 {
	off := p.offset()
	for _, cu := range utf16.Encode([]rune(s)) {
		p.buf.WriteByte(byte(cu))
		p.buf.WriteByte(byte(cu >> 8))
	}
	p.buf.WriteByte(0)
	p.buf.WriteByte(0)
	return off
}

// PutBytes appends raw bytes and returns the offset they start at.
func (p *Pool) PutBytes(b []byte) uint32 {
	off := p.offset()
	p.buf.Write(b)
	return off
}

func (p *Pool) offset() uint32 {
	off, err := safecast.Conv[uint32](p.buf.Len())
	if err != nil {
		panic(fmt.Errorf("string pool overflow: %w", err))
	}
	return off
}

// Len returns the current pool size in bytes.
func (p *Pool) Len() int {
	return p.buf.Len()
}

// Bytes returns the final buffer.
// ВАЖНО: не модифицируйте возвращаемый срез.
func (p *Pool) Bytes() []byte {
	return p.buf.Bytes()
}

// WordsToPool appends each word's encoded text in input order and returns the
// parallel slice of offsets.
func WordsToPool(p *Pool, words []string) []uint32 {
	offsets := make([]uint32, len(words))
	for i, w := range words {
		offsets[i] = p.PutString(w)
	}
	return offsets
}
