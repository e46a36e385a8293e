// Package binenc is the shared low-level serialization toolkit used by every
// module compiler: an append-only string pool addressed by byte offset, a
// fixed-width little-endian record packer, 4-byte alignment padding and a
// compressed pattern trie with a stable pattern<->id mapping.
//
// All output is pointer-free; sections reference each other by byte offsets so
// the runtime can mmap a module payload and index into it directly.
package binenc
