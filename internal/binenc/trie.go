package binenc

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"fortio.org/safecast"
)

// NoPatternID marks a trie node that does not terminate a pattern.
const NoPatternID = ^uint32(0)

// trieHeaderSize is the fixed prefix before the first node record:
// u32 node count, u32 pattern count.
const trieHeaderSize = 8

// Trie is a compressed prefix-lookup dictionary built from a finite pattern
// set. Ids are assigned in first-insertion order and are stable for a given
// input order; compilers rely on that to reorder per-pattern value tables.
type Trie struct {
	root     *trieNode
	ids      map[string]uint32
	patterns []string
}

type trieNode struct {
	label     uint16
	patternID uint32
	children  []*trieNode // sorted by label
}

// RewriteWildcards replaces the wildcard markers '*' and '?' with positional
// back-reference markers "/1", "/2", ... since the runtime trie format carries
// no wildcard semantics of its own.
func RewriteWildcards(pattern string) string {
	if !strings.ContainsAny(pattern, "*?") {
		return pattern
	}
	var sb strings.Builder
	n := 0
	for _, r := range pattern {
		if r == '*' || r == '?' {
			n++
			sb.WriteByte('/')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// BuildTrie builds a trie from patterns in input order. Re-inserting an
// already-known pattern keeps its original id.
func BuildTrie(patterns []string) *Trie {
	t := &Trie{
		root: &trieNode{patternID: NoPatternID},
		ids:  make(map[string]uint32, len(patterns)),
	}
	for _, p := range patterns {
		t.insert(p)
	}
	return t
}

func (t *Trie) insert(pattern string) uint32 {
	key := RewriteWildcards(pattern)
	if id, ok := t.ids[key]; ok {
		return id
	}
	node := t.root
	for _, cu := range utf16.Encode([]rune(key)) {
		node = node.child(cu)
	}
	id, err := safecast.Conv[uint32](len(t.patterns))
	if err != nil {
		panic(fmt.Errorf("pattern id overflow: %w", err))
	}
	node.patternID = id
	t.ids[key] = id
	t.patterns = append(t.patterns, pattern)
	return id
}

// child returns the child for label, inserting it in sorted position first if
// needed.
func (n *trieNode) child(label uint16) *trieNode {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].label >= label
	})
	if i < len(n.children) && n.children[i].label == label {
		return n.children[i]
	}
	c := &trieNode{label: label, patternID: NoPatternID}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	return c
}

// IDOf returns the stable id for pattern (wildcards allowed).
func (t *Trie) IDOf(pattern string) (uint32, bool) {
	id, ok := t.ids[RewriteWildcards(pattern)]
	return id, ok
}

// PatternOf returns the original pattern registered under id.
func (t *Trie) PatternOf(id uint32) (string, bool) {
	if int64(id) >= int64(len(t.patterns)) {
		return "", false
	}
	return t.patterns[id], true
}

// Count returns the number of distinct patterns.
func (t *Trie) Count() int {
	return len(t.patterns)
}

// ReorderByID returns values reordered so that index i holds the value of the
// pattern with trie id i. The values slice is parallel to the patterns slice
// the trie was built from. This reordering is a required invariant: the
// runtime looks a pattern up in the trie and indexes straight into the value
// table with the returned id.
func ReorderByID[T any](t *Trie, patterns []string, values []T) ([]T, error) {
	if len(patterns) != len(values) {
		return nil, fmt.Errorf("patterns/values length mismatch: %d != %d", len(patterns), len(values))
	}
	out := make([]T, t.Count())
	for i, p := range patterns {
		id, ok := t.IDOf(p)
		if !ok {
			return nil, fmt.Errorf("pattern %q not present in trie", p)
		}
		out[id] = values[i]
	}
	return out, nil
}

// Serialize writes the trie as offset-based node records:
//
//	u32 node count, u32 pattern count,
//	then per node (preorder, children sorted by label):
//	u16 label, u16 child count, u32 pattern id, child count * u32 child offset.
//
// Offsets are absolute within the returned blob, so the runtime can walk the
// structure without decoding it first.
func (t *Trie) Serialize() []byte {
	order := make([]*trieNode, 0, 16)
	var walk func(n *trieNode)
	walk = func(n *trieNode) {
		order = append(order, n)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)

	offsets := make(map[*trieNode]uint32, len(order))
	next := uint32(trieHeaderSize)
	for _, n := range order {
		offsets[n] = next
		size, err := safecast.Conv[uint32](8 + 4*len(n.children))
		if err != nil {
			panic(fmt.Errorf("trie node size overflow: %w", err))
		}
		next += size
	}

	out := make([]byte, 0, next)
	out = binary.LittleEndian.AppendUint32(out, mustUint32(len(order)))
	out = binary.LittleEndian.AppendUint32(out, mustUint32(len(t.patterns)))
	for _, n := range order {
		out = binary.LittleEndian.AppendUint16(out, n.label)
		childCount, err := safecast.Conv[uint16](len(n.children))
		if err != nil {
			panic(fmt.Errorf("trie fan-out overflow: %w", err))
		}
		out = binary.LittleEndian.AppendUint16(out, childCount)
		out = binary.LittleEndian.AppendUint32(out, n.patternID)
		for _, c := range n.children {
			out = binary.LittleEndian.AppendUint32(out, offsets[c])
		}
	}
	return out
}

func mustUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("uint32 overflow: %w", err))
	}
	return v
}

// Lookup walks serialized trie bytes for pattern and returns its id. It is
// the same walk the runtime performs; tests use it to prove the serialized
// form agrees with the in-memory mapping.
func Lookup(data []byte, pattern string) (uint32, bool) {
	if len(data) < trieHeaderSize {
		return 0, false
	}
	off := uint32(trieHeaderSize)
	for _, cu := range utf16.Encode([]rune(RewriteWildcards(pattern))) {
		childOff, ok := findChild(data, off, cu)
		if !ok {
			return 0, false
		}
		off = childOff
	}
	id := binary.LittleEndian.Uint32(data[off+4 : off+8])
	if id == NoPatternID {
		return 0, false
	}
	return id, true
}

func findChild(data []byte, nodeOff uint32, label uint16) (uint32, bool) {
	if int(nodeOff)+8 > len(data) {
		return 0, false
	}
	childCount := binary.LittleEndian.Uint16(data[nodeOff+2 : nodeOff+4])
	base := nodeOff + 8
	for i := uint32(0); i < uint32(childCount); i++ {
		childOff := binary.LittleEndian.Uint32(data[base+4*i : base+4*i+4])
		if int(childOff)+2 > len(data) {
			return 0, false
		}
		childLabel := binary.LittleEndian.Uint16(data[childOff : childOff+2])
		if childLabel == label {
			return childOff, true
		}
		if childLabel > label {
			break
		}
	}
	return 0, false
}
