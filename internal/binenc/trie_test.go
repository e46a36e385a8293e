package binenc

import (
	"testing"
)

func TestRewriteWildcards(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"a*b", "a/1b"},
		{"a*b?", "a/1b/2"},
		{"*?*", "/1/2/3"},
		{"no wildcards here", "no wildcards here"},
	}
	for _, tc := range cases {
		if got := RewriteWildcards(tc.in); got != tc.want {
			t.Errorf("RewriteWildcards(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTrieIDRoundTrip(t *testing.T) {
	patterns := []string{"abc", "ab", "a*c", "xyz", "x?"}
	trie := BuildTrie(patterns)
	for _, p := range patterns {
		id, ok := trie.IDOf(p)
		if !ok {
			t.Fatalf("IDOf(%q) missing", p)
		}
		back, ok := trie.PatternOf(id)
		if !ok || back != p {
			t.Fatalf("PatternOf(IDOf(%q)) = %q, want %q", p, back, p)
		}
	}
}

// Golden test pinning id assignment to first-insertion order.
func TestTrieIDAssignmentOrder(t *testing.T) {
	patterns := []string{"zz", "aa", "zz", "mm"}
	trie := BuildTrie(patterns)
	want := map[string]uint32{"zz": 0, "aa": 1, "mm": 2}
	if trie.Count() != 3 {
		t.Fatalf("Count = %d, want 3", trie.Count())
	}
	for p, id := range want {
		got, ok := trie.IDOf(p)
		if !ok || got != id {
			t.Errorf("IDOf(%q) = %d, want %d", p, got, id)
		}
	}
}

func TestTrieSerializedLookupAgrees(t *testing.T) {
	patterns := []string{"break", "bread", "b", "crumb", "c?t", "cr*"}
	trie := BuildTrie(patterns)
	data := trie.Serialize()

	for _, p := range patterns {
		wantID, _ := trie.IDOf(p)
		gotID, ok := Lookup(data, p)
		if !ok {
			t.Fatalf("serialized lookup missed %q", p)
		}
		if gotID != wantID {
			t.Fatalf("serialized lookup %q = %d, want %d", p, gotID, wantID)
		}
	}
	if _, ok := Lookup(data, "brea"); ok {
		t.Error("prefix of a pattern must not resolve to an id")
	}
	if _, ok := Lookup(data, "missing"); ok {
		t.Error("unknown pattern must not resolve to an id")
	}
}

func TestTrieSerializeDeterministic(t *testing.T) {
	patterns := []string{"one", "two", "three"}
	a := BuildTrie(patterns).Serialize()
	b := BuildTrie(patterns).Serialize()
	if string(a) != string(b) {
		t.Fatal("serialization differs across identical builds")
	}
}

func TestReorderByID(t *testing.T) {
	patterns := []string{"high", "low", "mid"}
	values := []uint16{30, 10, 20}
	trie := BuildTrie(patterns)
	reordered, err := ReorderByID(trie, patterns, values)
	if err != nil {
		t.Fatalf("ReorderByID: %v", err)
	}
	data := trie.Serialize()
	// Looking a pattern up through the runtime trie and indexing the
	// reordered table must return the value originally associated with it.
	for i, p := range patterns {
		id, ok := Lookup(data, p)
		if !ok {
			t.Fatalf("lookup %q failed", p)
		}
		if reordered[id] != values[i] {
			t.Fatalf("value for %q = %d, want %d", p, reordered[id], values[i])
		}
	}
}
