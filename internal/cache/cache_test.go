package cache

import (
	"bytes"
	"os"
	"testing"
)

func TestPutGetRoundtrip(t *testing.T) {
	c, err := Open(t.TempDir() + "/cache")
	if err != nil {
		t.Fatal(err)
	}
	key := Sum([]byte("PhoneSet"), []byte("input bytes"))
	payload := []byte{1, 2, 3, 4, 5}

	if err := c.Put(key, "PhoneSet", payload); err != nil {
		t.Fatal(err)
	}
	got, hit, err := c.Get(key, "PhoneSet")
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("want cache hit after Put")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload = % x, want % x", got, payload)
	}
}

func TestGetMisses(t *testing.T) {
	c, err := Open(t.TempDir() + "/cache")
	if err != nil {
		t.Fatal(err)
	}
	key := Sum([]byte("PhoneSet"))
	if err := c.Put(key, "PhoneSet", []byte{1}); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(Sum([]byte("other")), "PhoneSet"); err != nil || hit {
		t.Fatalf("unknown key: hit=%v err=%v, want miss", hit, err)
	}
	// Same key, different module name: a digest collision across modules must
	// not leak another module's payload.
	if _, hit, err := c.Get(key, "PosSet"); err != nil || hit {
		t.Fatalf("module mismatch: hit=%v err=%v, want miss", hit, err)
	}
}

func TestCorruptEntryIsAnError(t *testing.T) {
	c, err := Open(t.TempDir() + "/cache")
	if err != nil {
		t.Fatal(err)
	}
	key := Sum([]byte("PhoneSet"))
	if err := os.WriteFile(c.pathFor(key), []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.Get(key, "PhoneSet"); err == nil {
		t.Fatal("corrupt entry must surface as an error, not a silent miss")
	}
}

func TestSumIsOrderSensitive(t *testing.T) {
	a := Sum([]byte("ab"), []byte("c"))
	b := Sum([]byte("a"), []byte("bc"))
	// The digest covers the concatenated stream; chunk boundaries do not
	// matter, input bytes do.
	if a != b {
		t.Fatal("same byte stream must produce the same digest")
	}
	if Sum([]byte("abc")) == Sum([]byte("acb")) {
		t.Fatal("different byte streams must produce different digests")
	}
}
