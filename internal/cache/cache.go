// Package cache stores compiled module payloads on disk keyed by a digest of
// their raw inputs, so unchanged sources are not re-encoded (or re-run
// through slow external tools) across build sessions.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Payload format changes.
const cacheSchemaVersion uint16 = 1

// Digest is a fixed 256-bit input hash.
type Digest [32]byte

// Sum хеширует произвольные куски входных данных в один ключ.
func Sum(chunks ...[]byte) Digest {
	h := sha256.New()
	for _, c := range chunks {
		_, _ = h.Write(c)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Payload is the on-disk record for one compiled module.
type Payload struct {
	Schema      uint16
	Module      string
	InputDigest Digest
	Data        []byte
	SavedAt     int64
}

// Cache is a msgpack-backed module payload cache. Thread-safe.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a cache rooted at dir (created if missing).
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "mods"), 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "mods", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes a payload.
func (c *Cache) Put(key Digest, module string, data []byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	payload := Payload{
		Schema:      cacheSchemaVersion,
		Module:      module,
		InputDigest: key,
		Data:        data,
		SavedAt:     time.Now().Unix(),
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmpName, p)
}

// Get reads a payload back; a schema mismatch behaves as a miss.
func (c *Cache) Get(key Digest, module string) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if payload.Schema != cacheSchemaVersion || payload.Module != module {
		return nil, false, nil
	}
	return payload.Data, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
