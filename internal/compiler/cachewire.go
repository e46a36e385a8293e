package compiler

import (
	"os"

	"voxkit/internal/cache"
	"voxkit/internal/container"
)

// inputDigest keys the cache by module identity plus the content of every raw
// source the recipe consumes. Any unreadable input disables caching for this
// compile instead of failing it.
func (s *Session) inputDigest(rec Recipe) (cache.Digest, bool) {
	chunks := make([][]byte, 0, len(rec.RawDeps)+2)
	chunks = append(chunks, []byte(rec.Name))
	if ftok, ok := container.FormatTokenOf(rec.Name); ok {
		chunks = append(chunks, ftok[:])
	}
	for _, dep := range rec.RawDeps {
		path, ok := s.Registry.PathOf(dep)
		if !ok || path == "" {
			return cache.Digest{}, false
		}
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the resolved registry
		if err != nil {
			return cache.Digest{}, false
		}
		chunks = append(chunks, data)
	}
	// Module-to-module dependencies change whenever their raw inputs change,
	// which the digest already covers transitively for the fixed recipe table.
	return cache.Sum(chunks...), true
}

func (s *Session) lookupCache(rec Recipe) ([]byte, bool) {
	key, ok := s.inputDigest(rec)
	if !ok {
		return nil, false
	}
	data, hit, err := s.Cache.Get(key, rec.Name)
	if err != nil || !hit {
		return nil, false
	}
	return data, true
}

func (s *Session) storeCache(rec Recipe, data []byte) {
	key, ok := s.inputDigest(rec)
	if !ok {
		return
	}
	// Best effort: a failed cache write never fails the build.
	_ = s.Cache.Put(key, rec.Name, data)
}
