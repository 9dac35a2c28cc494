// Package taulcache caches compiled llspec.Spec programs on disk, keyed by
// the blake2b content hash of the source text they were parsed from, so a
// REPL session or repeated CLI invocation can skip re-parsing an unchanged
// grammar file. Payloads are REZI-encoded, the same binary serialization the
// teacher uses for its game-state blob columns, here used for standalone
// files instead.
package taulcache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taulerr"
	"golang.org/x/crypto/blake2b"
)

// Cache is a directory of REZI-encoded llspec.Spec files named by the
// blake2b-256 hash of the source text they were compiled from.
type Cache struct {
	dir string
}

// Open returns a Cache rooted at dir, creating dir if it does not exist.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, taulerr.Wrap(fmt.Errorf("creating cache dir %q: %w", dir, err), taulerr.ErrConfig)
	}
	return &Cache{dir: dir}, nil
}

// Key returns the cache key for source text.
func Key(source string) string {
	sum := blake2b.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".rezi")
}

// Get looks up the cached Spec for source's content hash. The second return
// value is false on a cache miss; err is non-nil only on an actual I/O or
// decode failure, never on a plain miss.
func (c *Cache) Get(source string) (llspec.Spec, bool, error) {
	key := Key(source)
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return llspec.Spec{}, false, nil
	}
	if err != nil {
		return llspec.Spec{}, false, taulerr.Wrap(fmt.Errorf("reading cache entry %q: %w", key, err), taulerr.ErrConfig)
	}

	var spec llspec.Spec
	n, err := rezi.DecBinary(data, &spec)
	if err != nil {
		return llspec.Spec{}, false, taulerr.Wrap(fmt.Errorf("decoding cache entry %q: %w", key, err), taulerr.ErrCacheCorrupt)
	}
	if n != len(data) {
		return llspec.Spec{}, false, taulerr.New(
			fmt.Sprintf("cache entry %q: decoded %d/%d bytes", key, n, len(data)),
			taulerr.ErrCacheCorrupt,
		)
	}

	return spec, true, nil
}

// Put stores spec under source's content hash, overwriting any prior entry.
func (c *Cache) Put(source string, spec llspec.Spec) error {
	key := Key(source)
	data := rezi.EncBinary(spec)
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return taulerr.Wrap(fmt.Errorf("writing cache entry %q: %w", key, err), taulerr.ErrConfig)
	}
	return nil
}

// Evict removes the cache entry for source's content hash, if any.
func (c *Cache) Evict(source string) error {
	err := os.Remove(c.path(Key(source)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return taulerr.Wrap(err, taulerr.ErrConfig)
	}
	return nil
}
