// Package cache stores lint results on disk, keyed by everything that can
// change them: tool version, configuration, path and file content.
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

	"github.com/yaklabco/markuplint/pkg/lint"
)

// schemaVersion is bumped whenever Entry changes shape.
const schemaVersion uint16 = 1

// ErrCacheMiss is returned by Get when no usable entry exists.
var ErrCacheMiss = errors.New("cache miss")

// Key identifies one cached lint result.
type Key [sha256.Size]byte

// NewKey derives a key from the tool version, the configuration
// fingerprint, the file path and its content.
func NewKey(version, configFingerprint, path string, content []byte) Key {
	h := sha256.New()
	for _, part := range []string{version, configFingerprint, path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write(content)

	var key Key
	copy(key[:], h.Sum(nil))
	return key
}

// String returns the hex form of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Entry is the cached outcome of linting one file.
type Entry struct {
	Schema      uint16            `msgpack:"schema"`
	Path        string            `msgpack:"path"`
	Diagnostics []lint.Diagnostic `msgpack:"diagnostics"`
	CreatedAt   time.Time         `msgpack:"created_at"`
}

// Cache is a directory of msgpack-encoded entries. It is safe for
// concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/markuplint, falling back to
// ~/.cache/markuplint.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate cache directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "markuplint"), nil
}

// Open creates the cache directory if needed. An empty dir selects
// DefaultDir.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Get returns the entry for key, or ErrCacheMiss. Entries written by an
// older schema are misses.
func (c *Cache) Get(key Key) (*Entry, error) {
	if c == nil {
		return nil, ErrCacheMiss
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry: %w", err)
	}

	var entry Entry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: corrupt entry: %w", ErrCacheMiss, err)
	}
	if entry.Schema != schemaVersion {
		return nil, ErrCacheMiss
	}

	return &entry, nil
}

// Put stores entry under key, replacing any previous entry atomically.
func (c *Cache) Put(key Key, entry *Entry) error {
	if c == nil || entry == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *entry
	stored.Schema = schemaVersion
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	data, err := msgpack.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, "results")); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
