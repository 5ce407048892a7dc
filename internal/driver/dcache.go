package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"py2cpp/internal/observ"
	"py2cpp/internal/project"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит сгенерированный C++ по ключу (хеш исходника, отпечаток
// настроек). Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached compilation result. Only units that compiled
// without any diagnostic are stored.
type DiskPayload struct {
	Schema  uint16  `msgpack:"schema"`
	Path    string  `msgpack:"path"`
	Output  string  `msgpack:"output"`
	Summary Summary `msgpack:"summary"`
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it when missing.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог по первым двум символам, чтобы не раздувать один каталог.
	return filepath.Join(c.dir, "units", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or a payload of another schema
// version is a miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func (u *Unit) cacheKey(opts *Options) project.Digest {
	return project.Combine(project.Digest(u.File.Hash), opts.Fingerprint())
}

// restore fills the unit from the cache; a corrupt entry counts as a miss.
func (u *Unit) restore(opts *Options) bool {
	if opts.Cache == nil {
		return false
	}
	var payload DiskPayload
	hit := false
	u.Timer.Measure(observ.PhaseCached, func() string {
		ok, err := opts.Cache.Get(u.cacheKey(opts), &payload)
		switch {
		case err != nil:
			return err.Error()
		case !ok:
			return "miss"
		}
		hit = true
		return "hit"
	})
	if !hit {
		return false
	}
	u.Output = payload.Output
	u.Summary = payload.Summary
	u.Cached = true
	u.Reached = StageEmit
	opts.observe(u.Path, observ.PhaseCached, PhaseEnd, 0)
	return true
}

func (u *Unit) store(opts *Options) {
	if opts.Cache == nil || u.Diagnostics().Len() > 0 {
		return
	}
	payload := &DiskPayload{Path: u.Path, Output: u.Output, Summary: u.Summary}
	if err := opts.Cache.Put(u.cacheKey(opts), payload); err != nil {
		u.Telemetry.Add(cacheWarning(u, err))
	}
}
