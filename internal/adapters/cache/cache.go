// Package cache provides the persistent identity cache: a JSON file mapping
// primary identifiers to resolved identity records
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"trawlwatch/internal/platform/logger"
	resolvedom "trawlwatch/internal/services/resolve/domain"
)

// File is a file-backed identity cache. Loaded wholesale at construction;
// each Store rewrites the snapshot atomically (tmp + rename). One writer
// process is assumed; the mutex keeps in-process stores from tearing the
// file, nothing more
type File struct {
	path string
	log  logger.Logger

	mu      sync.RWMutex
	entries map[string]resolvedom.Record
}

// NewFile opens the cache at path. A missing or corrupt backing file
// degrades to an empty cache: a cold cache is a performance cost, not a
// correctness risk, since every resolution can fall through to the live
// cascade
func NewFile(path string) *File {
	c := &File{
		path:    path,
		log:     *logger.Named("cache"),
		entries: map[string]resolvedom.Record{},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn().Err(err).Str("path", path).Msg("cache unreadable, starting empty")
		}
		return c
	}
	if err := json.Unmarshal(raw, &c.entries); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("cache corrupt, starting empty")
		c.entries = map[string]resolvedom.Record{}
		return c
	}
	c.log.Info().Int("entries", len(c.entries)).Str("path", path).Msg("cache loaded")
	return c
}

// Lookup returns the cached record for a primary identifier
func (c *File) Lookup(primaryID string) (resolvedom.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.entries[primaryID]
	return rec, ok
}

// Store overwrites the entry unconditionally and persists the snapshot.
// Entries are replaced wholesale, never merged
func (c *File) Store(primaryID string, rec resolvedom.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[primaryID] = rec
	return c.flushLocked()
}

// Len returns the number of cached identities
func (c *File) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a copy of all entries, for the ops API listing
func (c *File) Snapshot() map[string]resolvedom.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]resolvedom.Record, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// flushLocked writes the snapshot atomically; callers hold the write lock
func (c *File) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
