package overrides

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"proflens/internal/logging"
	"proflens/internal/nameutil"
)

// Catalog loads and edits the manual name-to-teacher-id override map.
//
// Overrides are curated by an administrator and consulted after a cache miss,
// before any search runs; the resolution path itself never writes them. The
// backing file is a flat JSON object keyed by normalized schedule name.
type Catalog struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	loaded  time.Time
	entries map[string]string
}

// NewCatalog constructs a catalog backed by the provided JSON file. Returns
// nil when no path is configured; a nil catalog answers every lookup with
// not-found.
func NewCatalog(path string, logger *slog.Logger) *Catalog {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil
	}
	return &Catalog{
		path:   trimmed,
		logger: logging.NewComponentLogger(logger, "overrides"),
	}
}

// Lookup returns the teacher id pinned to the given schedule name, if any.
// Names are normalized before comparison so punctuation and casing
// differences still hit the same override.
func (c *Catalog) Lookup(scheduleName string) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	if err := c.ensureLoaded(); err != nil {
		return "", false, err
	}

	key := nameutil.NormalizeKey(scheduleName)
	if key == "" {
		return "", false, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.entries[key]
	return id, ok, nil
}

// List returns a copy of all overrides keyed by normalized name.
func (c *Catalog) List() (map[string]string, error) {
	if c == nil {
		return nil, nil
	}
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.entries))
	for name, id := range c.entries {
		out[name] = id
	}
	return out, nil
}

// Set pins a schedule name to a teacher id and persists the catalog. The
// write path holds a file lock so concurrent administrative edits cannot
// clobber each other.
func (c *Catalog) Set(scheduleName, teacherID string) error {
	if c == nil {
		return errors.New("override catalog not configured")
	}
	key := nameutil.NormalizeKey(scheduleName)
	if key == "" {
		return errors.New("schedule name cannot be empty")
	}
	teacherID = strings.TrimSpace(teacherID)
	if teacherID == "" {
		return errors.New("teacher id cannot be empty")
	}

	return c.editLocked(func(entries map[string]string) error {
		entries[key] = teacherID
		return nil
	})
}

// Remove deletes the override for a schedule name.
func (c *Catalog) Remove(scheduleName string) error {
	if c == nil {
		return errors.New("override catalog not configured")
	}
	key := nameutil.NormalizeKey(scheduleName)
	if key == "" {
		return errors.New("schedule name cannot be empty")
	}

	return c.editLocked(func(entries map[string]string) error {
		if _, ok := entries[key]; !ok {
			return fmt.Errorf("no override for %q", key)
		}
		delete(entries, key)
		return nil
	})
}

// editLocked re-reads the file under an exclusive lock, applies edit, and
// writes the result atomically.
func (c *Catalog) editLocked(edit func(map[string]string) error) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create override directory: %w", err)
	}

	lock := flock.New(c.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire override lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	entries, err := readCatalogFile(c.path)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = make(map[string]string)
	}

	if err := edit(entries); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal overrides: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	c.mu.Lock()
	c.entries = entries
	c.loaded = time.Time{} // force mtime recheck on next read
	c.mu.Unlock()
	return nil
}

func (c *Catalog) ensureLoaded() error {
	info, err := os.Stat(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	c.mu.RLock()
	alreadyLoaded := !c.loaded.IsZero() && c.loaded.Equal(info.ModTime())
	c.mu.RUnlock()
	if alreadyLoaded {
		return nil
	}

	entries, err := readCatalogFile(c.path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries = entries
	c.loaded = info.ModTime()
	c.mu.Unlock()

	c.logger.Info("loaded manual overrides",
		logging.String("path", c.path),
		logging.Int("count", len(entries)))
	return nil
}

func readCatalogFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read overrides: %w", err)
	}

	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}

	entries := make(map[string]string, len(raw))
	for name, id := range raw {
		key := nameutil.NormalizeKey(name)
		id = strings.TrimSpace(id)
		if key == "" || id == "" {
			continue
		}
		entries[key] = id
	}
	return entries, nil
}
