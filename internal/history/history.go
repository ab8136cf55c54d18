// Package history persists shortcuts and already-organized paths across
// runs. The default backend is a JSON file in the original
// {"shortcuts": ..., "savedpaths": ...} shape; a SQLite backend is used when
// the history path points at a database file.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"declutter/internal/model"
	"declutter/internal/pathutil"
)

// Record is the durable state: the shortcut table plus the set of paths the
// user has already organized (moved or deliberately kept in place).
type Record struct {
	Shortcuts []model.Shortcut
	organized map[string]bool
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{organized: make(map[string]bool)}
}

// MarkOrganized adds a path to the organized set. Paths are canonicalized so
// membership tests hold across runs regardless of how they were entered.
// Idempotent.
func (r *Record) MarkOrganized(path string) error {
	canonical, err := pathutil.Canonical(path)
	if err != nil {
		return err
	}
	if r.organized == nil {
		r.organized = make(map[string]bool)
	}
	r.organized[canonical] = true
	return nil
}

// IsOrganized reports whether a path is in the organized set.
func (r *Record) IsOrganized(path string) bool {
	canonical, err := pathutil.Canonical(path)
	if err != nil {
		return false
	}
	return r.organized[canonical]
}

// OrganizedPaths returns the organized set sorted, for stable serialization.
func (r *Record) OrganizedPaths() []string {
	paths := make([]string, 0, len(r.organized))
	for p := range r.organized {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Merge unions another record into this one. Shortcut conflicts resolve
// last-write-wins: entries from other replace same-key entries here. The
// organized sets union idempotently.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	for _, s := range other.Shortcuts {
		r.SetShortcut(s)
	}
	for p := range other.organized {
		if r.organized == nil {
			r.organized = make(map[string]bool)
		}
		r.organized[p] = true
	}
}

// SetShortcut inserts or replaces a shortcut by key, preserving the position
// of an existing entry.
func (r *Record) SetShortcut(s model.Shortcut) {
	for i := range r.Shortcuts {
		if r.Shortcuts[i].Key == s.Key {
			r.Shortcuts[i].Destination = s.Destination
			return
		}
	}
	r.Shortcuts = append(r.Shortcuts, s)
}

// Registry builds a shortcut registry seeded from the record.
func (r *Record) Registry() *model.Registry {
	reg := model.NewRegistry()
	for _, s := range r.Shortcuts {
		// Destinations in history are already canonical; force keeps
		// last-write-wins for records written by older versions that
		// could contain duplicate keys.
		_ = reg.DefineForce(s.Key, s.Destination)
	}
	return reg
}

// CorruptError reports a history file that exists but cannot be parsed. The
// session degrades to an empty in-memory history; the file on disk is left
// untouched until the next successful save.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("history file %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// Store is the persistence interface for history records.
type Store interface {
	Load() (*Record, error)
	Save(rec *Record) error
	Path() string
}

// DefaultPath returns the default JSON history path:
// ~/.config/declutter/history.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "declutter", "history.json"), nil
}

// DefaultSQLitePath returns the default database path:
// ~/.config/declutter/history.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "declutter", "history.db"), nil
}

// Open returns the store for the given history path, chosen by extension:
// .db/.sqlite selects the SQLite backend, anything else the JSON one.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path)
	default:
		return NewJSONStore(path), nil
	}
}

// OpenDefault opens the appropriate default backend. Prefers SQLite if the
// database file exists, otherwise falls back to JSON.
func OpenDefault() (Store, error) {
	dbPath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dbPath); err == nil {
		return NewSQLiteStore(dbPath)
	}

	jsonPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewJSONStore(jsonPath), nil
}
