package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"declutter/internal/pathutil"
)

// Shortcut maps a single-character key to a destination directory.
type Shortcut struct {
	Key         string `json:"key"`
	Destination string `json:"destination"`
}

// ConflictError is returned by Define when the key already maps to a
// different destination. The caller decides whether to confirm the
// overwrite via DefineForce.
type ConflictError struct {
	Key      string
	Previous string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shortcut %q already maps to %s", e.Key, e.Previous)
}

// ErrInvalidKey is returned when a shortcut key is not exactly one character.
var ErrInvalidKey = errors.New("shortcut key must be a single character")

// InvalidPathError is returned by Validate when a destination cannot be used.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid destination %s: %s", e.Path, e.Reason)
}

// Registry holds the shortcut table. Entries keep insertion order so
// serialized history stays stable across runs.
type Registry struct {
	entries []Shortcut
	index   map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Lookup returns the destination for key.
func (r *Registry) Lookup(key string) (string, bool) {
	i, ok := r.index[key]
	if !ok {
		return "", false
	}
	return r.entries[i].Destination, true
}

// Define registers a shortcut. The destination is canonicalized (tilde
// expanded, made absolute) before it is stored. Redefining a key with the
// same destination is a no-op; a different destination returns a
// *ConflictError and leaves the old mapping in place.
func (r *Registry) Define(key, destination string) error {
	if len([]rune(key)) != 1 {
		return ErrInvalidKey
	}

	dest, err := pathutil.Canonical(destination)
	if err != nil {
		return err
	}

	if i, ok := r.index[key]; ok {
		if r.entries[i].Destination == dest {
			return nil
		}
		return &ConflictError{Key: key, Previous: r.entries[i].Destination}
	}

	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Shortcut{Key: key, Destination: dest})
	return nil
}

// DefineForce registers a shortcut, overwriting any existing mapping.
// Used after the user has confirmed the conflict.
func (r *Registry) DefineForce(key, destination string) error {
	if len([]rune(key)) != 1 {
		return ErrInvalidKey
	}

	dest, err := pathutil.Canonical(destination)
	if err != nil {
		return err
	}

	if i, ok := r.index[key]; ok {
		r.entries[i].Destination = dest
		return nil
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, Shortcut{Key: key, Destination: dest})
	return nil
}

// Entries returns the shortcuts in insertion order.
func (r *Registry) Entries() []Shortcut {
	out := make([]Shortcut, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered shortcuts.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Validate checks that a destination resolves to an existing writable
// directory, or to a creatable one under an existing parent. The tilde
// prefix is expanded before any check.
func Validate(destination string) error {
	dest, err := pathutil.Canonical(destination)
	if err != nil {
		return &InvalidPathError{Path: destination, Reason: err.Error()}
	}

	info, err := os.Stat(dest)
	switch {
	case err == nil:
		if !info.IsDir() {
			return &InvalidPathError{Path: dest, Reason: "not a directory"}
		}
		if !writable(dest) {
			return &InvalidPathError{Path: dest, Reason: "directory is not writable"}
		}
		return nil
	case os.IsNotExist(err):
		// Creatable if the nearest existing ancestor is a writable directory.
		parent := nearestExisting(dest)
		if parent == "" {
			return &InvalidPathError{Path: dest, Reason: "no existing parent directory"}
		}
		info, statErr := os.Stat(parent)
		if statErr != nil || !info.IsDir() || !writable(parent) {
			return &InvalidPathError{Path: dest, Reason: "parent directory is not writable"}
		}
		return nil
	default:
		return &InvalidPathError{Path: dest, Reason: err.Error()}
	}
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".declutter-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

func nearestExisting(path string) string {
	for p := path; ; {
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return ""
		}
		p = parent
	}
}
