package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"declutter/internal/model"
	"declutter/internal/pathutil"
)

// historyFile is the on-disk JSON shape. Shortcut keys and saved paths are
// emitted sorted so repeated saves of the same record are byte-identical.
type historyFile struct {
	Shortcuts  map[string]string `json:"shortcuts"`
	SavedPaths []string          `json:"savedpaths"`
}

// JSONStore implements Store using a single JSON file with atomic writes.
// An advisory lock serializes load-merge-save against concurrent runs.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSONStore for the given file path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the history file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the record. A missing file is not an error and yields an empty
// record; a present-but-malformed file returns a *CorruptError.
func (s *JSONStore) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewRecord(), nil
		}
		return nil, err
	}
	return s.decode(data)
}

func (s *JSONStore) decode(data []byte) (*Record, error) {
	var file historyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}

	rec := NewRecord()

	keys := make([]string, 0, len(file.Shortcuts))
	for k := range file.Shortcuts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dest, err := pathutil.Canonical(file.Shortcuts[k])
		if err != nil {
			return nil, &CorruptError{Path: s.path, Err: err}
		}
		rec.SetShortcut(model.Shortcut{Key: k, Destination: dest})
	}

	for _, p := range file.SavedPaths {
		if err := rec.MarkOrganized(p); err != nil {
			return nil, &CorruptError{Path: s.path, Err: err}
		}
	}

	return rec, nil
}

// Save merges the record with whatever is on disk and writes the union
// atomically (temp file in the same directory, then rename), so a crash
// mid-write cannot corrupt the previous history.
func (s *JSONStore) Save(rec *Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock history file: %w", err)
	}
	defer lock.Unlock()

	// Merge with the on-disk state so a concurrent run's decisions survive.
	// A corrupt existing file was already reported at load time; saving a
	// good record over it is the recovery path.
	merged := NewRecord()
	if data, err := os.ReadFile(s.path); err == nil {
		if onDisk, decodeErr := s.decode(data); decodeErr == nil {
			merged.Merge(onDisk)
		}
	}
	merged.Merge(rec)

	file := historyFile{
		Shortcuts:  make(map[string]string, len(merged.Shortcuts)),
		SavedPaths: merged.OrganizedPaths(),
	}
	for _, sc := range merged.Shortcuts {
		file.Shortcuts[sc.Key] = sc.Destination
	}

	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp history: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace history: %w", err)
	}

	return nil
}
