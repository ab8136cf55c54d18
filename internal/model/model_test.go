package model_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"declutter/internal/model"
)

func TestRegistry_DefineAndLookup(t *testing.T) {
	r := model.NewRegistry()

	if err := r.Define("d", "/tmp/downloads"); err != nil {
		t.Fatalf("Define: %v", err)
	}

	dest, ok := r.Lookup("d")
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if dest != "/tmp/downloads" {
		t.Errorf("destination = %q, want %q", dest, "/tmp/downloads")
	}

	// Case-sensitive: D is a different key
	if _, ok := r.Lookup("D"); ok {
		t.Error("lookup of 'D' should miss when only 'd' is defined")
	}
}

func TestRegistry_DefineConflict(t *testing.T) {
	r := model.NewRegistry()

	if err := r.Define("p", "/tmp/pictures"); err != nil {
		t.Fatalf("Define: %v", err)
	}

	// Same destination again is a no-op
	if err := r.Define("p", "/tmp/pictures"); err != nil {
		t.Errorf("redefining with same destination should be a no-op, got %v", err)
	}

	// Different destination must surface the previous value
	err := r.Define("p", "/tmp/photos")
	var conflict *model.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Previous != "/tmp/pictures" {
		t.Errorf("conflict.Previous = %q, want %q", conflict.Previous, "/tmp/pictures")
	}

	// Without confirmation the old mapping is retained
	dest, _ := r.Lookup("p")
	if dest != "/tmp/pictures" {
		t.Errorf("after rejected conflict, destination = %q, want %q", dest, "/tmp/pictures")
	}

	// DefineForce applies the confirmed overwrite
	if err := r.DefineForce("p", "/tmp/photos"); err != nil {
		t.Fatalf("DefineForce: %v", err)
	}
	dest, _ = r.Lookup("p")
	if dest != "/tmp/photos" {
		t.Errorf("after DefineForce, destination = %q, want %q", dest, "/tmp/photos")
	}
}

func TestRegistry_DefineExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	r := model.NewRegistry()
	if err := r.Define("h", "~/inbox"); err != nil {
		t.Fatalf("Define: %v", err)
	}

	dest, _ := r.Lookup("h")
	if dest != filepath.Join(home, "inbox") {
		t.Errorf("destination = %q, want tilde expanded under %q", dest, home)
	}
}

func TestRegistry_InvalidKey(t *testing.T) {
	r := model.NewRegistry()

	if err := r.Define("ab", "/tmp"); !errors.Is(err, model.ErrInvalidKey) {
		t.Errorf("two-character key: got %v, want ErrInvalidKey", err)
	}
	if err := r.Define("", "/tmp"); !errors.Is(err, model.ErrInvalidKey) {
		t.Errorf("empty key: got %v, want ErrInvalidKey", err)
	}
}

func TestRegistry_EntriesKeepInsertionOrder(t *testing.T) {
	r := model.NewRegistry()
	for _, s := range []model.Shortcut{
		{Key: "z", Destination: "/tmp/z"},
		{Key: "a", Destination: "/tmp/a"},
		{Key: "m", Destination: "/tmp/m"},
	} {
		if err := r.Define(s.Key, s.Destination); err != nil {
			t.Fatalf("Define(%q): %v", s.Key, err)
		}
	}

	entries := r.Entries()
	want := []string{"z", "a", "m"}
	for i, key := range want {
		if entries[i].Key != key {
			t.Errorf("entries[%d].Key = %q, want %q", i, entries[i].Key, key)
		}
	}
}

func TestValidate(t *testing.T) {
	tmpDir := t.TempDir()

	if err := model.Validate(tmpDir); err != nil {
		t.Errorf("existing writable dir: %v", err)
	}

	// Creatable under an existing parent
	if err := model.Validate(filepath.Join(tmpDir, "new", "nested")); err != nil {
		t.Errorf("creatable dir: %v", err)
	}

	// A regular file is not a valid destination
	file := filepath.Join(tmpDir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	var invalid *model.InvalidPathError
	if err := model.Validate(file); !errors.As(err, &invalid) {
		t.Errorf("file destination: got %v, want InvalidPathError", err)
	}
}

func TestQueue_CursorClamping(t *testing.T) {
	q := model.NewQueue([]string{"/tmp/a.txt", "/tmp/b.txt", "/tmp/c.txt"})

	if q.Prev() {
		t.Error("Prev at start should report false")
	}
	if q.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", q.Cursor())
	}

	// Walk well past the end; cursor must never leave [0, N-1]
	for i := 0; i < 10; i++ {
		q.Next()
		if c := q.Cursor(); c < 0 || c > 2 {
			t.Fatalf("cursor escaped bounds: %d", c)
		}
	}
	if q.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", q.Cursor())
	}
	if q.Next() {
		t.Error("Next at end should report false")
	}

	for i := 0; i < 10; i++ {
		q.Prev()
		if c := q.Cursor(); c < 0 || c > 2 {
			t.Fatalf("cursor escaped bounds: %d", c)
		}
	}
	if q.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", q.Cursor())
	}
}

func TestQueue_DeduplicatesInputs(t *testing.T) {
	q := model.NewQueue([]string{"/tmp/a.txt", "/tmp/b.txt", "/tmp/a.txt"})
	if q.Len() != 2 {
		t.Errorf("len = %d, want 2", q.Len())
	}
}

func TestQueue_StatusOverwriteOnRevisit(t *testing.T) {
	q := model.NewQueue([]string{"/tmp/a.txt", "/tmp/b.txt"})

	q.MarkSkipped()
	q.Next()
	q.Prev()

	if q.Current().Status != model.StatusSkipped {
		t.Fatalf("status = %v, want skipped", q.Current().Status)
	}

	// Revisiting and moving overwrites the earlier skip
	q.MarkMoved("/tmp/dest/a.txt", "/tmp/dest")
	it := q.Current()
	if it.Status != model.StatusMoved {
		t.Errorf("status = %v, want moved", it.Status)
	}
	if it.Path != "/tmp/dest/a.txt" {
		t.Errorf("path = %q, want post-move path", it.Path)
	}
	if it.Destination != "/tmp/dest" {
		t.Errorf("destination = %q, want /tmp/dest", it.Destination)
	}
}

func TestNewSessionQueue_ExcludesOrganized(t *testing.T) {
	organized := func(p string) bool { return p == "/tmp/old.txt" }

	q := model.NewSessionQueue([]string{"/tmp/old.txt", "/tmp/new.txt"}, organized, false)
	if q.Len() != 1 {
		t.Fatalf("len = %d, want 1", q.Len())
	}
	if q.Current().Path != "/tmp/new.txt" {
		t.Errorf("current = %q, want /tmp/new.txt", q.Current().Path)
	}
}

func TestNewSessionQueue_IncludesOrganizedAsSkipped(t *testing.T) {
	organized := func(p string) bool { return p == "/tmp/old.txt" }

	q := model.NewSessionQueue([]string{"/tmp/old.txt", "/tmp/new.txt"}, organized, true)
	if q.Len() != 2 {
		t.Fatalf("len = %d, want 2", q.Len())
	}

	items := q.Items()
	if items[0].Status != model.StatusSkipped || !items[0].Preorganized {
		t.Errorf("organized input should be pre-marked skipped, got %+v", items[0])
	}
	if items[1].Status != model.StatusPending {
		t.Errorf("new input should be pending, got %+v", items[1])
	}
}

func TestQueue_Pending(t *testing.T) {
	q := model.NewQueue([]string{"/tmp/a.txt", "/tmp/b.txt"})
	if !q.Pending() {
		t.Fatal("fresh queue should have pending items")
	}
	q.MarkSkipped()
	q.Next()
	q.MarkMoved("/tmp/dest/b.txt", "/tmp/dest")
	if q.Pending() {
		t.Error("fully decided queue should not be pending")
	}
}
