package mover_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"declutter/internal/mover"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestMove(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "a.txt")
	destDir := filepath.Join(tmpDir, "dest")
	writeFile(t, source, "hello")

	target, err := mover.Move(source, destDir)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if target != filepath.Join(destDir, "a.txt") {
		t.Errorf("target = %q, want %q", target, filepath.Join(destDir, "a.txt"))
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("target missing: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Error("source should be gone after move")
	}
}

func TestMove_Collision(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "a.txt")
	destDir := filepath.Join(tmpDir, "dest")
	existing := filepath.Join(destDir, "a.txt")

	writeFile(t, source, "new content")
	if err := os.MkdirAll(destDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, existing, "original content")

	_, err := mover.Move(source, destDir)
	var collision *mover.CollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("expected CollisionError, got %v", err)
	}
	if collision.Target != existing {
		t.Errorf("collision.Target = %q, want %q", collision.Target, existing)
	}

	// Neither file may be touched without explicit confirmation
	data, _ := os.ReadFile(existing)
	if string(data) != "original content" {
		t.Errorf("existing file was modified: %q", data)
	}
	if _, err := os.Stat(source); err != nil {
		t.Error("source should still exist after a refused collision")
	}
}

func TestMoveTo_OverwriteConfirmed(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "a.txt")
	target := filepath.Join(tmpDir, "dest", "a.txt")

	writeFile(t, source, "new content")
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, target, "original content")

	got, err := mover.MoveTo(source, target, true)
	if err != nil {
		t.Fatalf("MoveTo overwrite: %v", err)
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new content" {
		t.Errorf("content = %q, want overwritten content", data)
	}
}

func TestMoveTo_Rename(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "a.txt")
	destDir := filepath.Join(tmpDir, "dest")
	writeFile(t, source, "x")
	if err := os.MkdirAll(destDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(destDir, "a.txt"), "occupied")

	// User chose a new name instead of overwriting
	got, err := mover.MoveTo(source, filepath.Join(destDir, "a-2.txt"), false)
	if err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if got != filepath.Join(destDir, "a-2.txt") {
		t.Errorf("target = %q", got)
	}

	data, _ := os.ReadFile(filepath.Join(destDir, "a.txt"))
	if string(data) != "occupied" {
		t.Error("existing file must be unchanged when renaming")
	}
}

func TestMove_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := mover.Move(filepath.Join(tmpDir, "ghost.txt"), filepath.Join(tmpDir, "dest"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMove_CreatesDestinationDir(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "a.txt")
	writeFile(t, source, "x")

	// Destination directory does not exist yet
	target, err := mover.Move(source, filepath.Join(tmpDir, "brand", "new"))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("target missing: %v", err)
	}
}
