// Package mover performs the filesystem move for one queue item. Renames are
// attempted first; cross-volume moves fall back to a verified copy, and the
// source is removed only after the copy checks out.
package mover

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// CollisionError reports that the destination already contains a file with
// the source's name. Nothing has been touched; the caller must confirm an
// overwrite, pick a new name, or cancel.
type CollisionError struct {
	Target string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s already exists", e.Target)
}

// Move relocates source into destDir under its base name. Returns the new
// path. The collision check applies uniformly whatever form the paths were
// entered in; use MoveTo with overwrite after explicit confirmation.
func Move(source, destDir string) (string, error) {
	target := filepath.Join(destDir, filepath.Base(source))
	return MoveTo(source, target, false)
}

// MoveTo relocates source to the exact target path. Unless overwrite is set,
// an existing target is a *CollisionError.
func MoveTo(source, target string, overwrite bool) (string, error) {
	if _, err := os.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("source %s: %w", source, fs.ErrNotExist)
		}
		return "", err
	}

	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return "", &CollisionError{Target: target}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}

	renameErr := os.Rename(source, target)
	if renameErr == nil {
		return target, nil
	}

	var linkErr *os.LinkError
	if errors.As(renameErr, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if err := copyFileVerified(source, target); err != nil {
			return "", fmt.Errorf("copy across volumes: %w", err)
		}
		if err := os.Remove(source); err != nil {
			return "", fmt.Errorf("remove source after copy: %w", err)
		}
		return target, nil
	}

	return "", renameErr
}

// copyFileVerified streams src to dst with SHA256 + size verification.
// Removes dst on mismatch.
func copyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}
