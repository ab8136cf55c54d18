package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"declutter/internal/config"
	"declutter/internal/history"
)

func newStderrCommand(buf *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetErr(buf)
	cmd.SetOut(buf)
	return cmd
}

func TestApplyConfig_FlagsWin(t *testing.T) {
	cfg := &config.Config{
		HistoryPath:   "/tmp/from-config.json",
		ShowOrganized: true,
		Quiet:         true,
	}

	opts := organizeOptions{
		historyPath: "/tmp/from-flag.json",
		flagged:     flagged{history: true, showOrganized: true, quiet: true},
	}
	applyConfig(&opts, cfg)

	if opts.historyPath != "/tmp/from-flag.json" {
		t.Errorf("historyPath = %q, want flag value", opts.historyPath)
	}
	if opts.showOrganized || opts.quiet {
		t.Error("explicit flags must not be replaced by config values")
	}
}

func TestApplyConfig_DefaultsFromConfig(t *testing.T) {
	cfg := &config.Config{
		HistoryPath:   "/tmp/from-config.json",
		ShowOrganized: true,
	}

	var opts organizeOptions
	applyConfig(&opts, cfg)

	if opts.historyPath != "/tmp/from-config.json" {
		t.Errorf("historyPath = %q, want config value", opts.historyPath)
	}
	if !opts.showOrganized {
		t.Error("show_organized from config not applied")
	}
}

func TestResolvePaths_DropsMissing(t *testing.T) {
	tmpDir := t.TempDir()
	real := filepath.Join(tmpDir, "a.txt")
	if err := os.WriteFile(real, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	paths, err := resolvePaths(newStderrCommand(&buf), []string{real, filepath.Join(tmpDir, "ghost.txt")})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != real {
		t.Errorf("paths = %v, want just %s", paths, real)
	}
	if buf.Len() == 0 {
		t.Error("expected a warning for the missing path")
	}
}

func TestResolvePaths_AllMissing(t *testing.T) {
	var buf bytes.Buffer
	_, err := resolvePaths(newStderrCommand(&buf), []string{filepath.Join(t.TempDir(), "ghost.txt")})
	if err == nil {
		t.Fatal("expected an error when nothing exists")
	}
}

func TestSessionRecord_CorruptKeepsStore(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	store := history.NewJSONStore(path)
	rec, kept := sessionRecord(newStderrCommand(&buf), store)

	if kept == nil {
		t.Error("corrupt history should not disable persistence")
	}
	if len(rec.Shortcuts) != 0 || len(rec.OrganizedPaths()) != 0 {
		t.Error("expected an empty record")
	}
	if buf.Len() == 0 {
		t.Error("expected a corruption warning")
	}

	// The corrupt file is untouched until a successful save
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{not json" {
		t.Error("corrupt file was modified by load")
	}
}
