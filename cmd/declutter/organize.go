package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"declutter/internal/config"
	"declutter/internal/history"
	"declutter/internal/model"
	"declutter/internal/pathutil"
	"declutter/internal/tui"
)

type organizeOptions struct {
	historyPath   string
	ignoreHistory bool
	noSave        bool
	showOrganized bool
	quiet         bool
	flagged       flagged
}

// flagged records which flags were set explicitly, so config values only
// apply when the flag was left alone.
type flagged struct {
	history       bool
	showOrganized bool
	quiet         bool
}

func runOrganize(cmd *cobra.Command, opts organizeOptions, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("declutter needs an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyConfig(&opts, cfg)

	// History trouble never blocks the session: a corrupt file degrades to an
	// empty in-memory record, an unusable path disables persistence for this
	// run. Moves are the source of truth either way.
	store, err := openStore(opts)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot open history: %v; continuing without persistence\n", err)
		store = nil
	}

	rec := history.NewRecord()
	if store != nil && !opts.ignoreHistory {
		rec, store = sessionRecord(cmd, store)
	}

	paths, err := resolvePaths(cmd, args)
	if err != nil {
		return err
	}

	queue := model.NewSessionQueue(paths, rec.IsOrganized, opts.showOrganized)
	if queue.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No new files found!")
		return nil
	}

	var persist func(*history.Record) error
	if store != nil && !opts.noSave {
		persist = store.Save
	}

	app := tui.NewApp(tui.AppParams{
		Queue:    queue,
		Registry: rec.Registry(),
		Record:   rec,
		Persist:  persist,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running session: %w", err)
	}
	final := finalModel.(tui.App)

	if store != nil && !opts.noSave {
		if err := store.Save(final.Record()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not save history: %v\n", err)
		}
	}
	if err := final.PersistErr(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: a mid-session save failed: %v\n", err)
	}

	if !opts.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(final.Items()))
	}
	return nil
}

// loadConfig reads the config file, creating it with defaults on first run.
func loadConfig() (*config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("locating config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyConfig fills in options the user did not set on the command line.
func applyConfig(opts *organizeOptions, cfg *config.Config) {
	if !opts.flagged.history && opts.historyPath == "" {
		opts.historyPath = cfg.HistoryPath
	}
	if !opts.flagged.showOrganized {
		opts.showOrganized = cfg.ShowOrganized
	}
	if !opts.flagged.quiet {
		opts.quiet = cfg.Quiet
	}
}

func openStore(opts organizeOptions) (history.Store, error) {
	if opts.historyPath == "" {
		return history.OpenDefault()
	}
	path, err := pathutil.ExpandHome(opts.historyPath)
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

// loadRecord loads the history, degrading to an empty record on a corrupt
// file. The file itself is left alone until the next successful save.
func loadRecord(cmd *cobra.Command, store history.Store) (*history.Record, error) {
	rec, err := store.Load()
	var corrupt *history.CorruptError
	if errors.As(err, &corrupt) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; starting with empty history\n", corrupt)
		return history.NewRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return rec, nil
}

// sessionRecord loads the history for an interactive run. A corrupt file
// degrades to an empty record; any other read failure additionally turns off
// persistence, since the same path is unlikely to accept the save.
func sessionRecord(cmd *cobra.Command, store history.Store) (*history.Record, history.Store) {
	rec, err := store.Load()
	if err == nil {
		return rec, store
	}

	var corrupt *history.CorruptError
	if errors.As(err, &corrupt) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; starting with empty history\n", corrupt)
		return history.NewRecord(), store
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot read history: %v; continuing without persistence\n", err)
	return history.NewRecord(), nil
}

// resolvePaths canonicalizes the arguments and drops ones that do not exist,
// with a warning each. Duplicates are removed downstream by the queue.
func resolvePaths(cmd *cobra.Command, args []string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		path, err := pathutil.Canonical(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", arg, err)
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipping %s: %v\n", arg, err)
			continue
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil, errors.New("none of the given paths exist")
	}
	return paths, nil
}
