package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"declutter/internal/history"
	"declutter/internal/importer"
)

func newImportCommand() *cobra.Command {
	var historyPath string

	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Merge shortcuts and organized paths from an exported HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(organizeOptions{historyPath: historyPath})
			if err != nil {
				return err
			}
			rec, err := loadRecord(cmd, store)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer file.Close()

			shortcuts, paths, err := importHistory(file, rec)
			if err != nil {
				return err
			}

			if err := store.Save(rec); err != nil {
				return fmt.Errorf("saving history: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d shortcut(s), %d organized path(s)\n",
				shortcuts, paths)
			return nil
		},
	}

	cmd.Flags().StringVar(&historyPath, "history", "", "History file path (.json or .db)")
	return cmd
}

// importHistory merges the parsed file into rec and returns how many
// shortcuts and organized paths it contributed.
func importHistory(r io.Reader, rec *history.Record) (int, int, error) {
	shortcuts, paths, err := importer.ParseHistoryHTML(r)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing import file: %w", err)
	}

	for _, s := range shortcuts {
		rec.SetShortcut(s)
	}
	added := 0
	for _, p := range paths {
		if !rec.IsOrganized(p) {
			if err := rec.MarkOrganized(p); err != nil {
				continue
			}
			added++
		}
	}
	return len(shortcuts), added, nil
}
