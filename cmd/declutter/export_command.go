package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"declutter/internal/exporter"
)

func newExportCommand() *cobra.Command {
	var historyPath string

	cmd := &cobra.Command{
		Use:   "export [output.html]",
		Short: "Write the history as a Netscape-style HTML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(organizeOptions{historyPath: historyPath})
			if err != nil {
				return err
			}
			rec, err := loadRecord(cmd, store)
			if err != nil {
				return err
			}

			outputPath := ""
			if len(args) > 0 {
				outputPath = args[0]
			}
			if outputPath == "" {
				outputPath, err = exporter.DefaultExportPath()
				if err != nil {
					return fmt.Errorf("resolving export path: %w", err)
				}
			}

			if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(rec)), 0644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d shortcut(s), %d organized path(s) to %s\n",
				len(rec.Shortcuts), len(rec.OrganizedPaths()), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&historyPath, "history", "", "History file path (.json or .db)")
	return cmd
}
