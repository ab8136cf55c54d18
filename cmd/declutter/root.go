package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var opts organizeOptions

	rootCmd := &cobra.Command{
		Use:   "declutter [flags] <paths...>",
		Short: "Sort files into destination folders with one-key shortcuts",
		Long: `declutter walks you through a list of files one at a time. Each file is
either moved to a destination you bound to a single key, kept where it is,
or skipped. Decisions are remembered, so files you already handled stay out
of the next run.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.flagged = flagged{
				history:       cmd.Flags().Changed("history"),
				showOrganized: cmd.Flags().Changed("show-organized"),
				quiet:         cmd.Flags().Changed("quiet"),
			}
			return runOrganize(cmd, opts, args)
		},
	}

	rootCmd.Flags().StringVar(&opts.historyPath, "history", "", "History file path (.json or .db)")
	rootCmd.Flags().BoolVarP(&opts.ignoreHistory, "ignore-history", "i", false, "Start with an empty history (saving still occurs)")
	rootCmd.Flags().BoolVarP(&opts.noSave, "no-save", "n", false, "Do not write history")
	rootCmd.Flags().BoolVar(&opts.showOrganized, "show-organized", false, "Keep already organized files in the list")
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Skip the end-of-session summary")

	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())

	return rootCmd
}
