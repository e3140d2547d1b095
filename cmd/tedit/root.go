package main

import (
	"github.com/spf13/cobra"

	"github.com/kobzarvs/tedit/internal/app"
)

func newRootCmd() *cobra.Command {
	var opts app.Options
	cmd := &cobra.Command{
		Use:           "tedit [file]",
		Short:         "A small terminal text editor",
		Long:          `tedit edits one text file in the terminal with word-wrap reflow and single-character undo.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("max-width") {
				opts.MaxWidth = -1
			}
			return app.New(args, opts).Run()
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "",
		"config file (default: ~/.config/tedit/config.toml)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "",
		"log file (default: ~/.config/tedit/tedit.log)")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false,
		"log at debug level")
	cmd.Flags().IntVar(&opts.MaxWidth, "max-width", 0,
		"reflow width, 0 follows the terminal width")
	cmd.Flags().BoolVar(&opts.NoWrapCursor, "no-wrap-cursor", false,
		"stop left/right movement at line boundaries")
	return cmd
}
