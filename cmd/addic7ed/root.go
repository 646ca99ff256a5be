package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevel string

	ctx := newCommandContext(&configFlag)
	opts := &downloadOptions{}

	rootCmd := &cobra.Command{
		Use:           "addic7ed [flags] FILE...",
		Short:         "Download addic7ed.com subtitles for TV episode files",
		Long:          "Download addic7ed.com subtitles for TV episode files.\n\nWithout a subcommand the files given are processed like with \"download\".",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.load(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runDownload(cmd, ctx, opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	addDownloadFlags(rootCmd, opts)

	rootCmd.AddCommand(newDownloadCommand(ctx))
	rootCmd.AddCommand(newLanguagesCommand(ctx))
	rootCmd.AddCommand(newShowsCommand(ctx))
	rootCmd.AddCommand(newSubtitlesCommand(ctx))

	return rootCmd
}
