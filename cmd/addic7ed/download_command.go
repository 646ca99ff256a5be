package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Belphemur/Addic7edSubtitles/internal/batch"
	"github.com/Belphemur/Addic7edSubtitles/internal/catalog"
	"github.com/Belphemur/Addic7edSubtitles/internal/client"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/language"
	"github.com/Belphemur/Addic7edSubtitles/internal/metrics"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"
	"github.com/Belphemur/Addic7edSubtitles/internal/probe"
	"github.com/Belphemur/Addic7edSubtitles/internal/resolver"
	"github.com/Belphemur/Addic7edSubtitles/internal/services"
)

type downloadOptions struct {
	language           string
	concurrency        int
	embedded           bool
	force              bool
	ignoreReleaseGroup bool
}

func addDownloadFlags(cmd *cobra.Command, opts *downloadOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.language, "language", "l", "", "Subtitle language, site label or ISO 639 code (default from config, French)")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "Files processed at the same time (default from config, 4)")
	flags.BoolVarP(&opts.embedded, "embedded", "e", false, "Skip files already embedding a subtitle in the language")
	flags.BoolVarP(&opts.force, "force", "f", false, "Overwrite existing subtitle files")
	flags.BoolVarP(&opts.ignoreReleaseGroup, "ignore-release-group", "i", false, "Pick a subtitle without matching the release group")
}

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	opts := &downloadOptions{}
	cmd := &cobra.Command{
		Use:   "download FILE...",
		Short: "Download the subtitle of every file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, ctx, opts, args)
		},
	}
	addDownloadFlags(cmd, opts)
	return cmd
}

func runDownload(cmd *cobra.Command, ctx *commandContext, opts *downloadOptions, files []string) error {
	cfg := ctx.config
	logger := config.GetLogger()

	policy, err := services.ParseSelectionPolicy(cfg.SelectionPolicy)
	if err != nil {
		return err
	}

	var results []models.FileResult
	err = ctx.withNavigator(func(fetcher client.Fetcher, nav *catalog.Navigator) error {
		downloader := services.NewSubtitleDownloader(nav, fetcher, policy)
		runner := batch.NewRunner(downloader, resolver.NewPTNResolver(), probe.NewFFProbe(""), batch.Options{
			Language:           language.ToSiteLabel(cfg.Language),
			Embedded:           opts.embedded,
			Force:              opts.force,
			IgnoreReleaseGroup: opts.ignoreReleaseGroup,
			Concurrency:        cfg.Concurrency,
		})
		results = runner.Run(cmd.Context(), files)
		return nil
	})
	if err != nil {
		return err
	}

	if err := batch.WriteReport(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn().Err(err).Msg("Failed to write metrics")
		}
	}
	if err := batch.Err(results); err != nil {
		return fmt.Errorf("some files failed:\n%w", err)
	}
	return nil
}
