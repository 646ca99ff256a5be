package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Belphemur/Addic7edSubtitles/internal/catalog"
	"github.com/Belphemur/Addic7edSubtitles/internal/client"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the subtitle languages of the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withNavigator(func(_ client.Fetcher, nav *catalog.Navigator) error {
				languages, err := nav.ListLanguages(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, l := range languages {
					fmt.Fprintln(out, l)
				}
				return nil
			})
		},
	}
}

func newShowsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shows [QUERY]",
		Short: "List the shows of the site, or the one QUERY resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withNavigator(func(_ client.Fetcher, nav *catalog.Navigator) error {
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					show, err := nav.ResolveShow(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s\t%s\n", show.ID, show.Name)
					return nil
				}

				shows, err := nav.ListShows(cmd.Context())
				if err != nil {
					return err
				}
				for _, s := range shows {
					fmt.Fprintf(out, "%s\t%s\n", s.ID, s.Name)
				}
				return nil
			})
		},
	}
}

func newSubtitlesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "subtitles SHOW SEASON EPISODE",
		Short: "List the subtitle candidates of an episode",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid season %q: %w", args[1], err)
			}
			number, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid episode %q: %w", args[2], err)
			}

			return ctx.withNavigator(func(_ client.Fetcher, nav *catalog.Navigator) error {
				show, err := nav.ResolveShow(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				episode, err := nav.ResolveEpisode(cmd.Context(), show, season, number)
				if err != nil {
					return err
				}
				subtitles, err := nav.ListSubtitles(cmd.Context(), show, season, episode)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s S%02dE%02d %s\n", show.Name, season, episode.Number, episode.Name)
				for _, s := range subtitles {
					fmt.Fprintf(out, "%s\t%s\t%s\n", s.Version, s.Language, s.Download)
				}
				return nil
			})
		},
	}
}
