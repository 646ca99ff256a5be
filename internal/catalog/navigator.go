// Package catalog walks the site from the home page down to the subtitle
// listing of one episode.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/matcher"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"
	"github.com/Belphemur/Addic7edSubtitles/internal/parser"
)

// PageFetcher is the part of client.Fetcher the navigator needs.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
	HomeURL() string
	SeasonsURL(showID string) string
	EpisodesURL(showID string, season int) string
	SubtitlesURL(show models.Show, season int, episode models.Episode) string
}

// Navigator resolves shows and episodes and lists their subtitles.
// It holds no state besides its parsers and is safe for concurrent use.
type Navigator struct {
	fetcher        PageFetcher
	showParser     parser.Parser[models.Show]
	languageParser parser.Parser[string]
	seasonParser   parser.Parser[int]
	episodeParser  parser.Parser[models.Episode]
	subtitleParser parser.Parser[models.Subtitle]
}

// NewNavigator creates a navigator on top of fetcher.
func NewNavigator(fetcher PageFetcher) *Navigator {
	return &Navigator{
		fetcher:        fetcher,
		showParser:     parser.NewShowParser(),
		languageParser: parser.NewLanguageParser(),
		seasonParser:   parser.NewSeasonParser(),
		episodeParser:  parser.NewEpisodeParser(),
		subtitleParser: parser.NewSubtitleParser(),
	}
}

// ListShows returns every show of the home page selector.
func (n *Navigator) ListShows(ctx context.Context) ([]models.Show, error) {
	return fetchAndParse(ctx, n.fetcher, n.fetcher.HomeURL(), n.showParser)
}

// ListLanguages returns the site language labels, in selector order.
func (n *Navigator) ListLanguages(ctx context.Context) ([]string, error) {
	return fetchAndParse(ctx, n.fetcher, n.fetcher.HomeURL(), n.languageParser)
}

// ResolveShow matches name against the home page show list.
func (n *Navigator) ResolveShow(ctx context.Context, name string) (models.Show, error) {
	logger := config.GetLogger()

	shows, err := n.ListShows(ctx)
	if err != nil {
		return models.Show{}, err
	}
	show, err := matcher.MatchShow(name, shows)
	if err != nil {
		logger.Warn().Str("show", name).Int("candidates", len(shows)).Msg("No show matches")
		return models.Show{}, err
	}
	logger.Info().Str("query", name).Str("show", show.Name).Str("id", show.ID).Msg("Resolved show")
	return show, nil
}

// ListSeasons returns the season numbers the site lists for show.
func (n *Navigator) ListSeasons(ctx context.Context, show models.Show) ([]int, error) {
	return fetchAndParse(ctx, n.fetcher, n.fetcher.SeasonsURL(show.ID), n.seasonParser)
}

// ListEpisodes returns the episode listing of one show season.
func (n *Navigator) ListEpisodes(ctx context.Context, show models.Show, season int) ([]models.Episode, error) {
	return fetchAndParse(ctx, n.fetcher, n.fetcher.EpisodesURL(show.ID, season), n.episodeParser)
}

// ResolveEpisode finds episode number in the listing of season. The season is
// not checked against ListSeasons; an unknown season simply lists nothing.
func (n *Navigator) ResolveEpisode(ctx context.Context, show models.Show, season, number int) (models.Episode, error) {
	episodes, err := n.ListEpisodes(ctx, show, season)
	if err != nil {
		return models.Episode{}, err
	}
	for _, e := range episodes {
		if e.Number == number {
			return e, nil
		}
	}
	return models.Episode{}, &apperrors.ErrEpisodeNotFound{Show: show.Name, Season: season, Episode: number}
}

// ListSubtitles returns every candidate of the episode page, in page order.
func (n *Navigator) ListSubtitles(ctx context.Context, show models.Show, season int, episode models.Episode) ([]models.Subtitle, error) {
	logger := config.GetLogger()

	subtitles, err := fetchAndParse(ctx, n.fetcher, n.fetcher.SubtitlesURL(show, season, episode), n.subtitleParser)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("show", show.Name).
		Int("season", season).
		Int("episode", episode.Number).
		Int("candidates", len(subtitles)).
		Msg("Listed subtitles")
	return subtitles, nil
}

func fetchAndParse[T any](ctx context.Context, f PageFetcher, url string, p parser.Parser[T]) ([]T, error) {
	body, err := f.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	items, err := p.ParseHtml(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return items, nil
}
