package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"
)

// DefaultSubtitleDownloader implements SubtitleDownloader on a Catalog.
type DefaultSubtitleDownloader struct {
	catalog Catalog
	fetcher BinaryFetcher
	policy  SelectionPolicy
}

// NewSubtitleDownloader creates a downloader applying policy when no release
// group is given.
func NewSubtitleDownloader(catalog Catalog, fetcher BinaryFetcher, policy SelectionPolicy) SubtitleDownloader {
	if policy == "" {
		policy = PolicyFirst
	}
	return &DefaultSubtitleDownloader{catalog: catalog, fetcher: fetcher, policy: policy}
}

// Download resolves the show of req and selects its subtitle.
func (d *DefaultSubtitleDownloader) Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error) {
	show, err := d.catalog.ResolveShow(ctx, req.ShowName)
	if err != nil {
		return nil, err
	}
	return d.SelectAndDownload(ctx, show, req.Season, req.Episode, req.Language, req.ReleaseGroup)
}

// SelectAndDownload implements SubtitleDownloader.
func (d *DefaultSubtitleDownloader) SelectAndDownload(ctx context.Context, show models.Show, season, episodeNumber int, language, releaseGroup string) (*models.DownloadResult, error) {
	logger := config.GetLogger()

	episode, err := d.catalog.ResolveEpisode(ctx, show, season, episodeNumber)
	if err != nil {
		return nil, err
	}
	candidates, err := d.catalog.ListSubtitles(ctx, show, season, episode)
	if err != nil {
		return nil, err
	}

	result := &models.DownloadResult{Show: show, Episode: episode, Candidates: candidates}
	chosen := SelectSubtitle(candidates, language, releaseGroup, d.policy)
	if chosen == nil {
		listing := make([]string, len(candidates))
		for i, c := range candidates {
			listing[i] = c.String()
		}
		logger.Warn().
			Str("show", show.Name).
			Int("season", season).
			Int("episode", episodeNumber).
			Str("language", language).
			Str("releaseGroup", releaseGroup).
			Strs("candidates", listing).
			Msg("No matching subtitle")
		return result, nil
	}

	downloadURL := d.fetcher.DownloadURL(chosen.Download)
	logger.Info().
		Str("show", show.Name).
		Int("season", season).
		Int("episode", episodeNumber).
		Str("version", chosen.Version).
		Str("language", chosen.Language).
		Str("url", downloadURL).
		Msg("Downloading subtitle")

	content, err := d.fetcher.FetchBinary(ctx, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download subtitle: %w", err)
	}
	result.Subtitle = chosen
	result.Content = content
	return result, nil
}

// SelectSubtitle returns the first candidate, in listing order, whose
// language equals language and whose version contains releaseGroup. With an
// empty releaseGroup the policy decides. Nil means no candidate survives.
func SelectSubtitle(candidates []models.Subtitle, language, releaseGroup string, policy SelectionPolicy) *models.Subtitle {
	if releaseGroup == "" && policy == PolicyStrict {
		return nil
	}
	for i := range candidates {
		c := candidates[i]
		if c.Language != language {
			continue
		}
		if releaseGroup != "" && !strings.Contains(c.Version, releaseGroup) {
			continue
		}
		return &c
	}
	return nil
}
