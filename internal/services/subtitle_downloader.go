package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Belphemur/Addic7edSubtitles/internal/models"
)

// SubtitleDownloader picks one candidate of an episode listing and downloads it.
type SubtitleDownloader interface {
	// SelectAndDownload resolves the episode of show, filters its listing by
	// language and release group and downloads the first survivor. A result
	// with Found() false is returned, not an error, when nothing survives.
	SelectAndDownload(ctx context.Context, show models.Show, season, episode int, language, releaseGroup string) (*models.DownloadResult, error)

	// Download resolves req.ShowName first and then behaves like SelectAndDownload.
	Download(ctx context.Context, req models.DownloadRequest) (*models.DownloadResult, error)
}

// Catalog is the navigation the downloader depends on.
type Catalog interface {
	ResolveShow(ctx context.Context, name string) (models.Show, error)
	ResolveEpisode(ctx context.Context, show models.Show, season, number int) (models.Episode, error)
	ListSubtitles(ctx context.Context, show models.Show, season int, episode models.Episode) ([]models.Subtitle, error)
}

// BinaryFetcher downloads subtitle payloads.
type BinaryFetcher interface {
	DownloadURL(href string) string
	FetchBinary(ctx context.Context, url string, headers http.Header) ([]byte, error)
}

// SelectionPolicy decides what an empty release group filter accepts.
type SelectionPolicy string

const (
	// PolicyFirst accepts the first candidate in the requested language.
	PolicyFirst SelectionPolicy = "first"
	// PolicyStrict accepts nothing without a release group.
	PolicyStrict SelectionPolicy = "strict"
)

// ParseSelectionPolicy validates a configured policy name. Empty means PolicyFirst.
func ParseSelectionPolicy(name string) (SelectionPolicy, error) {
	switch SelectionPolicy(name) {
	case "", PolicyFirst:
		return PolicyFirst, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown selection policy %q (want %q or %q)", name, PolicyFirst, PolicyStrict)
	}
}
