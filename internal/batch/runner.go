// Package batch processes a list of media files independently and concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/language"
	"github.com/Belphemur/Addic7edSubtitles/internal/metrics"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"
	"github.com/Belphemur/Addic7edSubtitles/internal/probe"
	"github.com/Belphemur/Addic7edSubtitles/internal/resolver"
	"github.com/Belphemur/Addic7edSubtitles/internal/services"
	"github.com/Belphemur/Addic7edSubtitles/internal/telemetry"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the files processed at the same time.
const DefaultConcurrency = 4

// subtitleExt is the extension of every written subtitle.
const subtitleExt = ".srt"

// Options controls one batch run.
type Options struct {
	Language           string // Site language label, e.g. "French"
	Embedded           bool   // Skip files already carrying a subtitle stream in Language
	Force              bool   // Overwrite existing subtitle files
	IgnoreReleaseGroup bool   // Select without release group filter
	Concurrency        int
}

// Runner downloads the subtitle of every file of a batch.
type Runner struct {
	downloader services.SubtitleDownloader
	resolver   resolver.Resolver
	prober     probe.Prober
	opts       Options
}

// NewRunner creates a runner. prober may be nil when opts.Embedded is off.
func NewRunner(downloader services.SubtitleDownloader, res resolver.Resolver, prober probe.Prober, opts Options) *Runner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Runner{downloader: downloader, resolver: res, prober: prober, opts: opts}
}

// OutputPath is the subtitle path written for a media file.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + subtitleExt
}

// Run processes every path and returns one result per path, in input order.
// A failing file never stops the others.
func (r *Runner) Run(ctx context.Context, paths []string) []models.FileResult {
	results := make([]models.FileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(r.opts.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = r.Process(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Process runs the whole workflow for one media file.
func (r *Runner) Process(ctx context.Context, path string) models.FileResult {
	logger := config.GetLogger()

	result := r.process(ctx, path)
	metrics.FileOutcomesTotal.WithLabelValues(string(result.Status)).Inc()

	var structErr *apperrors.ErrStructure
	if errors.As(result.Err, &structErr) {
		metrics.StructureErrorsTotal.WithLabelValues(structErr.Page).Inc()
		telemetry.ReportStructureError(path, structErr.Page, result.Err)
		logger.Error().
			Err(result.Err).
			Str("path", path).
			Str("page", structErr.Page).
			Msg("SITE LAYOUT CHANGED: the addic7ed pages no longer match the expected structure")
	} else if result.Err != nil {
		logger.Error().Err(result.Err).Str("path", path).Msg("Failed to process file")
	}
	return result
}

func (r *Runner) process(ctx context.Context, path string) models.FileResult {
	logger := config.GetLogger()
	output := OutputPath(path)
	result := models.FileResult{Path: path, Output: output}

	if r.opts.Embedded && r.prober != nil {
		tags := r.prober.SubtitleLanguages(ctx, path)
		if language.AnyMatches(tags, r.opts.Language) {
			logger.Info().Str("path", path).Strs("embedded", tags).Msg("Subtitle already embedded")
			result.Status = models.StatusSkippedEmbedded
			return result
		}
	}

	if !r.opts.Force {
		if _, err := os.Stat(output); err == nil {
			logger.Info().Str("path", path).Str("output", output).Msg("Subtitle already present")
			result.Status = models.StatusSkippedPresent
			return result
		}
	}

	identity, err := r.resolver.Resolve(path)
	if err != nil {
		return failed(result, err)
	}
	releaseGroup := identity.ReleaseGroup
	if r.opts.IgnoreReleaseGroup {
		releaseGroup = ""
	} else if releaseGroup == "" {
		return failed(result, &apperrors.ErrMissingIdentityField{Path: path, Field: "release_group"})
	}

	logger.Info().
		Str("path", path).
		Str("show", identity.Title).
		Int("season", identity.Season).
		Int("episode", identity.Episode).
		Str("releaseGroup", releaseGroup).
		Str("language", r.opts.Language).
		Msg("Searching subtitle")

	download, err := r.downloader.Download(ctx, models.DownloadRequest{
		ShowName:     identity.Title,
		Season:       identity.Season,
		Episode:      identity.Episode,
		Language:     r.opts.Language,
		ReleaseGroup: releaseGroup,
	})
	if err != nil {
		return failed(result, err)
	}
	if !download.Found() {
		result.Status = models.StatusNotFound
		result.Candidates = download.Candidates
		return result
	}

	if err := writeSubtitle(output, download.Content, r.opts.Force); err != nil {
		return failed(result, err)
	}
	logger.Info().
		Str("output", output).
		Str("version", download.Subtitle.Version).
		Int("size", len(download.Content)).
		Msg("Subtitle written")
	result.Status = models.StatusDownloaded
	return result
}

func failed(result models.FileResult, err error) models.FileResult {
	result.Status = models.StatusError
	result.Err = err
	return result
}

// writeSubtitle stores content untouched. Without force an existing file is
// never replaced, even one created after the presence check.
func writeSubtitle(path string, content []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return &apperrors.ErrIO{Path: path, Err: err}
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return &apperrors.ErrIO{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &apperrors.ErrIO{Path: path, Err: err}
	}
	return nil
}

// Err joins the errors of failed files, nil when none failed.
func Err(results []models.FileResult) error {
	var errs []error
	for _, res := range results {
		if res.Status == models.StatusError {
			errs = append(errs, fmt.Errorf("%s: %w", res.Path, res.Err))
		}
	}
	return errors.Join(errs...)
}
