package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
	"github.com/Belphemur/Addic7edSubtitles/internal/cache"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/metrics"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"
	"github.com/Belphemur/Addic7edSubtitles/internal/parser"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/failsafehttp"
)

// pageCacheGroup labels the response cache metrics.
const pageCacheGroup = "pages"

// Retry backoff bounds, used only when client_retries > 0.
const (
	retryDelay    = 500 * time.Millisecond
	retryMaxDelay = 5 * time.Second
)

// Fetcher is the only component talking to the site. Every request must stay
// on the configured origin. A Fetcher is safe for concurrent use.
type Fetcher interface {
	BaseURL() string
	HomeURL() string
	SeasonsURL(showID string) string
	EpisodesURL(showID string, season int) string
	SubtitlesURL(show models.Show, season int, episode models.Episode) string
	DownloadURL(href string) string

	// FetchPage returns the decoded body of an HTML page of the site.
	FetchPage(ctx context.Context, pageURL string) (string, error)
	// FetchBinary downloads a subtitle payload. A 404 is ErrSubtitleResourceNotFound.
	FetchBinary(ctx context.Context, downloadURL string, headers http.Header) ([]byte, error)

	// Close releases the response cache. It is safe to call more than once.
	Close() error
}

type fetcher struct {
	httpClient *http.Client
	base       *url.URL
	userAgent  string
	cache      cache.Cache

	closeOnce sync.Once
	closeErr  error
}

// NewFetcher builds the shared HTTP client of a run: response cache, optional
// retry policy, decompression and proxy, from the outermost layer down.
func NewFetcher(cfg *config.Config) (Fetcher, error) {
	logger := config.GetLogger()

	base, err := url.Parse(strings.TrimRight(cfg.Addic7edDomain, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid addic7ed_domain %q", cfg.Addic7edDomain)
	}

	// Clone DefaultTransport to preserve all its settings (timeouts, connection pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	var transport = newCompressionTransport(baseTransport)
	if cfg.ClientRetries > 0 {
		transport = newRetryTransport(transport, cfg.ClientRetries)
	}

	var responseCache cache.Cache
	if cfg.Cache.Provider != "" && cfg.Cache.Provider != "none" {
		responseCache, err = cache.New(cfg.Cache.Provider, cache.ProviderConfig{
			Size:          cfg.Cache.Size,
			TTL:           config.ParseDuration("cache_ttl", cfg.Cache.TTL, cache.DefaultTTL),
			Logger:        cacheLogger{},
			RedisAddress:  cfg.Cache.Redis.Address,
			RedisPassword: cfg.Cache.Redis.Password,
			RedisDB:       cfg.Cache.Redis.DB,
			Group:         pageCacheGroup,
		})
		if err != nil {
			return nil, fmt.Errorf("create response cache: %w", err)
		}
		transport = newCacheTransport(transport, responseCache)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	logger.Debug().
		Str("base", base.String()).
		Str("cache", cfg.Cache.Provider).
		Int("retries", cfg.ClientRetries).
		Msg("HTTP client configured")

	return &fetcher{
		httpClient: &http.Client{
			Timeout:   config.ParseDuration("client_timeout", cfg.ClientTimeout, 30*time.Second),
			Transport: transport,
		},
		base:      base,
		userAgent: userAgent,
		cache:     responseCache,
	}, nil
}

// newRetryTransport retries connection errors, 429 and 5xx answers.
func newRetryTransport(next http.RoundTripper, retries int) http.RoundTripper {
	policy := failsafehttp.NewRetryPolicyBuilder().
		WithMaxRetries(retries).
		WithBackoff(retryDelay, retryMaxDelay).
		ReturnLastFailure().
		OnRetry(func(e failsafe.ExecutionEvent[*http.Response]) {
			logger := config.GetLogger()
			logger.Warn().Err(e.LastError()).Int("attempt", e.Attempts()).Msg("Retrying request")
		}).
		Build()
	return failsafehttp.NewRoundTripper(next, policy)
}

// Close releases the response cache. It is safe to call more than once.
func (f *fetcher) Close() error {
	f.closeOnce.Do(func() {
		if f.cache != nil {
			f.closeErr = f.cache.Close()
		}
	})
	return f.closeErr
}

// BaseURL returns the configured origin without trailing slash.
func (f *fetcher) BaseURL() string {
	return f.base.String()
}

// HomeURL is the page listing every show and language.
func (f *fetcher) HomeURL() string {
	return f.base.String() + "/"
}

// SeasonsURL is the season selector fragment of a show.
func (f *fetcher) SeasonsURL(showID string) string {
	return f.endpoint("ajax_getSeasons.php", url.Values{"showID": {showID}})
}

// EpisodesURL is the episode selector fragment of a show season.
func (f *fetcher) EpisodesURL(showID string, season int) string {
	return f.endpoint("ajax_getEpisodes.php", url.Values{
		"showID": {showID},
		"season": {strconv.Itoa(season)},
	})
}

// SubtitlesURL is the subtitle listing of an episode:
// /serie/<show>/<season>/<number>/<episode name>, spaces written as underscores.
func (f *fetcher) SubtitlesURL(show models.Show, season int, episode models.Episode) string {
	segments := []string{
		"serie",
		urlName(show.Name),
		strconv.Itoa(season),
		strconv.Itoa(episode.Number),
		urlName(episode.Name),
	}
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return f.base.JoinPath(segments...).String()
}

// DownloadURL resolves the href of a download button against the site root.
func (f *fetcher) DownloadURL(href string) string {
	if u, err := url.Parse(href); err == nil && u.IsAbs() {
		return href
	}
	return f.base.String() + "/" + strings.TrimPrefix(href, "/")
}

func (f *fetcher) endpoint(path string, query url.Values) string {
	u := f.base.JoinPath(path)
	u.RawQuery = query.Encode()
	return u.String()
}

func urlName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// FetchPage returns the body of a site page as text.
func (f *fetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	body, err := f.get(ctx, pageURL, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchBinary downloads a subtitle payload. The request carries the download
// URL as Referer, which the site requires. A 404 is reported as
// ErrSubtitleResourceNotFound.
func (f *fetcher) FetchBinary(ctx context.Context, downloadURL string, headers http.Header) ([]byte, error) {
	h := http.Header{}
	h.Set("Referer", downloadURL)
	for k, v := range headers {
		h[k] = append([]string(nil), v...)
	}

	body, err := f.get(ctx, downloadURL, h)
	if err != nil {
		var status *ErrUnexpectedStatus
		if errors.As(err, &status) && status.StatusCode == http.StatusNotFound {
			metrics.SubtitleDownloadsTotal.WithLabelValues("not_found").Inc()
			return nil, &apperrors.ErrSubtitleResourceNotFound{URL: downloadURL}
		}
		metrics.SubtitleDownloadsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.SubtitleDownloadsTotal.WithLabelValues("success").Inc()
	return body, nil
}

func (f *fetcher) get(ctx context.Context, rawURL string, headers http.Header) ([]byte, error) {
	logger := config.GetLogger()

	target, err := f.checkOrigin(rawURL)
	if err != nil {
		return nil, err
	}
	page := pageKind(target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range headers {
		req.Header[k] = v
	}

	logger.Debug().Str("url", req.URL.String()).Str("page", page).Msg("Fetching")
	resp, err := f.httpClient.Do(req)
	if err != nil {
		metrics.PageFetchesTotal.WithLabelValues(page, "error").Inc()
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	metrics.PageFetchesTotal.WithLabelValues(page, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		logger.Warn().Str("url", rawURL).Int("status", resp.StatusCode).Msg("Unexpected status code")
		return nil, &ErrUnexpectedStatus{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}
	return body, nil
}

// checkOrigin rejects URLs outside of the configured scheme and host.
func (f *fetcher) checkOrigin(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if !strings.EqualFold(u.Scheme, f.base.Scheme) || !strings.EqualFold(u.Host, f.base.Host) {
		return nil, &ErrForeignOrigin{URL: rawURL, Base: f.base.String()}
	}
	return u, nil
}

// pageKind names the endpoint of u for metrics and logs.
func pageKind(u *url.URL) string {
	p := u.Path
	switch {
	case strings.HasSuffix(p, "/ajax_getSeasons.php"):
		return parser.PageSeasons
	case strings.HasSuffix(p, "/ajax_getEpisodes.php"):
		return parser.PageEpisodes
	case strings.Contains(p, "/serie/"):
		return parser.PageSubtitles
	case p == "" || strings.HasSuffix(p, "/"):
		return parser.PageHome
	default:
		return "download"
	}
}
