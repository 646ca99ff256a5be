package client

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/Belphemur/Addic7edSubtitles/internal/cache"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
)

// cacheStatusHeader is set on responses replayed from the cache.
const cacheStatusHeader = "X-Addic7ed-Cache"

// cacheTransport answers GET requests from the response cache and stores
// every fresh 200 response under its URL. Freshness is the cache TTL.
type cacheTransport struct {
	next  http.RoundTripper
	cache cache.Cache
}

func newCacheTransport(next http.RoundTripper, c cache.Cache) http.RoundTripper {
	return &cacheTransport{next: next, cache: c}
}

func (t *cacheTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.next.RoundTrip(req)
	}

	logger := config.GetLogger()
	key := req.URL.String()

	if data, ok := t.cache.Get(key); ok {
		resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(data)), req)
		if err == nil {
			resp.Header.Set(cacheStatusHeader, "hit")
			logger.Debug().Str("url", key).Msg("Serving response from cache")
			return resp, nil
		}
		logger.Warn().Err(err).Str("url", key).Msg("Dropping unreadable cache entry")
		t.cache.Delete(key)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		return resp, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	// Store a self-describing HTTP/1.1 message with an exact length.
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	resp.TransferEncoding = nil
	resp.Header.Del("Content-Length")

	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		logger.Warn().Err(err).Str("url", key).Msg("Failed to serialize response for cache")
	} else {
		t.cache.Set(key, dump)
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.Header.Set(cacheStatusHeader, "miss")
	return resp, nil
}

// cacheLogger forwards provider errors to the application logger.
type cacheLogger struct{}

func (cacheLogger) Error(msg string, err error) {
	logger := config.GetLogger()
	logger.Error().Err(err).Msg(msg)
}
