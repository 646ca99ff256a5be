package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Belphemur/Addic7edSubtitles/internal/models"
)

// Site is an in-memory addic7ed.com served by NewSiteServer.
type Site struct {
	Shows     []ShowOption
	Languages []string
	Seasons   map[string][]int                  // show ID -> seasons
	Episodes  map[string][]models.Episode       // EpisodesKey(showID, season) -> episodes
	Subtitles map[string][]SubtitleBlockOptions // decoded URL path -> blocks
	Files     map[string][]byte                 // download path -> payload
	Pages     map[string]string                 // request URI -> verbatim markup, checked first

	mu       sync.Mutex
	requests []*http.Request
}

// EpisodesKey builds the Site.Episodes key.
func EpisodesKey(showID string, season int) string {
	return fmt.Sprintf("%s/%d", showID, season)
}

// Requests returns a copy of every request received so far.
func (s *Site) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

// RequestCount returns the number of requests received so far.
func (s *Site) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// NewSiteServer starts an httptest server answering the scraped endpoints from site.
// The server is closed when the test ends.
func NewSiteServer(t *testing.T, site *Site) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site.mu.Lock()
		site.requests = append(site.requests, r.Clone(r.Context()))
		site.mu.Unlock()

		if page, ok := site.Pages[r.URL.RequestURI()]; ok {
			writeHTML(w, page)
			return
		}

		switch r.URL.Path {
		case "/":
			writeHTML(w, GenerateHomeHTML(site.Shows, site.Languages))
			return
		case "/ajax_getSeasons.php":
			showID := r.URL.Query().Get("showID")
			writeHTML(w, GenerateSeasonsHTML(showID, site.Seasons[showID]))
			return
		case "/ajax_getEpisodes.php":
			showID := r.URL.Query().Get("showID")
			key := fmt.Sprintf("%s/%s", showID, r.URL.Query().Get("season"))
			season := 0
			_, _ = fmt.Sscanf(r.URL.Query().Get("season"), "%d", &season)
			writeHTML(w, GenerateEpisodesHTML(showID, season, site.Episodes[key]))
			return
		}

		if blocks, ok := site.Subtitles[r.URL.Path]; ok {
			writeHTML(w, GenerateSubtitlePageHTML(blocks))
			return
		}
		if payload, ok := site.Files[r.URL.Path]; ok {
			w.Header().Set("Content-Type", "text/srt")
			_, _ = w.Write(payload)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
