package parser

import (
	"io"
	"strconv"

	"github.com/Belphemur/Addic7edSubtitles/internal/config"
)

// seasonHeader is the placeholder option heading the season selector.
const seasonHeader = "Season"

// SeasonParser extracts the season numbers of an ajax_getSeasons.php fragment.
type SeasonParser struct{}

// NewSeasonParser creates a new season parser instance
func NewSeasonParser() *SeasonParser {
	return &SeasonParser{}
}

// ParseHtml returns the listed seasons in page order.
func (p *SeasonParser) ParseHtml(body io.Reader) ([]int, error) {
	logger := config.GetLogger()

	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	options, err := selectOptions(doc, PageSeasons, "qsiSeason")
	if err != nil {
		return nil, err
	}

	seasons := make([]int, 0, len(options))
	for _, o := range options {
		if o.isSentinel() || o.text == seasonHeader {
			continue
		}
		season, err := strconv.Atoi(o.text)
		if err != nil {
			logger.Debug().Str("text", o.text).Msg("Season option is not a number, skipping")
			continue
		}
		seasons = append(seasons, season)
	}

	logger.Debug().Ints("seasons", seasons).Msg("Completed HTML parsing for seasons")
	return seasons, nil
}
