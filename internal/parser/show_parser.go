package parser

import (
	"io"

	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"
)

// ShowParser extracts the show selector (#qsShow) of the home page.
type ShowParser struct{}

// NewShowParser creates a new show parser instance
func NewShowParser() *ShowParser {
	return &ShowParser{}
}

// ParseHtml returns every show of the home page in page order.
// Options without a value or a name are skipped.
func (p *ShowParser) ParseHtml(body io.Reader) ([]models.Show, error) {
	logger := config.GetLogger()
	logger.Debug().Msg("Starting HTML parsing for shows")

	doc, err := newDocument(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, err
	}

	options, err := selectOptions(doc, PageHome, "qsShow")
	if err != nil {
		return nil, err
	}

	shows := make([]models.Show, 0, len(options))
	for i, o := range options {
		if o.isSentinel() {
			continue
		}
		if !o.hasValue || o.value == "" {
			logger.Debug().Int("option", i).Str("text", o.text).Msg("Show option missing value attribute, skipping")
			continue
		}
		if o.text == "" {
			logger.Debug().Int("option", i).Str("id", o.value).Msg("Show option without a name, skipping")
			continue
		}
		shows = append(shows, models.Show{Name: o.text, ID: o.value})
	}

	logger.Debug().Int("total_shows", len(shows)).Msg("Completed HTML parsing for shows")
	return shows, nil
}
