package parser

import (
	"io"
	"regexp"
	"strconv"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"
)

// episodePattern matches option texts like "5. Fairytale".
var episodePattern = regexp.MustCompile(`^([0-9]+)\. (.*)$`)

// EpisodeParser extracts the episodes of an ajax_getEpisodes.php fragment.
type EpisodeParser struct{}

// NewEpisodeParser creates a new episode parser instance
func NewEpisodeParser() *EpisodeParser {
	return &EpisodeParser{}
}

// ParseHtml returns the listed episodes in page order.
// An option text that is not "<number>. <name>" fails the whole page
// instead of being dropped.
func (p *EpisodeParser) ParseHtml(body io.Reader) ([]models.Episode, error) {
	logger := config.GetLogger()

	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	options, err := selectOptions(doc, PageEpisodes, "qsiEp")
	if err != nil {
		return nil, err
	}

	episodes := make([]models.Episode, 0, len(options))
	for i, o := range options {
		if o.isSentinel() {
			continue
		}
		if !o.hasValue {
			logger.Debug().Int("option", i).Str("text", o.text).Msg("Episode option missing value attribute, skipping")
			continue
		}

		match := episodePattern.FindStringSubmatch(o.text)
		if match == nil {
			logger.Error().Str("text", o.text).Msg("Episode option has an invalid format")
			return nil, apperrors.NewStructureError(PageEpisodes, "invalid episode format %q", o.text)
		}
		number, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, apperrors.NewStructureError(PageEpisodes, "invalid episode number %q", match[1])
		}
		episodes = append(episodes, models.Episode{Number: number, Name: match[2]})
	}

	logger.Debug().Int("total_episodes", len(episodes)).Msg("Completed HTML parsing for episodes")
	return episodes, nil
}
