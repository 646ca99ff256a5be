package parser

import (
	"io"
	"regexp"
	"strings"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// subtitleBlockSelector matches the inner table of each version. The outer
// container is also a tabel95 but carries none of these attributes.
const subtitleBlockSelector = `table.tabel95[width="100%"][border="0"][align="center"]`

// versionPattern extracts the release group from "Version LOL, 0.00 MBs".
var versionPattern = regexp.MustCompile(`Version (.*?),`)

// SubtitleParser extracts the subtitle candidates of an episode page.
type SubtitleParser struct{}

// NewSubtitleParser creates a new subtitle parser instance
func NewSubtitleParser() *SubtitleParser {
	return &SubtitleParser{}
}

// ParseHtml returns one candidate per language row of every version block, in
// page order. A block without a version title, a language cell or a download
// button fails the whole page.
func (p *SubtitleParser) ParseHtml(body io.Reader) ([]models.Subtitle, error) {
	logger := config.GetLogger()
	logger.Debug().Msg("Starting HTML parsing for subtitles")

	doc, err := newDocument(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, err
	}

	var subtitles []models.Subtitle
	var parseErr error
	doc.Find(subtitleBlockSelector).EachWithBreak(func(i int, block *goquery.Selection) bool {
		candidates, err := p.extractBlock(i, block)
		if err != nil {
			parseErr = err
			return false
		}
		subtitles = append(subtitles, candidates...)
		return true
	})
	if parseErr != nil {
		logger.Error().Err(parseErr).Msg("Subtitle listing has an unexpected structure")
		return nil, parseErr
	}

	logger.Debug().Int("total_subtitles", len(subtitles)).Msg("Completed HTML parsing for subtitles")
	return subtitles, nil
}

func (p *SubtitleParser) extractBlock(index int, block *goquery.Selection) ([]models.Subtitle, error) {
	logger := config.GetLogger()

	title := block.Find("td.NewsTitle").First()
	if title.Length() == 0 {
		return nil, apperrors.NewStructureError(PageSubtitles, "block %d has no version title", index)
	}
	match := versionPattern.FindStringSubmatch(strings.TrimSpace(title.Text()))
	if match == nil {
		return nil, apperrors.NewStructureError(PageSubtitles, "block %d title %q has no version", index, strings.TrimSpace(title.Text()))
	}
	version := match[1]

	languages := block.Find("td.language")
	if languages.Length() == 0 {
		return nil, apperrors.NewStructureError(PageSubtitles, "block %d (%s) has no language", index, version)
	}

	candidates := make([]models.Subtitle, 0, languages.Length())
	languages.Each(func(_ int, cell *goquery.Selection) {
		language := strings.TrimSpace(cell.Text())
		href, ok := cell.Closest("tr").Find("a.buttonDownload").First().Attr("href")
		if !ok && languages.Length() == 1 {
			href, ok = block.Find("a.buttonDownload").First().Attr("href")
		}
		if !ok || href == "" {
			// Unfinished translations are listed without a button.
			logger.Debug().
				Str("version", version).
				Str("language", language).
				Msg("Skipping subtitle without download link")
			return
		}

		logger.Debug().
			Str("version", version).
			Str("language", language).
			Str("download", href).
			Msg("Successfully extracted subtitle")
		candidates = append(candidates, models.Subtitle{
			Version:  version,
			Language: language,
			Download: href,
		})
	})
	if len(candidates) == 0 {
		return nil, apperrors.NewStructureError(PageSubtitles, "block %d (%s) has no download link", index, version)
	}
	return candidates, nil
}
