package parser

import (
	"io"

	"github.com/Belphemur/Addic7edSubtitles/internal/config"
)

// LanguageParser extracts the site language selector (#comboLang) of the home page.
// The labels are the ones subtitle listings use, e.g. "English" or "Portuguese (Brazilian)".
type LanguageParser struct{}

// NewLanguageParser creates a new language parser instance
func NewLanguageParser() *LanguageParser {
	return &LanguageParser{}
}

// ParseHtml returns the language labels in page order.
func (p *LanguageParser) ParseHtml(body io.Reader) ([]string, error) {
	logger := config.GetLogger()

	doc, err := newDocument(body)
	if err != nil {
		return nil, err
	}

	options, err := selectOptions(doc, PageHome, "comboLang")
	if err != nil {
		return nil, err
	}

	languages := make([]string, 0, len(options))
	for _, o := range options {
		if o.isSentinel() || o.text == "" {
			continue
		}
		languages = append(languages, o.text)
	}

	logger.Debug().Int("total_languages", len(languages)).Msg("Completed HTML parsing for languages")
	return languages, nil
}
