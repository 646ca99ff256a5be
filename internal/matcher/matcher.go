// Package matcher picks the site show that best corresponds to a free-form title.
package matcher

import (
	"regexp"
	"strings"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"

	"golang.org/x/text/cases"
)

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// StripName removes every character outside [A-Za-z0-9 ] from a show name,
// so "Grey's Anatomy" compares as "Greys Anatomy".
func StripName(name string) string {
	return nonAlphanumeric.ReplaceAllString(name, "")
}

// MatchShow returns the first show whose stripped name equals query ignoring
// case, and failing that the first one containing it. Shows are considered in
// list order.
func MatchShow(query string, shows []models.Show) (models.Show, error) {
	logger := config.GetLogger()
	folder := cases.Fold()
	needle := folder.String(query)

	stripped := make([]string, len(shows))
	for i, s := range shows {
		stripped[i] = folder.String(StripName(s.Name))
	}

	for i, name := range stripped {
		if name == needle {
			logger.Debug().Str("query", query).Str("show", shows[i].Name).Str("id", shows[i].ID).Msg("Exact show match")
			return shows[i], nil
		}
	}
	for i, name := range stripped {
		if strings.Contains(name, needle) {
			logger.Debug().Str("query", query).Str("show", shows[i].Name).Str("id", shows[i].ID).Msg("Partial show match")
			return shows[i], nil
		}
	}

	return models.Show{}, &apperrors.ErrShowNotFound{Name: query}
}
