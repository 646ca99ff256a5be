// Package resolver guesses the episode identity of a media file from its name.
package resolver

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
	"github.com/Belphemur/Addic7edSubtitles/internal/config"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"

	ptn "github.com/razsteinmetz/go-ptn"
)

// Resolver turns a media file path into show, season, episode and release group.
type Resolver interface {
	// Resolve fails with ErrMissingIdentityField when the title, season or
	// episode cannot be guessed. An empty ReleaseGroup is not an error.
	Resolve(path string) (models.Identity, error)
}

var (
	tokenSeparators = regexp.MustCompile(`[.\s_-]+`)
	episodeMarker   = regexp.MustCompile(`(?i)^(s\d{1,3}e\d{1,3}|\d{1,2}x\d{1,3})$`)

	// specialsMarker matches season 0 markers such as S00E05 or 0x05.
	specialsMarker = regexp.MustCompile(`(?i)(^|[.\s_-])(s0{1,3}e\d{1,3}|0{1,2}x\d{1,3})([.\s_-]|$)`)
)

// PTNResolver parses scene release names.
type PTNResolver struct{}

// NewPTNResolver creates a resolver backed by go-ptn.
func NewPTNResolver() *PTNResolver {
	return &PTNResolver{}
}

// Resolve implements Resolver.
func (r *PTNResolver) Resolve(path string) (models.Identity, error) {
	logger := config.GetLogger()

	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	info, err := ptn.Parse(name)
	if err != nil {
		return models.Identity{}, &apperrors.ErrMissingIdentityField{Path: path, Field: "title"}
	}

	identity := models.Identity{
		Title:        strings.TrimSpace(info.Title),
		Season:       info.Season,
		Episode:      info.Episode,
		ReleaseGroup: strings.TrimSpace(info.Group),
	}
	if identity.ReleaseGroup == "" {
		identity.ReleaseGroup = trailingGroup(name, info)
	}

	logger.Debug().
		Str("path", path).
		Str("title", identity.Title).
		Int("season", identity.Season).
		Int("episode", identity.Episode).
		Str("releaseGroup", identity.ReleaseGroup).
		Msg("Resolved file identity")

	switch {
	case identity.Title == "":
		return identity, &apperrors.ErrMissingIdentityField{Path: path, Field: "title"}
	case identity.Season < 0, identity.Season == 0 && !specialsMarker.MatchString(name):
		return identity, &apperrors.ErrMissingIdentityField{Path: path, Field: "season"}
	case identity.Episode <= 0:
		return identity, &apperrors.ErrMissingIdentityField{Path: path, Field: "episode"}
	}
	return identity, nil
}

// trailingGroup takes the last token of names like "Show.S01E02.GROUP" that
// carry the group without the usual "-GROUP" suffix. Tokens go-ptn already
// recognised as another field are not groups.
func trailingGroup(name string, info *ptn.TorrentInfo) string {
	tokens := tokenSeparators.Split(strings.TrimSpace(name), -1)
	if len(tokens) < 2 {
		return ""
	}
	last := tokens[len(tokens)-1]
	if last == "" || episodeMarker.MatchString(last) {
		return ""
	}
	for _, known := range []string{info.Resolution, info.Quality, info.Codec} {
		if known != "" && strings.EqualFold(known, last) {
			return ""
		}
	}
	// The title never ends a release name that still has a season marker after it.
	for _, t := range tokens[:len(tokens)-1] {
		if episodeMarker.MatchString(t) {
			return last
		}
	}
	return ""
}
