package resolver

import (
	"errors"
	"testing"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
)

func TestPTNResolver_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		title   string
		season  int
		episode int
		group   string
	}{
		{
			name:    "bare group",
			path:    "/media/tv/Show.S01E02.GROUP.mkv",
			title:   "Show",
			season:  1,
			episode: 2,
			group:   "GROUP",
		},
		{
			name:    "scene name",
			path:    "The.Big.Bang.Theory.S02E05.720p.HDTV.x264-LOL.mkv",
			title:   "The Big Bang Theory",
			season:  2,
			episode: 5,
			group:   "LOL",
		},
		{
			name:    "specials season",
			path:    "Show.S00E03.HDTV.x264-LOL.mkv",
			title:   "Show",
			season:  0,
			episode: 3,
			group:   "LOL",
		},
		{
			name:    "no group",
			path:    "Show.S03E04.mkv",
			title:   "Show",
			season:  3,
			episode: 4,
		},
	}

	r := NewPTNResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := r.Resolve(tt.path)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.path, err)
			}
			if identity.Title != tt.title {
				t.Errorf("Expected title %q, got %q", tt.title, identity.Title)
			}
			if identity.Season != tt.season || identity.Episode != tt.episode {
				t.Errorf("Expected S%02dE%02d, got S%02dE%02d", tt.season, tt.episode, identity.Season, identity.Episode)
			}
			if identity.ReleaseGroup != tt.group {
				t.Errorf("Expected group %q, got %q", tt.group, identity.ReleaseGroup)
			}
		})
	}
}

func TestPTNResolver_MissingFields(t *testing.T) {
	r := NewPTNResolver()

	_, err := r.Resolve("/media/movies/Some.Movie.2010.mkv")
	var missing *apperrors.ErrMissingIdentityField
	if !errors.As(err, &missing) {
		t.Fatalf("Expected ErrMissingIdentityField, got %v", err)
	}
	if missing.Field != "season" {
		t.Errorf("Expected missing season, got %q", missing.Field)
	}
	if missing.Path != "/media/movies/Some.Movie.2010.mkv" {
		t.Errorf("Expected the original path in the error, got %q", missing.Path)
	}
}

func TestTrailingGroup_IgnoresMarkers(t *testing.T) {
	r := NewPTNResolver()
	identity, err := r.Resolve("Show.1x05.mkv")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if identity.ReleaseGroup != "" {
		t.Errorf("Expected no group, got %q", identity.ReleaseGroup)
	}
}
