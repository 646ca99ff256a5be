package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"
	"github.com/Belphemur/Addic7edSubtitles/internal/testutil"
)

func TestSubtitleParser_ParseHtml(t *testing.T) {
	htmlContent := testutil.GenerateSubtitlePageHTML([]testutil.SubtitleBlockOptions{
		{
			Version: "LOL",
			Languages: []testutil.LanguageRowOptions{
				{Language: "English", Download: "/original/100/0"},
				{Language: "French", Download: "/original/100/1", Updated: "/updated/8/100/1"},
			},
		},
		{
			Version: "DIMENSION",
			Languages: []testutil.LanguageRowOptions{
				{Language: "English", Download: "/original/100/2"},
			},
		},
	})

	subtitles, err := NewSubtitleParser().ParseHtml(strings.NewReader(htmlContent))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}

	expected := []models.Subtitle{
		{Version: "LOL", Language: "English", Download: "/original/100/0"},
		{Version: "LOL", Language: "French", Download: "/original/100/1"},
		{Version: "DIMENSION", Language: "English", Download: "/original/100/2"},
	}
	if len(subtitles) != len(expected) {
		t.Fatalf("Expected %d subtitles, got %d: %+v", len(expected), len(subtitles), subtitles)
	}
	for i, want := range expected {
		if subtitles[i] != want {
			t.Errorf("Subtitle %d: expected %+v, got %+v", i, want, subtitles[i])
		}
	}
}

func TestSubtitleParser_ParseHtml_EmptyListing(t *testing.T) {
	subtitles, err := NewSubtitleParser().ParseHtml(strings.NewReader(testutil.GenerateSubtitlePageHTML(nil)))
	if err != nil {
		t.Fatalf("ParseHtml failed on empty listing: %v", err)
	}
	if len(subtitles) != 0 {
		t.Errorf("Expected no subtitles, got %+v", subtitles)
	}
}

func TestSubtitleParser_ParseHtml_Idempotent(t *testing.T) {
	htmlContent := testutil.GenerateSubtitlePageHTML([]testutil.SubtitleBlockOptions{
		{Version: "KILLERS", Languages: []testutil.LanguageRowOptions{{Language: "English", Download: "/original/1/0"}}},
	})

	first, err := NewSubtitleParser().ParseHtml(strings.NewReader(htmlContent))
	if err != nil {
		t.Fatalf("first ParseHtml failed: %v", err)
	}
	second, err := NewSubtitleParser().ParseHtml(strings.NewReader(htmlContent))
	if err != nil {
		t.Fatalf("second ParseHtml failed: %v", err)
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
}

func TestSubtitleParser_ParseHtml_SkipsUnfinishedTranslations(t *testing.T) {
	htmlContent := testutil.GenerateSubtitlePageHTML([]testutil.SubtitleBlockOptions{
		{
			Version: "LOL",
			Languages: []testutil.LanguageRowOptions{
				{Language: "English", Download: "/original/1/0"},
				{Language: "French", Progress: "42.10% Completed"},
			},
		},
		{
			Version: "DIMENSION",
			Languages: []testutil.LanguageRowOptions{
				{Language: "French", OmitDownload: true},
				{Language: "English", Download: "/original/1/1"},
			},
		},
	})

	subtitles, err := NewSubtitleParser().ParseHtml(strings.NewReader(htmlContent))
	if err != nil {
		t.Fatalf("ParseHtml failed: %v", err)
	}

	expected := []models.Subtitle{
		{Version: "LOL", Language: "English", Download: "/original/1/0"},
		{Version: "DIMENSION", Language: "English", Download: "/original/1/1"},
	}
	if len(subtitles) != len(expected) {
		t.Fatalf("Expected %d subtitles, got %d: %+v", len(expected), len(subtitles), subtitles)
	}
	for i, want := range expected {
		if subtitles[i] != want {
			t.Errorf("Subtitle %d: expected %+v, got %+v", i, want, subtitles[i])
		}
	}
}

func TestSubtitleParser_ParseHtml_StructureErrors(t *testing.T) {
	tests := []struct {
		name  string
		block testutil.SubtitleBlockOptions
	}{
		{
			name: "title without version",
			block: testutil.SubtitleBlockOptions{
				Title:     "Some unrelated heading",
				Languages: []testutil.LanguageRowOptions{{Language: "English", Download: "/original/1/0"}},
			},
		},
		{
			name:  "no language cell",
			block: testutil.SubtitleBlockOptions{Version: "LOL"},
		},
		{
			name: "no download button",
			block: testutil.SubtitleBlockOptions{
				Version:   "LOL",
				Languages: []testutil.LanguageRowOptions{{Language: "English", OmitDownload: true}},
			},
		},
		{
			name: "only unfinished translations",
			block: testutil.SubtitleBlockOptions{
				Version: "LOL",
				Languages: []testutil.LanguageRowOptions{
					{Language: "English", Progress: "12.00% Completed"},
					{Language: "French", Progress: "42.10% Completed"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			htmlContent := testutil.GenerateSubtitlePageHTML([]testutil.SubtitleBlockOptions{tt.block})
			subtitles, err := NewSubtitleParser().ParseHtml(strings.NewReader(htmlContent))
			if err == nil {
				t.Fatalf("Expected structure error, got %+v", subtitles)
			}
			var structErr *apperrors.ErrStructure
			if !errors.As(err, &structErr) || structErr.Page != PageSubtitles {
				t.Fatalf("Expected subtitles ErrStructure, got %T: %v", err, err)
			}
		})
	}
}
