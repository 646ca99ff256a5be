package matcher

import (
	"errors"
	"testing"

	"github.com/Belphemur/Addic7edSubtitles/internal/apperrors"
	"github.com/Belphemur/Addic7edSubtitles/internal/models"
)

func TestStripName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Grey's Anatomy", "Greys Anatomy"},
		{"Marvel's Agents of S.H.I.E.L.D.", "Marvels Agents of SHIELD"},
		{"Doctor Who (2005)", "Doctor Who 2005"},
		{"Plain", "Plain"},
		{"Amélie", "Amlie"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := StripName(tt.input); got != tt.expected {
				t.Errorf("StripName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMatchShow(t *testing.T) {
	shows := []models.Show{
		{Name: "The Office (US)", ID: "1"},
		{Name: "The Office", ID: "2"},
		{Name: "Grey's Anatomy", ID: "3"},
		{Name: "Doctor Who (2005)", ID: "4"},
		{Name: "Doctor Who", ID: "5"},
	}

	tests := []struct {
		name       string
		query      string
		expectedID string
	}{
		{name: "exact beats earlier substring", query: "The Office", expectedID: "2"},
		{name: "case insensitive exact", query: "doctor who", expectedID: "5"},
		{name: "punctuation stripped", query: "Greys Anatomy", expectedID: "3"},
		{name: "substring falls back to first in order", query: "Office", expectedID: "1"},
		{name: "substring with year", query: "Who 2005", expectedID: "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			show, err := MatchShow(tt.query, shows)
			if err != nil {
				t.Fatalf("MatchShow(%q) failed: %v", tt.query, err)
			}
			if show.ID != tt.expectedID {
				t.Errorf("MatchShow(%q) = %+v, want ID %s", tt.query, show, tt.expectedID)
			}
		})
	}
}

func TestMatchShow_NotFound(t *testing.T) {
	_, err := MatchShow("Fargo", []models.Show{{Name: "Doctor Who", ID: "5"}})
	var notFound *apperrors.ErrShowNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected ErrShowNotFound, got %v", err)
	}
	if notFound.Name != "Fargo" {
		t.Errorf("Expected name Fargo, got %q", notFound.Name)
	}
}

func TestMatchShow_EmptyList(t *testing.T) {
	if _, err := MatchShow("Anything", nil); !errors.Is(err, &apperrors.ErrShowNotFound{}) {
		t.Fatalf("Expected ErrShowNotFound, got %v", err)
	}
}
