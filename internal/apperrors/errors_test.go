// Package apperrors tests verify the custom error types, their Error()
// messages, Is() matching semantics, and compatibility with errors.Is()
// and errors.As() including through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrors_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "show not found",
			err:      &ErrShowNotFound{Name: "Foo"},
			expected: `show "Foo" not found`,
		},
		{
			name:     "episode not found",
			err:      &ErrEpisodeNotFound{Show: "Foo", Season: 1, Episode: 2},
			expected: `episode S01E02 of "Foo" not found`,
		},
		{
			name:     "structure",
			err:      NewStructureError("episodes", "invalid format %q", "x"),
			expected: `unexpected episodes page structure: invalid format "x"`,
		},
		{
			name:     "missing identity field",
			err:      &ErrMissingIdentityField{Path: "a.mkv", Field: "season"},
			expected: `cannot guess season from "a.mkv"`,
		},
		{
			name:     "io",
			err:      &ErrIO{Path: "a.srt", Err: fs.ErrPermission},
			expected: "write a.srt: permission denied",
		},
		{
			name:     "resource not found",
			err:      &ErrSubtitleResourceNotFound{URL: "http://x/original/1/0"},
			expected: "subtitle resource not found at URL: http://x/original/1/0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrors_IsThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("download: %w", &ErrEpisodeNotFound{Show: "Foo", Season: 1, Episode: 2})
	if !errors.Is(wrapped, &ErrEpisodeNotFound{}) {
		t.Error("expected errors.Is to match wrapped *ErrEpisodeNotFound")
	}
	if errors.Is(wrapped, &ErrShowNotFound{}) {
		t.Error("expected errors.Is not to match *ErrShowNotFound")
	}

	structural := fmt.Errorf("list: %w", NewStructureError("subtitles", "missing language"))
	if !errors.Is(structural, &ErrStructure{}) {
		t.Error("expected errors.Is to match wrapped *ErrStructure")
	}
	var se *ErrStructure
	if !errors.As(structural, &se) || se.Page != "subtitles" {
		t.Errorf("expected errors.As to extract page 'subtitles', got %+v", se)
	}
}

func TestErrIO_Unwrap(t *testing.T) {
	t.Parallel()
	err := &ErrIO{Path: "a.srt", Err: fs.ErrExist}
	if !errors.Is(err, fs.ErrExist) {
		t.Error("expected ErrIO to unwrap to fs.ErrExist")
	}
	if !errors.Is(err, &ErrIO{}) {
		t.Error("expected errors.Is to match *ErrIO")
	}
}
