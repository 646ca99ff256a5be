package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Belphemur/Addic7edSubtitles/internal/models"
	"github.com/Belphemur/Addic7edSubtitles/internal/testutil"
)

var payload = []byte("1\n00:00:01,000 --> 00:00:02,000\nBonjour\n")

func setupSite(t *testing.T) *testutil.Site {
	t.Helper()
	site := &testutil.Site{
		Shows:     []testutil.ShowOption{{ID: "5", Name: "Show"}, {ID: "6", Name: "Another Show"}},
		Languages: []string{"English", "French"},
		Seasons:   map[string][]int{"5": {1}},
		Episodes: map[string][]models.Episode{
			testutil.EpisodesKey("5", 1): {{Number: 2, Name: "Second"}},
		},
		Subtitles: map[string][]testutil.SubtitleBlockOptions{
			"/serie/Show/1/2/Second": {
				{Version: "GROUP", Languages: []testutil.LanguageRowOptions{
					{Language: "English", Download: "/original/52/0"},
					{Language: "French", Download: "/original/52/1"},
				}},
			},
		},
		Files: map[string][]byte{"/original/52/1": payload},
	}
	server := testutil.NewSiteServer(t, site)

	t.Chdir(t.TempDir())
	t.Setenv("APP_ADDIC7ED_DOMAIN", server.URL)
	t.Setenv("APP_CACHE_PROVIDER", "none")
	return site
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLanguagesCommand(t *testing.T) {
	setupSite(t)
	out, err := execute(t, "languages")
	if err != nil {
		t.Fatalf("languages failed: %v", err)
	}
	if out != "English\nFrench\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestShowsCommand(t *testing.T) {
	setupSite(t)

	out, err := execute(t, "shows")
	if err != nil {
		t.Fatalf("shows failed: %v", err)
	}
	if out != "5\tShow\n6\tAnother Show\n" {
		t.Errorf("unexpected output %q", out)
	}

	out, err = execute(t, "shows", "another")
	if err != nil {
		t.Fatalf("shows query failed: %v", err)
	}
	if out != "6\tAnother Show\n" {
		t.Errorf("unexpected output %q", out)
	}

	if _, err := execute(t, "shows", "missing"); err == nil {
		t.Fatal("expected error for unknown show")
	}
}

func TestSubtitlesCommand(t *testing.T) {
	setupSite(t)
	out, err := execute(t, "subtitles", "Show", "1", "2")
	if err != nil {
		t.Fatalf("subtitles failed: %v", err)
	}
	for _, want := range []string{"Show S01E02 Second", "GROUP\tEnglish\t/original/52/0", "GROUP\tFrench\t/original/52/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	if _, err := execute(t, "subtitles", "Show", "one", "2"); err == nil {
		t.Fatal("expected error for invalid season")
	}
}

func TestDownloadAsDefaultCommand(t *testing.T) {
	setupSite(t)
	dir := t.TempDir()
	media := filepath.Join(dir, "Show.S01E02.GROUP.mkv")
	if err := os.WriteFile(media, []byte("video"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	out, err := execute(t, "-l", "fr", media)
	if err != nil {
		t.Fatalf("download failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "downloaded: "+media) {
		t.Errorf("expected downloaded status line, got:\n%s", out)
	}
	written, err := os.ReadFile(filepath.Join(dir, "Show.S01E02.GROUP.srt"))
	if err != nil || !bytes.Equal(written, payload) {
		t.Fatalf("expected subtitle written, got %q (%v)", written, err)
	}

	// Second run finds the subtitle in place
	out, err = execute(t, "download", media)
	if err != nil {
		t.Fatalf("second download failed: %v", err)
	}
	if !strings.Contains(out, "skipped-present: "+media) {
		t.Errorf("expected skipped-present status line, got:\n%s", out)
	}
}

func TestDownloadReportsNotFound(t *testing.T) {
	setupSite(t)
	media := filepath.Join(t.TempDir(), "Show.S01E02.GROUP.mkv")
	if err := os.WriteFile(media, []byte("video"), 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	out, err := execute(t, "download", "--language", "German", media)
	if err != nil {
		t.Fatalf("not-found must not fail the run: %v", err)
	}
	if !strings.Contains(out, "not-found: "+media) || !strings.Contains(out, `language="French"`) {
		t.Errorf("expected not-found line with candidates, got:\n%s", out)
	}
}

func TestDownloadFailsOnUnresolvableFile(t *testing.T) {
	setupSite(t)
	media := filepath.Join(t.TempDir(), "holiday-video.mkv")

	out, err := execute(t, "download", media)
	if err == nil {
		t.Fatalf("expected non-nil error, output:\n%s", out)
	}
	if !strings.Contains(out, "error: "+media) {
		t.Errorf("expected error status line, got:\n%s", out)
	}
}

func TestRootWithoutArgsPrintsHelp(t *testing.T) {
	setupSite(t)
	out, err := execute(t)
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !strings.Contains(out, "download") {
		t.Errorf("expected help listing subcommands, got:\n%s", out)
	}
}

func TestInvalidSelectionPolicy(t *testing.T) {
	setupSite(t)
	t.Setenv("APP_SELECTION_POLICY", "random")
	media := filepath.Join(t.TempDir(), "Show.S01E02.GROUP.mkv")
	if _, err := execute(t, "download", media); err == nil {
		t.Fatal("expected error for unknown selection policy")
	}
}
