// Package probe reads the subtitle tracks already embedded in a media file.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Belphemur/Addic7edSubtitles/internal/config"
)

// Prober reports the language tags of the embedded subtitle streams of a file.
type Prober interface {
	// SubtitleLanguages never fails: any problem yields an empty list.
	SubtitleLanguages(ctx context.Context, path string) []string
}

// textSubtitleCodec is the only embedded format counted as a usable subtitle.
const textSubtitleCodec = "subrip"

// Result is the part of ffprobe's JSON output the prober reads.
type Result struct {
	Streams []Stream `json:"streams"`
}

// Stream describes a single stream of the media container.
type Stream struct {
	Index     int               `json:"index"`
	CodecName string            `json:"codec_name"`
	CodecType string            `json:"codec_type"`
	Tags      map[string]string `json:"tags"`
}

// Language returns the stream language tag, or "" when untagged.
func (s Stream) Language() string {
	return strings.TrimSpace(s.Tags["language"])
}

// SubtitleLanguages lists the language tag of every tagged subrip stream, in stream order.
func (r Result) SubtitleLanguages() []string {
	var languages []string
	for _, s := range r.Streams {
		if !strings.EqualFold(s.CodecName, textSubtitleCodec) {
			continue
		}
		if lang := s.Language(); lang != "" {
			languages = append(languages, lang)
		}
	}
	return languages
}

// FFProbe runs the ffprobe binary.
type FFProbe struct {
	binary string
}

// NewFFProbe creates a prober running binary, "ffprobe" from PATH when empty.
func NewFFProbe(binary string) *FFProbe {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFProbe{binary: binary}
}

// Inspect executes ffprobe against path and decodes its subtitle streams.
func (p *FFProbe) Inspect(ctx context.Context, path string) (Result, error) {
	cmd := exec.CommandContext(ctx, p.binary, "-v", "error", "-hide_banner", "-select_streams", "s", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}
	return Parse(output)
}

// Parse decodes ffprobe JSON output.
func Parse(output []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// SubtitleLanguages implements Prober.
func (p *FFProbe) SubtitleLanguages(ctx context.Context, path string) []string {
	logger := config.GetLogger()

	result, err := p.Inspect(ctx, path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("Cannot inspect embedded subtitles, assuming none")
		return nil
	}
	languages := result.SubtitleLanguages()
	logger.Debug().Str("path", path).Strs("languages", languages).Msg("Embedded subtitle languages")
	return languages
}
