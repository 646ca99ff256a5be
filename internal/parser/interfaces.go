package parser

import "io"

// Parser extracts typed records from one kind of addic7ed page.
type Parser[T any] interface {
	ParseHtml(body io.Reader) ([]T, error)
}

// Page kinds, used in structure errors and logs.
const (
	PageHome      = "home"
	PageSeasons   = "seasons"
	PageEpisodes  = "episodes"
	PageSubtitles = "subtitles"
)
