package testutil

import (
	"fmt"
	"html"
	"strings"

	"github.com/Belphemur/Addic7edSubtitles/internal/models"
)

// ShowOption is one entry of the home page show selector.
type ShowOption struct {
	ID   string
	Name string
}

// RawOption is a verbatim <option>; an empty Value with OmitValue renders no value attribute.
type RawOption struct {
	Value     string
	Text      string
	OmitValue bool
}

// SubtitleBlockOptions describes one subtitle table of an episode page.
type SubtitleBlockOptions struct {
	Version   string // Rendered as "Version <Version>, 0.00 MBs"
	Title     string // Overrides the whole NewsTitle text when set
	Languages []LanguageRowOptions
}

// LanguageRowOptions describes one language row of a subtitle block.
type LanguageRowOptions struct {
	Language     string
	Download     string // href of the first download button
	Updated      string // optional href of the "most updated" button
	OmitLanguage bool
	OmitDownload bool
	// Progress renders an unfinished translation such as "42.10% Completed",
	// which the site lists without a download button.
	Progress string
}

// GenerateHomeHTML renders the home page with the show and language selectors
// the way addic7ed.com lays them out.
func GenerateHomeHTML(shows []ShowOption, languages []string) string {
	options := make([]RawOption, 0, len(shows)+1)
	options = append(options, RawOption{Value: "0", Text: "[Select a show]"})
	for _, s := range shows {
		options = append(options, RawOption{Value: s.ID, Text: s.Name})
	}
	return GenerateHomeHTMLRaw(options, languages)
}

// GenerateHomeHTMLRaw renders the home page with verbatim show options.
func GenerateHomeHTMLRaw(shows []RawOption, languages []string) string {
	var sb strings.Builder
	sb.WriteString(`<html>
<head><meta http-equiv="Content-Type" content="text/html; charset=UTF-8"><title>Addic7ed.com - The source of latest TV subtitles</title></head>
<body>
<div id="hBar">
<form action="/search.php" method="get">
<select name="language" id="comboLang" class="cajetinSelect">
`)
	sb.WriteString(`<option value="0">All languages</option>` + "\n")
	for i, l := range languages {
		fmt.Fprintf(&sb, "<option value=\"%d\">%s</option>\n", i+1, html.EscapeString(l))
	}
	sb.WriteString(`</select>
</form>
</div>
<div id="quicksearch">
<select name="qsShow" id="qsShow" onchange="showChange();">
`)
	writeOptions(&sb, shows)
	sb.WriteString(`</select>
<span id="qsSeason"></span>
<span id="qsEp"></span>
</div>
</body>
</html>`)
	return sb.String()
}

// GenerateSeasonsHTML renders the ajax_getSeasons.php fragment.
func GenerateSeasonsHTML(showID string, seasons []int) string {
	options := make([]RawOption, 0, len(seasons)+1)
	options = append(options, RawOption{Value: "0", Text: "Season"})
	for _, s := range seasons {
		options = append(options, RawOption{Text: fmt.Sprintf("%d", s), OmitValue: true})
	}
	return GenerateSeasonsHTMLRaw(showID, options)
}

// GenerateSeasonsHTMLRaw renders the seasons fragment with verbatim options.
func GenerateSeasonsHTMLRaw(showID string, options []RawOption) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<select id=\"qsiSeason\" name=\"qsiSeason\" onchange=\"seasonChange(%s,-1);\">\n", showID)
	writeOptions(&sb, options)
	sb.WriteString("</select>\n")
	return sb.String()
}

// GenerateEpisodesHTML renders the ajax_getEpisodes.php fragment.
func GenerateEpisodesHTML(showID string, season int, episodes []models.Episode) string {
	options := make([]RawOption, 0, len(episodes)+1)
	options = append(options, RawOption{Value: "0", Text: "[Select an episode]"})
	for _, e := range episodes {
		options = append(options, RawOption{
			Value: fmt.Sprintf("%s-%dx%d", showID, season, e.Number),
			Text:  fmt.Sprintf("%d. %s", e.Number, e.Name),
		})
	}
	return GenerateEpisodesHTMLRaw(options)
}

// GenerateEpisodesHTMLRaw renders the episodes fragment with verbatim options.
func GenerateEpisodesHTMLRaw(options []RawOption) string {
	var sb strings.Builder
	sb.WriteString("<select id=\"qsiEp\" name=\"qsiEp\" onchange=\"changeEp();\">\n")
	writeOptions(&sb, options)
	sb.WriteString("</select>\n")
	return sb.String()
}

// GenerateSubtitlePageHTML renders an episode page with one nested
// table.tabel95 per subtitle version.
func GenerateSubtitlePageHTML(blocks []SubtitleBlockOptions) string {
	var sb strings.Builder
	sb.WriteString(`<html>
<body>
<div id="container95m">
<table class="tabel95">
<tr><td>
`)
	for i, b := range blocks {
		title := b.Title
		if title == "" {
			title = fmt.Sprintf("Version %s, 0.00 MBs", b.Version)
		}
		fmt.Fprintf(&sb, `<div id="container95m">
<table width="100%%" border="0" align="center" class="tabel95">
<tr>
<td colspan="3" align="center" class="NewsTitle"><img src="/images/folder_page.png" width="16" height="16" />%s&nbsp;<img src="/images/invisible.gif" /></td>
<td align="right"><a href="/show/%d">Edit</a></td>
</tr>
<tr><td colspan="4" class="newsDate">Works with %s</td></tr>
`, html.EscapeString(title), i, html.EscapeString(b.Version))
		for _, l := range b.Languages {
			sb.WriteString("<tr>\n<td width=\"10%\" rowspan=\"2\" valign=\"top\"></td>\n")
			if !l.OmitLanguage {
				fmt.Fprintf(&sb, "<td width=\"21%%\" class=\"language\">\n%s<a href=\"javascript:toggleVisibility('%d')\"></a>\n</td>\n", html.EscapeString(l.Language), i)
			}
			status := "Completed"
			if l.Progress != "" {
				status = l.Progress
			}
			fmt.Fprintf(&sb, "<td width=\"19%%\"><b>%s</b></td>\n<td colspan=\"3\">", html.EscapeString(status))
			if !l.OmitDownload && l.Progress == "" {
				fmt.Fprintf(&sb, "<a class=\"buttonDownload\" href=\"%s\"><strong>original</strong></a>", html.EscapeString(l.Download))
				if l.Updated != "" {
					fmt.Fprintf(&sb, "<a class=\"buttonDownload\" href=\"%s\"><strong>most updated</strong></a>", html.EscapeString(l.Updated))
				}
			}
			sb.WriteString("</td>\n</tr>\n<tr><td colspan=\"4\" class=\"newsDate\">0 times edited · 10 Downloads</td></tr>\n")
		}
		sb.WriteString("</table>\n</div>\n")
	}
	sb.WriteString(`</td></tr>
</table>
</div>
</body>
</html>`)
	return sb.String()
}

func writeOptions(sb *strings.Builder, options []RawOption) {
	for _, o := range options {
		if o.OmitValue {
			fmt.Fprintf(sb, "<option>%s</option>\n", html.EscapeString(o.Text))
			continue
		}
		fmt.Fprintf(sb, "<option value=\"%s\">%s</option>\n", html.EscapeString(o.Value), html.EscapeString(o.Text))
	}
}
