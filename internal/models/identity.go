package models

// Identity is what a media filename says about its episode.
type Identity struct {
	Title        string `json:"title"`
	Season       int    `json:"season"`
	Episode      int    `json:"episode"`
	ReleaseGroup string `json:"releaseGroup"`
}
