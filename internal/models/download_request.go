package models

// DownloadRequest identifies the subtitle to fetch for one episode.
type DownloadRequest struct {
	ShowName     string
	Season       int
	Episode      int
	Language     string // Site language label
	ReleaseGroup string // Version filter, empty to omit
}

// DownloadResult holds the outcome of a selection. Subtitle is nil when no
// candidate matched; Candidates always holds the full listing that was considered.
type DownloadResult struct {
	Show       Show
	Episode    Episode
	Subtitle   *Subtitle
	Candidates []Subtitle
	Content    []byte
}

// Found reports whether a candidate was selected and downloaded.
func (r *DownloadResult) Found() bool {
	return r != nil && r.Subtitle != nil
}
