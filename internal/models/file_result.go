package models

// Status is the final outcome of processing one media file.
type Status string

const (
	StatusDownloaded      Status = "downloaded"
	StatusSkippedPresent  Status = "skipped-present"
	StatusSkippedEmbedded Status = "skipped-embedded"
	StatusNotFound        Status = "not-found"
	StatusError           Status = "error"
)

// FileResult reports what happened to one input file of a batch.
type FileResult struct {
	Path       string
	Output     string
	Status     Status
	Err        error
	Candidates []Subtitle // Populated for StatusNotFound
}
