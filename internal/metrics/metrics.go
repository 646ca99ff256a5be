package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Scraping and batch metrics
var (
	// PageFetchesTotal counts site requests by page kind and result.
	PageFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "addic7ed",
			Name:      "page_fetches_total",
			Help:      "Total number of site pages fetched.",
		},
		[]string{"page", "status"},
	)

	// SubtitleDownloadsTotal counts subtitle payload downloads.
	SubtitleDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "addic7ed",
			Name:      "subtitle_downloads_total",
			Help:      "Total number of subtitle downloads.",
		},
		[]string{"status"},
	)

	// FileOutcomesTotal counts the final status of every processed media file.
	FileOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "addic7ed",
			Name:      "file_outcomes_total",
			Help:      "Total number of processed media files by final status.",
		},
		[]string{"status"},
	)

	// StructureErrorsTotal counts pages whose layout no longer matches the parsers.
	StructureErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "addic7ed",
			Name:      "structure_errors_total",
			Help:      "Total number of pages with an unexpected structure.",
		},
		[]string{"page"},
	)
)

func init() {
	prometheus.MustRegister(
		PageFetchesTotal,
		SubtitleDownloadsTotal,
		FileOutcomesTotal,
		StructureErrorsTotal,
	)
}

// WriteTextfile dumps every registered metric to path in the node-exporter
// textfile collector format. The file is replaced atomically.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(prometheus.DefaultGatherer, path)
}

// WriteTextfileFrom is WriteTextfile for an explicit gatherer.
func WriteTextfileFrom(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
