package batch

import (
	"fmt"
	"io"

	"github.com/Belphemur/Addic7edSubtitles/internal/models"
)

// WriteReport prints one status line per file and, for files without a
// matching subtitle, the candidates that were considered.
func WriteReport(w io.Writer, results []models.FileResult) error {
	for _, res := range results {
		var err error
		switch res.Status {
		case models.StatusDownloaded:
			_, err = fmt.Fprintf(w, "%s: %s -> %s\n", res.Status, res.Path, res.Output)
		case models.StatusError:
			_, err = fmt.Fprintf(w, "%s: %s: %v\n", res.Status, res.Path, res.Err)
		default:
			_, err = fmt.Fprintf(w, "%s: %s\n", res.Status, res.Path)
		}
		if err != nil {
			return err
		}
		if res.Status != models.StatusNotFound {
			continue
		}
		if len(res.Candidates) == 0 {
			if _, err := fmt.Fprintln(w, "  no subtitle listed for this episode"); err != nil {
				return err
			}
			continue
		}
		for _, c := range res.Candidates {
			if _, err := fmt.Fprintf(w, "  candidate %s\n", c); err != nil {
				return err
			}
		}
	}
	return nil
}
