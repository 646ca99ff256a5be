package models

import "fmt"

// Subtitle is one candidate of a subtitle listing.
type Subtitle struct {
	Version  string `json:"version"`  // Release group label, e.g. "LOL", "DIMENSION"
	Language string `json:"language"` // Site language label, e.g. "English", "French"
	Download string `json:"download"` // Download path relative to the site root
}

// String returns a single-line description of the candidate.
func (s Subtitle) String() string {
	return fmt.Sprintf("version=%q language=%q download=%q", s.Version, s.Language, s.Download)
}
