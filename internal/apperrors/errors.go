package apperrors

import "fmt"

// ErrShowNotFound is returned when no show on the site matches the requested name.
type ErrShowNotFound struct {
	Name string
}

// Error implements the error interface.
func (e *ErrShowNotFound) Error() string {
	return fmt.Sprintf("show %q not found", e.Name)
}

// Is allows for error checking with errors.Is().
func (e *ErrShowNotFound) Is(target error) bool {
	_, ok := target.(*ErrShowNotFound)
	return ok
}

// ErrEpisodeNotFound is returned when the episode listing of a season does not contain the episode.
type ErrEpisodeNotFound struct {
	Show    string
	Season  int
	Episode int
}

// Error implements the error interface.
func (e *ErrEpisodeNotFound) Error() string {
	return fmt.Sprintf("episode S%02dE%02d of %q not found", e.Season, e.Episode, e.Show)
}

// Is allows for error checking with errors.Is().
func (e *ErrEpisodeNotFound) Is(target error) bool {
	_, ok := target.(*ErrEpisodeNotFound)
	return ok
}

// ErrStructure reports that a page no longer has the layout the parsers expect.
// It invalidates the scraping assumptions for every file of a batch.
type ErrStructure struct {
	Page   string
	Reason string
}

// Error implements the error interface.
func (e *ErrStructure) Error() string {
	return fmt.Sprintf("unexpected %s page structure: %s", e.Page, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrStructure) Is(target error) bool {
	_, ok := target.(*ErrStructure)
	return ok
}

// NewStructureError creates a new ErrStructure.
func NewStructureError(page, format string, args ...any) *ErrStructure {
	return &ErrStructure{
		Page:   page,
		Reason: fmt.Sprintf(format, args...),
	}
}

// ErrMissingIdentityField is returned when a filename does not carry one of the identity fields.
type ErrMissingIdentityField struct {
	Path  string
	Field string
}

// Error implements the error interface.
func (e *ErrMissingIdentityField) Error() string {
	return fmt.Sprintf("cannot guess %s from %q", e.Field, e.Path)
}

// Is allows for error checking with errors.Is().
func (e *ErrMissingIdentityField) Is(target error) bool {
	_, ok := target.(*ErrMissingIdentityField)
	return ok
}

// ErrIO wraps a failure to write a subtitle file.
type ErrIO struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ErrIO) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ErrIO) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrIO) Is(target error) bool {
	_, ok := target.(*ErrIO)
	return ok
}

// ErrSubtitleResourceNotFound is returned when the subtitle download URL returns HTTP 404.
type ErrSubtitleResourceNotFound struct {
	URL string
}

// Error implements the error interface.
func (e *ErrSubtitleResourceNotFound) Error() string {
	return fmt.Sprintf("subtitle resource not found at URL: %s", e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrSubtitleResourceNotFound) Is(target error) bool {
	_, ok := target.(*ErrSubtitleResourceNotFound)
	return ok
}
