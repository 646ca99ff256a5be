package client

import "fmt"

// ErrForeignOrigin is returned when a request targets another origin than the
// configured site. No network call is made.
type ErrForeignOrigin struct {
	URL  string
	Base string
}

// Error implements the error interface
func (e *ErrForeignOrigin) Error() string {
	return fmt.Sprintf("refusing request to %s: outside of %s", e.URL, e.Base)
}

// Is allows for error checking with errors.Is()
func (e *ErrForeignOrigin) Is(target error) bool {
	_, ok := target.(*ErrForeignOrigin)
	return ok
}

// ErrUnexpectedStatus is returned for any non-200 answer of the site.
type ErrUnexpectedStatus struct {
	URL        string
	StatusCode int
}

// Error implements the error interface
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// Is allows for error checking with errors.Is()
func (e *ErrUnexpectedStatus) Is(target error) bool {
	_, ok := target.(*ErrUnexpectedStatus)
	return ok
}
