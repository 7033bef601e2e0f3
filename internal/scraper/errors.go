package scraper

import (
	"errors"
	"fmt"
)

var (
	// ErrUsernameRequired is returned when no username is given
	ErrUsernameRequired = errors.New("username is required")

	// ErrMissingField is wrapped by ParseError when a row lacks an expected node or attribute
	ErrMissingField = errors.New("missing field")
)

// FetchError reports a failed request for the events page
type FetchError struct {
	URL        string
	StatusCode int // Zero when the request itself failed
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a listing row that could not be extracted
type ParseError struct {
	Index int // Zero-based position of the row on the page
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing event row %d: %s: %v", e.Index, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
