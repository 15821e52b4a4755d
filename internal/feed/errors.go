package feed

import (
	"errors"
	"fmt"
)

// ErrFetchFailed matches every FetchFailedError via errors.Is.
var ErrFetchFailed = errors.New("feed fetch failed")

// FetchFailedError reports a feed that could not be retrieved or decoded:
// transport failure, timeout, non-2xx status or a malformed body.
type FetchFailedError struct {
	Kind       Kind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchFailedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s feed %s: status %d: %v", e.Kind, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s feed %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchFailedError) Unwrap() error {
	return e.Err
}

func (e *FetchFailedError) Is(target error) bool {
	return target == ErrFetchFailed
}

// NewFetchFailedError creates a new fetch error
func NewFetchFailedError(kind Kind, url string, err error) *FetchFailedError {
	return &FetchFailedError{
		Kind: kind,
		URL:  url,
		Err:  err,
	}
}
