package agent

import (
	"errors"
	"fmt"
)

// ErrNoReadableText marks a document that classified cleanly but produced no
// text after extraction and truncation.
var ErrNoReadableText = errors.New("no readable text")

// FetchError records a failed fetch of one URL. It is non-fatal to a crawl
// except at the root.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionError records a format-specific processing fault. It is terminal
// for the run and reported verbatim to the sender.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// CompletionError records an external completion-service fault. It is never
// retried and always resolves to a reply string.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
