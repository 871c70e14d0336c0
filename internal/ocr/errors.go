package ocr

import (
	"errors"
	"fmt"
)

var (
	// ErrRenderFailed is returned when a page cannot be rasterized.
	ErrRenderFailed = errors.New("page rendering failed")

	// ErrRecognitionFailed is returned when the OCR engine fails on a
	// rendered page image.
	ErrRecognitionFailed = errors.New("OCR recognition failed")

	// ErrMissingCredentials is returned when the Vision engine is selected
	// but no Google Cloud credentials are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")
)

// PageError reports a render or OCR failure for one page. It is recoverable
// by contract: callers keep the page's native text and continue with the
// rest of the document.
type PageError struct {
	// Page is the 1-based page number the failure belongs to.
	Page int

	// Op is the operation that failed.
	Op string

	// Err is the underlying error.
	Err error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("ocr: %s failed for page %d: %v", e.Op, e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

func (e *PageError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newPageError(op string, pageIndex int, err error) *PageError {
	return &PageError{Page: pageIndex + 1, Op: op, Err: err}
}
