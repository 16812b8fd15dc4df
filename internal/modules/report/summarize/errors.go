package summarize

import (
	"errors"
	"fmt"
)

// ErrNoProvider means no enabled inference provider is configured.
var ErrNoProvider = errors.New("no enabled AI provider")

// ErrEmptyTable means the workbook produced zero data rows, so there is
// nothing to summarize and no model call is made.
var ErrEmptyTable = errors.New("workbook has no rows to summarize")

// InferenceError reports a model call that failed after all retry attempts.
type InferenceError struct {
	Provider string
	Model    string
	Attempts int
	Err      error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference via %s (%s) failed after %d attempt(s): %v",
		e.Provider, e.Model, e.Attempts, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
