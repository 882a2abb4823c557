package syncer

import (
	"fmt"
	"strings"
)

type ErrorType string

const (
	PartialFailure  ErrorType = "PARTIAL_FAILURE"
	CompleteFailure ErrorType = "COMPLETE_FAILURE"
)

// Error is returned by Sync when the run did not go through cleanly. A
// partial failure carries the counts and every error met along the way, a
// complete failure the single error that stopped the run.
type Error struct {
	Type ErrorType

	Successful int
	Failed     int
	Errors     []error

	Cause error
}

func (e *Error) Error() string {
	if e.Type == CompleteFailure {
		return fmt.Sprintf("sync failed: %v", e.Cause)
	}

	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("partial sync failure: %d succeeded, %d failed: %s", e.Successful, e.Failed, strings.Join(msgs, "; "))
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func completeFailure(cause error) *Error {
	return &Error{Type: CompleteFailure, Cause: cause}
}
