package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a definite failure: the backend received the request and
// explicitly rejected it, so the mutation did not take effect.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend rejected request with status %d", e.Status)
}

// AmbiguousError is a failure whose server-side outcome is unknown: the
// request may or may not have taken effect (network error, timeout, dropped
// response). Callers must verify state via re-fetch rather than blindly
// resubmit.
type AmbiguousError struct {
	Op  string
	Err error
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s: outcome unknown: %v", e.Op, e.Err)
}

func (e *AmbiguousError) Unwrap() error { return e.Err }

// OutcomeUnknown marks the error as ambiguous for the mutation orchestrator.
func (e *AmbiguousError) OutcomeUnknown() bool { return true }

// IsAmbiguous reports whether err might have mutated server state.
func IsAmbiguous(err error) bool {
	var amb *AmbiguousError
	return errors.As(err, &amb)
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsConflict reports whether the backend answered 409, which station sync
// uses to signal a fleet reconciliation conflict.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// wrapTransport classifies a transport-level failure. Cancellations pass
// through untouched; everything else (timeout, refused connection, dropped
// response) becomes ambiguous because the request may have reached the
// backend.
func wrapTransport(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &AmbiguousError{Op: op, Err: err}
}
