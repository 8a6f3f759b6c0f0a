package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: http.StatusConflict, Message: "station fleet changed"}
	assert.Equal(t, "backend rejected request (409): station fleet changed", err.Error())

	bare := &APIError{Status: http.StatusForbidden}
	assert.Equal(t, "backend rejected request with status 403", bare.Error())
}

func TestClassificationHelpers(t *testing.T) {
	notFound := fmt.Errorf("get station: %w", &APIError{Status: http.StatusNotFound})
	conflict := fmt.Errorf("sync: %w", &APIError{Status: http.StatusConflict})
	ambiguous := fmt.Errorf("create: %w", &AmbiguousError{Op: "create staff", Err: errors.New("timeout")})

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(conflict))

	assert.True(t, IsConflict(conflict))
	assert.False(t, IsConflict(notFound))

	assert.True(t, IsAmbiguous(ambiguous))
	assert.False(t, IsAmbiguous(conflict))
}

func TestAmbiguousErrorMarksOutcomeUnknown(t *testing.T) {
	err := &AmbiguousError{Op: "create staff", Err: context.DeadlineExceeded}
	assert.True(t, err.OutcomeUnknown())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "outcome unknown")
}

func TestWrapTransportPassesCancellationThrough(t *testing.T) {
	err := wrapTransport("list stations", fmt.Errorf("request: %w", context.Canceled))
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsAmbiguous(err))
}

func TestWrapTransportTimeoutIsAmbiguous(t *testing.T) {
	err := wrapTransport("create staff", context.DeadlineExceeded)
	assert.True(t, IsAmbiguous(err))
}
